// Package sqlite keeps the conversation log in a single SQLite file
// (./conversation.db unless configured) through the pure Go
// modernc.org/sqlite driver.
//
// Schema scripts live in schema/ as NNN_name.sql and are embedded in the
// binary. The highest applied number is stored in PRAGMA user_version, so
// reopening an up-to-date file runs nothing.
package sqlite
