// Package file keeps the on-disk configuration: the optional TOML settings
// file and the editable prompt templates.
package file
