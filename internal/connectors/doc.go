// Package connectors provides document sources that feed the ingest
// pipeline. Each connector knows how to notice documents in one place
// (currently the local filesystem).
package connectors
