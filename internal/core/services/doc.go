// Package services wires the driven ports into the ingest, retrieval,
// answer, conversation and voice flows. Providers arrive as interfaces,
// so every flow runs against in-memory fakes in tests.
package services
