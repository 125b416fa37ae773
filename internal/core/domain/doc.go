// Package domain holds the entities every other layer shares: embedded
// chunks, conversation turns and roles, synthesised audio, the provider
// enums and the sentinel errors the adapters map to HTTP statuses.
//
// It imports nothing outside the standard library, and nothing inside
// internal/ imports upward from it.
package domain
