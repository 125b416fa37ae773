// Package normalisers turns uploaded documents into text. The Registry
// picks a normaliser by file extension and falls back to plain text.
package normalisers
