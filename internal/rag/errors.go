package rag

import (
	"errors"
	"strings"
)

var (
	// ErrNotInitialized is returned when Query runs before a successful Initialize.
	ErrNotInitialized = errors.New("RAG system not initialized")

	// ErrEmbedding marks failures from the embedding backend.
	ErrEmbedding = errors.New("embedding service error")

	// ErrGeneration marks failures from the generation backend.
	ErrGeneration = errors.New("generation service error")
)

// SchemaError reports every required column absent from the input schema.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "CSV is missing required columns: " + strings.Join(e.Missing, ", ")
}
