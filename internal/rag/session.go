package rag

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// TableSource reads the raw rows of a delimited file.
type TableSource interface {
	Read(path string) (Table, error)
}

// VectorIndex is the external similarity-index contract. Index embeds and
// persists chunks behind an opaque handle; Retrieve embeds the query and
// returns the k nearest chunks. The core assumes nothing about the
// underlying algorithm.
type VectorIndex interface {
	Index(ctx context.Context, chunks []Chunk) (string, error)
	Retrieve(ctx context.Context, handle, query string, k int) ([]Chunk, error)
	Drop(ctx context.Context, handle string) error
}

// InitResult is the structured outcome of Initialize.
type InitResult struct {
	Success      bool   `json:"success"`
	VehicleCount int    `json:"vehicle_count,omitempty"`
	Filename     string `json:"filename,omitempty"`
	Message      string `json:"message"`
	Error        string `json:"error,omitempty"`
}

// QueryResult is the structured outcome of Query.
type QueryResult struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Question string `json:"question,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Stats is a read-only snapshot of session state.
type Stats struct {
	Initialized  bool   `json:"initialized"`
	VehicleCount int    `json:"vehicle_count"`
	Filename     string `json:"filename"`
	HasVectorDB  bool   `json:"has_vectordb"`
	HasChain     bool   `json:"has_chain"`
}

// Session orchestrates the build and query pipelines for one caller.
// Lifecycle: empty -> Initialize -> ready -> Reset -> empty. Initialize is
// all-or-nothing: on any failure the observable state is exactly what it
// was before the call. Methods are not safe for concurrent use on one
// session; callers hold one session per actor and serialize access.
type Session struct {
	source   TableSource
	index    VectorIndex
	gen      Generator
	splitter *Splitter
	topK     int

	handle       string
	filename     string
	vehicleCount int
	initialized  bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithTopK sets the retrieval depth.
func WithTopK(k int) SessionOption {
	return func(s *Session) {
		if k > 0 {
			s.topK = k
		}
	}
}

// WithSplitter replaces the default chunker.
func WithSplitter(sp *Splitter) SessionOption {
	return func(s *Session) {
		if sp != nil {
			s.splitter = sp
		}
	}
}

// NewSession creates an empty session over the given collaborators.
func NewSession(source TableSource, index VectorIndex, gen Generator, opts ...SessionOption) *Session {
	s := &Session{
		source:   source,
		index:    index,
		gen:      gen,
		splitter: NewSplitter(),
		topK:     DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize reads the file at path, builds documents, chunks and indexes
// them, and arms the query pipeline. A re-initialize replaces the previous
// index; the old handle is dropped only after the new one is committed.
func (s *Session) Initialize(ctx context.Context, path string) InitResult {
	table, err := s.source.Read(path)
	if err != nil {
		return initFailure(err)
	}

	docs, err := BuildDocuments(table)
	if err != nil {
		return initFailure(err)
	}

	chunks := s.splitter.SplitAll(docs)
	handle, err := s.index.Index(ctx, chunks)
	if err != nil {
		return initFailure(err)
	}

	old := s.handle
	s.handle = handle
	s.filename = filepath.Base(path)
	s.vehicleCount = VehicleCount(docs)
	s.initialized = true
	if old != "" {
		_ = s.index.Drop(ctx, old)
	}

	return InitResult{
		Success:      true,
		VehicleCount: s.vehicleCount,
		Filename:     s.filename,
		Message:      fmt.Sprintf("Successfully initialized RAG system with %d vehicles", s.vehicleCount),
	}
}

func initFailure(err error) InitResult {
	return InitResult{
		Success: false,
		Error:   err.Error(),
		Message: "Failed to initialize RAG system: " + err.Error(),
	}
}

// Query runs retrieve -> format -> generate for one question. Failures
// never mutate session state.
func (s *Session) Query(ctx context.Context, question string) QueryResult {
	if !s.initialized {
		return QueryResult{
			Success:  false,
			Error:    ErrNotInitialized.Error(),
			Response: "Please upload a CSV file first to initialize the system.",
		}
	}

	chunks, err := s.index.Retrieve(ctx, s.handle, question, s.topK)
	if err != nil {
		return queryFailure(err)
	}

	contextBlock := FormatDocs(chunks)
	answer, err := s.gen.Complete(ctx, BuildMessages(contextBlock, question))
	if err != nil {
		return queryFailure(err)
	}

	return QueryResult{
		Success:  true,
		Response: strings.TrimSpace(answer),
		Question: question,
	}
}

func queryFailure(err error) QueryResult {
	return QueryResult{
		Success:  false,
		Error:    err.Error(),
		Response: "Error processing query: " + err.Error(),
	}
}

// Reset returns the session to its empty state. Idempotent; the index
// handle is dropped best-effort.
func (s *Session) Reset() {
	if s.handle != "" {
		_ = s.index.Drop(context.Background(), s.handle)
	}
	s.handle = ""
	s.filename = ""
	s.vehicleCount = 0
	s.initialized = false
}

// Stats reads the current state without side effects.
func (s *Session) Stats() Stats {
	return Stats{
		Initialized:  s.initialized,
		VehicleCount: s.vehicleCount,
		Filename:     s.filename,
		HasVectorDB:  s.handle != "",
		HasChain:     s.initialized && s.gen != nil,
	}
}
