// Package memory is an in-process vector index using brute-force cosine
// similarity. One handle addresses one isolated snapshot of chunks.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"vmap-rag/internal/rag"
	"vmap-rag/internal/vectorstore"
)

var (
	ErrNoChunks      = errors.New("no chunks to index")
	ErrUnknownHandle = errors.New("unknown index handle")
)

type entry struct {
	chunk  rag.Chunk
	vector []float32
}

// Store keeps embedded chunks in RAM, keyed by opaque handle. It implements
// rag.VectorIndex. Safe for concurrent use across sessions.
type Store struct {
	mu       sync.RWMutex
	embedder vectorstore.Embedder
	indexes  map[string][]entry
}

func NewStore(embedder vectorstore.Embedder) *Store {
	return &Store{
		embedder: embedder,
		indexes:  make(map[string][]entry),
	}
}

// Index embeds every chunk and stores the triples under a fresh handle.
func (s *Store) Index(ctx context.Context, chunks []rag.Chunk) (string, error) {
	if len(chunks) == 0 {
		return "", ErrNoChunks
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return "", err
	}
	if len(vectors) != len(chunks) {
		return "", fmt.Errorf("%w: got %d vectors for %d chunks", rag.ErrEmbedding, len(vectors), len(chunks))
	}

	entries := make([]entry, len(chunks))
	for i := range chunks {
		entries[i] = entry{chunk: chunks[i], vector: vectors[i]}
	}

	handle := uuid.NewString()
	s.mu.Lock()
	s.indexes[handle] = entries
	s.mu.Unlock()
	return handle, nil
}

// Retrieve embeds the query and returns the k nearest chunks by cosine
// similarity, best first.
func (s *Store) Retrieve(ctx context.Context, handle, query string, k int) ([]rag.Chunk, error) {
	s.mu.RLock()
	entries, ok := s.indexes[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownHandle
	}
	if k <= 0 {
		k = rag.DefaultTopK
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scores := make([]float32, len(entries))
	for i := range entries {
		scores[i] = vectorstore.CosineSimilarity(queryVec, entries[i].vector)
	}

	idxs := vectorstore.TopK(scores, k)
	out := make([]rag.Chunk, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, entries[i].chunk)
	}
	return out, nil
}

// Drop discards the snapshot behind handle. Unknown handles are a no-op.
func (s *Store) Drop(_ context.Context, handle string) error {
	s.mu.Lock()
	delete(s.indexes, handle)
	s.mu.Unlock()
	return nil
}
