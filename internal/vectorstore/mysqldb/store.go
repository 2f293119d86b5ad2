// Package mysqldb is a vector index persisted through gorm. Chunks survive
// restarts; similarity ranking happens in process after loading the handle's
// rows, so it suits the moderate per-upload corpus sizes this service sees.
package mysqldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vmap-rag/internal/model"
	"vmap-rag/internal/rag"
	"vmap-rag/internal/repository"
	"vmap-rag/internal/vectorstore"
)

var ErrNoChunks = errors.New("no chunks to index")

// Store implements rag.VectorIndex on top of the chunk repository.
type Store struct {
	repo     *repository.ChunkRepository
	embedder vectorstore.Embedder
}

func NewStore(repo *repository.ChunkRepository, embedder vectorstore.Embedder) *Store {
	return &Store{repo: repo, embedder: embedder}
}

// Index embeds the chunks and persists (content, vector, metadata) rows
// under a fresh handle.
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

	handle := uuid.NewString()
	records := make([]model.ChunkRecord, len(chunks))
	for i := range chunks {
		records[i] = model.ChunkRecord{
			IndexID: handle,
			Content: chunks[i].Text,
		}
		records[i].SetEmbedding(vectors[i])
		records[i].SetMetadata(chunks[i].Metadata)
	}
	if err := s.repo.CreateBatch(records); err != nil {
		return "", err
	}
	return handle, nil
}

// Retrieve loads the handle's rows and returns the k nearest by cosine
// similarity, best first.
func (s *Store) Retrieve(ctx context.Context, handle, query string, k int) ([]rag.Chunk, error) {
	records, err := s.repo.ListByIndexID(handle)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("unknown or empty index handle %s", handle)
	}
	if k <= 0 {
		k = rag.DefaultTopK
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	scores := make([]float32, len(records))
	for i := range records {
		scores[i] = vectorstore.CosineSimilarity(queryVec, records[i].EmbeddingVector())
	}

	idxs := vectorstore.TopK(scores, k)
	out := make([]rag.Chunk, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, rag.Chunk{
			Text:     records[i].Content,
			Metadata: records[i].MetadataMap(),
		})
	}
	return out, nil
}

// Drop deletes every row stored under handle.
func (s *Store) Drop(_ context.Context, handle string) error {
	return s.repo.DeleteByIndexID(handle)
}
