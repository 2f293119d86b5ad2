package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmap-rag/internal/rag"
)

// stubEmbedder returns canned vectors per text so similarity is deterministic.
type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = s.vectors[t]
	}
	return out, nil
}

func testChunks() []rag.Chunk {
	return []rag.Chunk{
		{Text: "ram trims", Metadata: rag.Metadata{"source": "ram_power-wagon"}},
		{Text: "audi trims", Metadata: rag.Metadata{"source": "audi_a3"}},
		{Text: "tesla fuel", Metadata: rag.Metadata{"source": "tesla_model-3"}},
	}
}

func testEmbedder() *stubEmbedder {
	return &stubEmbedder{vectors: map[string][]float32{
		"ram trims":   {1, 0, 0},
		"audi trims":  {0, 1, 0},
		"tesla fuel":  {0, 0, 1},
		"about ram":   {0.9, 0.1, 0},
		"about tesla": {0, 0.1, 0.9},
	}}
}

func TestStore_IndexAndRetrieve(t *testing.T) {
	store := NewStore(testEmbedder())

	handle, err := store.Index(context.Background(), testChunks())
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	got, err := store.Retrieve(context.Background(), handle, "about ram", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "ram_power-wagon", got[0].Metadata.Source(""))
	assert.Equal(t, "audi_a3", got[1].Metadata.Source(""))

	got, err = store.Retrieve(context.Background(), handle, "about tesla", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tesla_model-3", got[0].Metadata.Source(""))
}

func TestStore_IndexEmpty(t *testing.T) {
	store := NewStore(testEmbedder())

	_, err := store.Index(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoChunks)
}

func TestStore_IndexEmbedderFailure(t *testing.T) {
	embedder := testEmbedder()
	embedder.err = errors.New("backend down")
	store := NewStore(embedder)

	_, err := store.Index(context.Background(), testChunks())
	assert.Error(t, err)
}

func TestStore_HandlesAreIsolated(t *testing.T) {
	store := NewStore(testEmbedder())

	h1, err := store.Index(context.Background(), testChunks()[:1])
	require.NoError(t, err)
	h2, err := store.Index(context.Background(), testChunks()[1:])
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)

	got, err := store.Retrieve(context.Background(), h1, "about tesla", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ram_power-wagon", got[0].Metadata.Source(""))
}

func TestStore_Drop(t *testing.T) {
	store := NewStore(testEmbedder())

	handle, err := store.Index(context.Background(), testChunks())
	require.NoError(t, err)

	require.NoError(t, store.Drop(context.Background(), handle))

	_, err = store.Retrieve(context.Background(), handle, "about ram", 1)
	assert.ErrorIs(t, err, ErrUnknownHandle)

	// Dropping again is a no-op.
	assert.NoError(t, store.Drop(context.Background(), handle))
}
