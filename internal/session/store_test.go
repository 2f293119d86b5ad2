package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmap-rag/internal/rag"
)

type noopIndex struct {
	dropped int
}

func (n *noopIndex) Index(ctx context.Context, chunks []rag.Chunk) (string, error) {
	return "h", nil
}

func (n *noopIndex) Retrieve(ctx context.Context, handle, query string, k int) ([]rag.Chunk, error) {
	return nil, nil
}

func (n *noopIndex) Drop(ctx context.Context, handle string) error {
	n.dropped++
	return nil
}

type noopSource struct{}

func (noopSource) Read(path string) (rag.Table, error) {
	return rag.Table{Columns: []string{
		rag.ColModelID, rag.ColMakeName, rag.ColModelName,
		rag.ColCoxMakeName, rag.ColCoxTrimName,
	}}, nil
}

type noopGen struct{}

func (noopGen) Complete(ctx context.Context, messages []rag.Message) (string, error) {
	return "", nil
}

func newTestStore(index rag.VectorIndex) *Store {
	return NewStore(func() *rag.Session {
		return rag.NewSession(noopSource{}, index, noopGen{})
	})
}

func TestStore_CreateAndLookup(t *testing.T) {
	store := newTestStore(&noopIndex{})

	id, sess := store.Create()
	require.NotEmpty(t, id)
	require.NotNil(t, sess)

	got, ok := store.Lookup(id)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, store.Len())
}

func TestStore_CreateIssuesDistinctIDs(t *testing.T) {
	store := newTestStore(&noopIndex{})

	id1, _ := store.Create()
	id2, _ := store.Create()
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, store.Len())
}

func TestStore_LookupUnknown(t *testing.T) {
	store := newTestStore(&noopIndex{})

	_, ok := store.Lookup("missing")
	assert.False(t, ok)
}

func TestStore_EvictResetsSession(t *testing.T) {
	index := &noopIndex{}
	store := newTestStore(index)

	id, sess := store.Create()
	// Arm the session so Evict has a handle to release.
	result := sess.Initialize(context.Background(), "empty.csv")
	require.True(t, result.Success)

	store.Evict(id)

	_, ok := store.Lookup(id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, 1, index.dropped)

	// Unknown ids are a no-op.
	store.Evict(id)
	assert.Equal(t, 1, index.dropped)
}
