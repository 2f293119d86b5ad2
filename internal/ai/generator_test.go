package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vmap-rag/internal/rag"
)

func TestGenerator_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []ChatMessage `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "answer"}},
			},
		})
	}))
	defer server.Close()

	gen := NewGenerator(NewClient(server.URL, ""), "llama3.2:3b")
	answer, err := gen.Complete(context.Background(), rag.BuildMessages("[m1] ctx", "q"))

	require.NoError(t, err)
	assert.Equal(t, "answer", answer)
}

func TestGenerator_WrapsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gen := NewGenerator(NewClient(server.URL, ""), "llama3.2:3b")
	_, err := gen.Complete(context.Background(), rag.BuildMessages("", "q"))

	assert.ErrorIs(t, err, rag.ErrGeneration)
}
