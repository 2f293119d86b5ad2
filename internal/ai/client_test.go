package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Complete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Based on [m1], it has two trims."}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test")
	answer, err := client.Complete(context.Background(), "llama3.2:3b", []ChatMessage{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "q"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Based on [m1], it has two trims.", answer)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "llama3.2:3b", gotBody["model"])
	assert.Equal(t, false, gotBody["stream"])
}

func TestClient_CompleteErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").Complete(context.Background(), "m", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
		}))
		defer server.Close()

		_, err := NewClient(server.URL, "").Complete(context.Background(), "m", nil)
		assert.Error(t, err)
	})
}

func TestClient_Embed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "no auth header without an api key")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer server.Close()

	vec, err := NewClient(server.URL, "").Embed(context.Background(), "mxbai-embed-large", "some text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestClient_EmbedRejectsEmptyInput(t *testing.T) {
	_, err := NewClient("http://unused", "").Embed(context.Background(), "m", "   ")
	assert.Error(t, err)
}

func TestClient_EmbedBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		data := make([]map[string]any, len(body.Input))
		for i := range body.Input {
			data[i] = map[string]any{"embedding": []float32{float32(i), 1}}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	vectors, err := client.EmbedBatch(context.Background(), "m", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vectors, 3)
	assert.Equal(t, []float32{2, 1}, vectors[2])

	empty, err := client.EmbedBatch(context.Background(), "m", nil)
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestClient_EmbedBatchCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float32{1}}},
		})
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "").EmbedBatch(context.Background(), "m", []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}
