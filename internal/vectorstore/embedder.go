package vectorstore

import (
	"context"
	"fmt"

	"vmap-rag/internal/ai"
	"vmap-rag/internal/rag"
)

// DefaultEmbedBatchSize caps one embeddings request. DashScope and similar
// APIs often limit batch size.
const DefaultEmbedBatchSize = 10

// ClientEmbedder adapts the OpenAI-compatible client to the Embedder
// boundary, binding the model name and splitting large inputs into batches.
type ClientEmbedder struct {
	client    *ai.Client
	model     string
	batchSize int
}

// NewClientEmbedder creates an embedder over client for the given model.
// batchSize <= 0 uses the default.
func NewClientEmbedder(client *ai.Client, model string, batchSize int) *ClientEmbedder {
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatchSize
	}
	return &ClientEmbedder{client: client, model: model, batchSize: batchSize}
}

func (e *ClientEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.client.Embed(ctx, e.model, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", rag.ErrEmbedding, err)
	}
	return vec, nil
}

func (e *ClientEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var vectors [][]float32
	for i := 0; i < len(texts); i += e.batchSize {
		end := i + e.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.client.EmbedBatch(ctx, e.model, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", rag.ErrEmbedding, err)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}
