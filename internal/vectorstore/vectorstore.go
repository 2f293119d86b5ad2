// Package vectorstore provides similarity-index implementations behind the
// core's VectorIndex contract, plus the embedding boundary they share.
package vectorstore

import (
	"context"
	"math"
	"sort"
)

// Embedder turns text into vectors. Implementations call the embedding
// backend synchronously and surface its failures unwrapped-but-tagged as
// rag.ErrEmbedding.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0
// when either vector is empty, mismatched, or zero-length.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// TopK returns the indices of the k highest scores, descending. Ties keep
// input order.
func TopK(scores []float32, k int) []int {
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool {
		return scores[idxs[a]] > scores[idxs[b]]
	})
	if k > len(idxs) {
		k = len(idxs)
	}
	return idxs[:k]
}
