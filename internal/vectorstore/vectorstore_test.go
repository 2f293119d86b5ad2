package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	t.Run("identical vectors", func(t *testing.T) {
		v := []float32{0.5, 1.0, -2.0}
		assert.InDelta(t, 1.0, float64(CosineSimilarity(v, v)), 1e-6)
	})

	t.Run("orthogonal vectors", func(t *testing.T) {
		assert.InDelta(t, 0.0, float64(CosineSimilarity([]float32{1, 0}, []float32{0, 1})), 1e-6)
	})

	t.Run("opposite vectors", func(t *testing.T) {
		assert.InDelta(t, -1.0, float64(CosineSimilarity([]float32{1, 2}, []float32{-1, -2})), 1e-6)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		assert.Zero(t, CosineSimilarity([]float32{1, 2}, []float32{1}))
	})

	t.Run("empty and zero vectors", func(t *testing.T) {
		assert.Zero(t, CosineSimilarity(nil, nil))
		assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	})
}

func TestTopK(t *testing.T) {
	scores := []float32{0.1, 0.9, 0.5, 0.9, 0.2}

	t.Run("descending with stable ties", func(t *testing.T) {
		assert.Equal(t, []int{1, 3, 2}, TopK(scores, 3))
	})

	t.Run("k larger than input", func(t *testing.T) {
		assert.Equal(t, []int{1, 3, 2, 4, 0}, TopK(scores, 10))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, TopK(nil, 5))
	})
}
