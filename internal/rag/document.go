package rag

// Metadata holds flat scalar fields attached to a document. List-valued
// attributes are comma-joined strings so the record survives any store that
// cannot persist nested structures.
type Metadata map[string]any

// Clone returns an independent copy. Chunks derived from one document must
// not share a mutable map.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Source returns the citation identifier, or fallback when absent.
func (m Metadata) Source(fallback string) string {
	if s, ok := m["source"].(string); ok && s != "" {
		return s
	}
	return fallback
}

// TrimCount returns the trim_count field regardless of how the store
// round-tripped the number (JSON decoding yields float64).
func (m Metadata) TrimCount() int {
	switch v := m["trim_count"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Document is one searchable record: the rendered text of a model group plus
// its flattened metadata.
type Document struct {
	Text     string
	Metadata Metadata
}

// IsPlaceholder reports whether the document is the empty-knowledge-base
// placeholder emitted when the input has zero model groups.
func (d Document) IsPlaceholder() bool {
	return d.Metadata.Source("") == PlaceholderSource
}

// Chunk is a bounded-length fragment of a document submitted for embedding.
// It carries a copy of the parent document's metadata.
type Chunk struct {
	Text     string
	Metadata Metadata
}
