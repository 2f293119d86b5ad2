package model

import (
	"encoding/json"
	"time"

	"vmap-rag/internal/rag"
)

// ChunkRecord persists one embedded chunk. Embedding and metadata are stored
// as JSON text for portability across MySQL versions.
type ChunkRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IndexID   string    `gorm:"size:64;not null;index" json:"index_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Embedding string    `gorm:"type:mediumtext" json:"-"` // JSON array of float32
	Metadata  string    `gorm:"type:text" json:"-"`       // flat JSON object
	CreatedAt time.Time `json:"created_at"`
}

// EmbeddingVector returns the parsed embedding; empty on parse error.
func (c *ChunkRecord) EmbeddingVector() []float32 {
	if c.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(c.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (c *ChunkRecord) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		c.Embedding = "[]"
		return
	}
	b, _ := json.Marshal(vec)
	c.Embedding = string(b)
}

// MetadataMap returns the parsed metadata; empty map on parse error.
func (c *ChunkRecord) MetadataMap() rag.Metadata {
	m := rag.Metadata{}
	if c.Metadata != "" {
		_ = json.Unmarshal([]byte(c.Metadata), &m)
	}
	return m
}

// SetMetadata stores the flat metadata map as JSON.
func (c *ChunkRecord) SetMetadata(m rag.Metadata) {
	if len(m) == 0 {
		c.Metadata = "{}"
		return
	}
	b, _ := json.Marshal(m)
	c.Metadata = string(b)
}
