package repository

import (
	"fmt"

	"gorm.io/gorm"

	"vmap-rag/internal/model"
)

type ChunkRepository struct {
	db *gorm.DB
}

func NewChunkRepository(db *gorm.DB) *ChunkRepository {
	return &ChunkRepository{db: db}
}

func (r *ChunkRepository) CreateBatch(chunks []model.ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}
	if err := r.db.Create(&chunks).Error; err != nil {
		return fmt.Errorf("create chunk records batch failed: %w", err)
	}
	return nil
}

// ListByIndexID returns every chunk stored under one index handle.
func (r *ChunkRepository) ListByIndexID(indexID string) ([]model.ChunkRecord, error) {
	var chunks []model.ChunkRecord
	if err := r.db.Where("index_id = ?", indexID).Order("id").Find(&chunks).Error; err != nil {
		return nil, fmt.Errorf("list chunk records by index id failed: %w", err)
	}
	return chunks, nil
}

func (r *ChunkRepository) DeleteByIndexID(indexID string) error {
	if err := r.db.Where("index_id = ?", indexID).Delete(&model.ChunkRecord{}).Error; err != nil {
		return fmt.Errorf("delete chunk records by index id failed: %w", err)
	}
	return nil
}
