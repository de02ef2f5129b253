package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"adRecoDashboard/business/loader"
	"adRecoDashboard/domain"
)

const mappingInsertBatch = 500

type ClusterMappingRepository struct {
	DB *gorm.DB
}

var _ loader.MappingSource = (*ClusterMappingRepository)(nil)

func NewClusterMappingRepository(db *gorm.DB) *ClusterMappingRepository {
	return &ClusterMappingRepository{DB: db}
}

// LoadMapping returns every mapping row in table (id) order.
func (r *ClusterMappingRepository) LoadMapping(ctx context.Context) ([]domain.ClusterMappingRow, error) {
	var rows []domain.ClusterMappingRow

	err := r.DB.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load cluster mappings: %w", err)
	}
	return rows, nil
}

// ReplaceAll swaps the table contents for rows, preserving their order.
func (r *ClusterMappingRepository) ReplaceAll(ctx context.Context, rows []domain.ClusterMappingRow) error {
	fresh := make([]domain.ClusterMappingRow, len(rows))
	for i, row := range rows {
		row.ID = 0
		fresh[i] = row
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&domain.ClusterMappingRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear cluster mappings: %w", err)
		}
		if len(fresh) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(&fresh, mappingInsertBatch).Error; err != nil {
			return fmt.Errorf("failed to insert cluster mappings: %w", err)
		}
		return nil
	})
}
