package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
)

// Repository persists and lists audit rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends one audit row.
func (r *Repository) Create(ctx context.Context, row *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// ListParams narrows the audit listing.
type ListParams struct {
	EntityType string
	Limit      int
	Offset     int
}

// List returns audit rows newest first.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.AuditLog, error) {
	query := r.db.WithContext(ctx).Model(&models.AuditLog{}).Order("created_at DESC")
	if params.EntityType != "" {
		query = query.Where("entity_type = ?", params.EntityType)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var rows []models.AuditLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
