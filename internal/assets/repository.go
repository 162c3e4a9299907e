package assets

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	"github.com/epc-retail/exclusivity-backend/pkg/pagination"
)

// Repository persists assets and their assignment history.
type Repository struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) *Repository {
	return &Repository{db: gdb}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

// FindByID loads an asset with its assignments, newest checkout first.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("checked_out_at DESC")
		}).
		First(&asset, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *Repository) FindByTag(ctx context.Context, tag string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).First(&asset, "asset_tag = ?", tag).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// List returns assets filtered by status and type, ordered by tag.
func (r *Repository) List(ctx context.Context, params ListParams) ([]models.Asset, error) {
	q := r.db.WithContext(ctx).Model(&models.Asset{})
	if params.Status != "" {
		q = q.Where("status = ?", params.Status)
	}
	if params.AssetType != "" {
		q = q.Where("asset_type = ?", params.AssetType)
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	var assets []models.Asset
	err := q.Order("asset_tag").
		Limit(pagination.NormalizeLimit(params.Limit)).
		Offset(offset).
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *Repository) Save(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Asset{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// OpenAssignment returns the assignment with no check-in time, if any.
func (r *Repository) OpenAssignment(ctx context.Context, assetID uuid.UUID) (*models.AssetAssignment, error) {
	var assignment models.AssetAssignment
	err := r.db.WithContext(ctx).
		First(&assignment, "asset_id = ? AND checked_in_at IS NULL", assetID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func (r *Repository) createAssignment(ctx context.Context, assignment *models.AssetAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// closeAssignment stamps the open assignment's check-in time.
func (r *Repository) closeAssignment(ctx context.Context, assignmentID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.AssetAssignment{}).
		Where("id = ?", assignmentID).
		Update("checked_in_at", at).Error
}

// Checkout opens the assignment and flips the asset status in one
// transaction so a failed status write cannot leave a dangling assignment.
func (r *Repository) Checkout(ctx context.Context, asset *models.Asset, assignment *models.AssetAssignment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := r.WithTx(tx)
		if err := repo.createAssignment(ctx, assignment); err != nil {
			return err
		}
		return repo.Save(ctx, asset)
	})
}

// Checkin closes the assignment and restores the asset status in one
// transaction.
func (r *Repository) Checkin(ctx context.Context, asset *models.Asset, assignmentID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := r.WithTx(tx)
		if err := repo.closeAssignment(ctx, assignmentID, at); err != nil {
			return err
		}
		return repo.Save(ctx, asset)
	})
}
