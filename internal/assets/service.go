package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/epc-retail/exclusivity-backend/internal/audit"
	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	"github.com/epc-retail/exclusivity-backend/pkg/enums"
	pkgerrors "github.com/epc-retail/exclusivity-backend/pkg/errors"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
)

// Service manages the hardware asset register.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*AssetDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*AssetDTO, error)
	List(ctx context.Context, params ListParams) ([]AssetDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*AssetDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Checkout(ctx context.Context, id uuid.UUID, input CheckoutInput) (*AssetDTO, error)
	Checkin(ctx context.Context, id uuid.UUID) (*AssetDTO, error)
}

type assetStore interface {
	Create(ctx context.Context, asset *models.Asset) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	FindByTag(ctx context.Context, tag string) (*models.Asset, error)
	List(ctx context.Context, params ListParams) ([]models.Asset, error)
	Save(ctx context.Context, asset *models.Asset) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	OpenAssignment(ctx context.Context, assetID uuid.UUID) (*models.AssetAssignment, error)
	Checkout(ctx context.Context, asset *models.Asset, assignment *models.AssetAssignment) error
	Checkin(ctx context.Context, asset *models.Asset, assignmentID uuid.UUID, at time.Time) error
}

type service struct {
	repo    assetStore
	auditor audit.Recorder
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs the asset service.
func NewService(repo assetStore, auditor audit.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("asset repository required")
	}
	if auditor == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, auditor: auditor, logg: logg, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*AssetDTO, error) {
	assetType, err := enums.ParseAssetType(input.AssetType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	if _, err := s.repo.FindByTag(ctx, input.AssetTag); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "asset tag already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: asset tag lookup")
	}

	asset := models.Asset{
		AssetTag:     input.AssetTag,
		AssetType:    assetType,
		Brand:        input.Brand,
		Model:        input.Model,
		SerialNumber: input.SerialNumber,
		Status:       enums.AssetStatusAvailable,
		Notes:        input.Notes,
	}
	if input.PurchaseCost != nil {
		asset.PurchaseCost = *input.PurchaseCost
	} else {
		asset.PurchaseCost = decimal.Zero
	}
	if err := s.repo.Create(ctx, &asset); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create asset")
	}

	s.recordAudit(ctx, asset, "create", map[string]any{"assetType": string(assetType)})
	dto := NewAssetDTO(asset)
	return &dto, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*AssetDTO, error) {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewAssetDTO(*asset)
	return &dto, nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]AssetDTO, error) {
	if params.Status != "" {
		if _, err := enums.ParseAssetStatus(params.Status); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
	}
	assets, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list assets")
	}
	return NewAssetDTOs(assets), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*AssetDTO, error) {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if input.Brand != nil {
		asset.Brand = *input.Brand
		changed["brand"] = *input.Brand
	}
	if input.Model != nil {
		asset.Model = *input.Model
		changed["model"] = *input.Model
	}
	if input.SerialNumber != nil {
		asset.SerialNumber = input.SerialNumber
		changed["serialNumber"] = *input.SerialNumber
	}
	if input.PurchaseCost != nil {
		asset.PurchaseCost = *input.PurchaseCost
		changed["purchaseCost"] = input.PurchaseCost.String()
	}
	if input.Notes != nil {
		asset.Notes = input.Notes
		changed["notes"] = true
	}
	if input.Status != nil {
		status, err := enums.ParseAssetStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		if status == enums.AssetStatusCheckedOut {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status checked_out is set through checkout")
		}
		if asset.Status == enums.AssetStatusCheckedOut {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "asset is checked out; check it in first")
		}
		asset.Status = status
		changed["status"] = string(status)
	}
	if len(changed) == 0 {
		dto := NewAssetDTO(*asset)
		return &dto, nil
	}

	if err := s.repo.Save(ctx, asset); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update asset")
	}
	s.recordAudit(ctx, *asset, "update", changed)
	dto := NewAssetDTO(*asset)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return err
	}
	if asset.Status == enums.AssetStatusCheckedOut {
		return pkgerrors.New(pkgerrors.CodeConflict, "asset is checked out; check it in first")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete asset")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
	}
	s.recordAudit(ctx, *asset, "delete", nil)
	return nil
}

// Checkout opens an assignment and flips the status. Only an available
// asset can go out.
func (s *service) Checkout(ctx context.Context, id uuid.UUID, input CheckoutInput) (*AssetDTO, error) {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.Status != enums.AssetStatusAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeConflict,
			fmt.Sprintf("asset is %s, not available", asset.Status))
	}
	if open, err := s.repo.OpenAssignment(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: open assignment lookup")
	} else if open != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "asset already has an open assignment")
	}

	assignment := models.AssetAssignment{
		AssetID:       id,
		AssigneeName:  input.AssigneeName,
		AssigneeEmail: input.AssigneeEmail,
		CheckedOutAt:  s.now(),
		Notes:         input.Notes,
	}
	asset.Status = enums.AssetStatusCheckedOut
	if err := s.repo.Checkout(ctx, asset, &assignment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: checkout asset")
	}

	s.recordAudit(ctx, *asset, "checkout", map[string]any{
		"assigneeName":  input.AssigneeName,
		"assigneeEmail": input.AssigneeEmail,
	})
	return s.Get(ctx, id)
}

// Checkin closes the open assignment and makes the asset available again.
func (s *service) Checkin(ctx context.Context, id uuid.UUID) (*AssetDTO, error) {
	asset, err := s.loadAsset(ctx, id)
	if err != nil {
		return nil, err
	}
	open, err := s.repo.OpenAssignment(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: open assignment lookup")
	}
	if open == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "asset has no open assignment")
	}

	asset.Status = enums.AssetStatusAvailable
	if err := s.repo.Checkin(ctx, asset, open.ID, s.now()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: checkin asset")
	}

	s.recordAudit(ctx, *asset, "checkin", map[string]any{
		"assigneeEmail": open.AssigneeEmail,
	})
	return s.Get(ctx, id)
}

func (s *service) loadAsset(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "asset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load asset")
	}
	return asset, nil
}

func (s *service) recordAudit(ctx context.Context, asset models.Asset, action string, details map[string]any) {
	err := s.auditor.Record(ctx, audit.Entry{
		EntityType: "asset",
		EntityID:   asset.ID.String(),
		EntityName: asset.AssetTag,
		Action:     action,
		Details:    details,
	})
	if err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("audit record skipped: %v", err))
	}
}
