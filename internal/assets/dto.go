package assets

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/epc-retail/exclusivity-backend/pkg/db/models"
	"github.com/epc-retail/exclusivity-backend/pkg/enums"
)

// CreateInput registers a new asset.
type CreateInput struct {
	AssetTag     string           `json:"assetTag" validate:"required,max=64"`
	AssetType    string           `json:"assetType" validate:"required"`
	Brand        string           `json:"brand" validate:"max=100"`
	Model        string           `json:"model" validate:"max=100"`
	SerialNumber *string          `json:"serialNumber" validate:"omitempty,max=100"`
	PurchaseCost *decimal.Decimal `json:"purchaseCost"`
	Notes        *string          `json:"notes"`
}

// UpdateInput patches an asset. Nil fields are left untouched.
type UpdateInput struct {
	Brand        *string          `json:"brand" validate:"omitempty,max=100"`
	Model        *string          `json:"model" validate:"omitempty,max=100"`
	SerialNumber *string          `json:"serialNumber" validate:"omitempty,max=100"`
	PurchaseCost *decimal.Decimal `json:"purchaseCost"`
	Status       *string          `json:"status"`
	Notes        *string          `json:"notes"`
}

// CheckoutInput assigns an asset to a person.
type CheckoutInput struct {
	AssigneeName  string  `json:"assigneeName" validate:"required,max=200"`
	AssigneeEmail string  `json:"assigneeEmail" validate:"required,email,max=200"`
	Notes         *string `json:"notes"`
}

// ListParams filters the asset listing.
type ListParams struct {
	Status    string `json:"status"`
	AssetType string `json:"assetType"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

// AssignmentDTO is one checkout record.
type AssignmentDTO struct {
	ID            uuid.UUID  `json:"id"`
	AssigneeName  string     `json:"assigneeName"`
	AssigneeEmail string     `json:"assigneeEmail"`
	CheckedOutAt  time.Time  `json:"checkedOutAt"`
	CheckedInAt   *time.Time `json:"checkedInAt,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

// AssetDTO is the API shape of an asset with its assignment history.
type AssetDTO struct {
	ID           uuid.UUID         `json:"id"`
	AssetTag     string            `json:"assetTag"`
	AssetType    enums.AssetType   `json:"assetType"`
	Brand        string            `json:"brand,omitempty"`
	Model        string            `json:"model,omitempty"`
	SerialNumber *string           `json:"serialNumber,omitempty"`
	PurchaseCost decimal.Decimal   `json:"purchaseCost"`
	Status       enums.AssetStatus `json:"status"`
	Notes        *string           `json:"notes,omitempty"`
	Assignments  []AssignmentDTO   `json:"assignments,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// NewAssetDTO converts a model row.
func NewAssetDTO(asset models.Asset) AssetDTO {
	dto := AssetDTO{
		ID:           asset.ID,
		AssetTag:     asset.AssetTag,
		AssetType:    asset.AssetType,
		Brand:        asset.Brand,
		Model:        asset.Model,
		SerialNumber: asset.SerialNumber,
		PurchaseCost: asset.PurchaseCost,
		Status:       asset.Status,
		Notes:        asset.Notes,
		CreatedAt:    asset.CreatedAt,
		UpdatedAt:    asset.UpdatedAt,
	}
	for _, a := range asset.Assignments {
		dto.Assignments = append(dto.Assignments, AssignmentDTO{
			ID:            a.ID,
			AssigneeName:  a.AssigneeName,
			AssigneeEmail: a.AssigneeEmail,
			CheckedOutAt:  a.CheckedOutAt,
			CheckedInAt:   a.CheckedInAt,
			Notes:         a.Notes,
		})
	}
	return dto
}

// NewAssetDTOs converts a slice of model rows.
func NewAssetDTOs(assets []models.Asset) []AssetDTO {
	out := make([]AssetDTO, len(assets))
	for i, asset := range assets {
		out[i] = NewAssetDTO(asset)
	}
	return out
}
