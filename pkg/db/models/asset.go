package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/epc-retail/exclusivity-backend/pkg/enums"
)

// Asset is a tracked piece of hardware (desktop, laptop, peripheral).
type Asset struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssetTag     string            `gorm:"column:asset_tag;not null;uniqueIndex"`
	AssetType    enums.AssetType   `gorm:"column:asset_type;not null"`
	Brand        string            `gorm:"column:brand"`
	Model        string            `gorm:"column:model"`
	SerialNumber *string           `gorm:"column:serial_number"`
	PurchaseCost decimal.Decimal   `gorm:"column:purchase_cost;type:numeric(12,2)"`
	Status       enums.AssetStatus `gorm:"column:status;not null;default:available"`
	Notes        *string           `gorm:"column:notes"`
	Assignments  []AssetAssignment `gorm:"foreignKey:AssetID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Asset) TableName() string {
	return "assets"
}
