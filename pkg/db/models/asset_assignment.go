package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetAssignment is one check-out. An open assignment has a NULL
// checked_in_at; an asset has at most one open assignment at a time.
type AssetAssignment struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	AssetID       uuid.UUID  `gorm:"column:asset_id;type:uuid;not null;index"`
	AssigneeName  string     `gorm:"column:assignee_name;not null"`
	AssigneeEmail string     `gorm:"column:assignee_email;not null"`
	CheckedOutAt  time.Time  `gorm:"column:checked_out_at;not null"`
	CheckedInAt   *time.Time `gorm:"column:checked_in_at"`
	Notes         *string    `gorm:"column:notes"`
}

func (AssetAssignment) TableName() string {
	return "asset_assignments"
}
