package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/epc-retail/exclusivity-backend/pkg/types"
)

// AuditLog is append-only. Migrations never touch existing rows and the
// application never updates or deletes them.
type AuditLog struct {
	ID         uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EntityType string        `gorm:"column:entity_type;not null"`
	EntityID   string        `gorm:"column:entity_id;not null"`
	Action     string        `gorm:"column:action;not null"`
	EntityName string        `gorm:"column:entity_name"`
	UserID     string        `gorm:"column:user_id"`
	UserName   string        `gorm:"column:user_name"`
	UserEmail  string        `gorm:"column:user_email"`
	IPAddress  string        `gorm:"column:ip_address"`
	Details    types.JSONMap `gorm:"column:details;type:jsonb"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
