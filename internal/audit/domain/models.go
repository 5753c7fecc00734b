package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog is one recorded action against an entity.
type AuditLog struct {
	ID         snowflake.ID      `gorm:"primaryKey" json:"id"`
	Action     string            `gorm:"not null;index" json:"action"`
	EntityType string            `gorm:"not null;index" json:"entity_type"`
	EntityID   *string           `gorm:"index" json:"entity_id,omitempty"`
	UserID     *string           `json:"user_id,omitempty"`
	OldValues  datatypes.JSONMap `gorm:"type:jsonb" json:"old_values,omitempty"`
	NewValues  datatypes.JSONMap `gorm:"type:jsonb" json:"new_values,omitempty"`
	CreatedAt  time.Time         `gorm:"not null;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditCursor is the keyset position for audit log pagination.
type AuditCursor struct {
	ID        snowflake.ID
	CreatedAt time.Time
}

// ListFilter narrows the audit log listing.
type ListFilter struct {
	Action     string
	EntityType string
	EntityID   string
	StartAt    *time.Time
	EndAt      *time.Time
	Cursor     *AuditCursor
	Limit      int
}
