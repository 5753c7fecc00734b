package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Item is one hospital asset type tracked by the inventory.
type Item struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"not null" json:"name"`
	Category     string            `gorm:"index" json:"category"`
	UnitCost     float64           `json:"unit_cost"`
	CurrentStock int               `gorm:"not null;default:0" json:"current_stock"`
	LeadTimeDays int               `json:"lead_time_days"`
	SupplierName string            `json:"supplier_name"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`
}

func (Item) TableName() string {
	return "items"
}
