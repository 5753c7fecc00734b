package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// RequestStatus is the lifecycle state of an asset request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// AssetRequest is one request for a quantity of an item. Only approved
// requests contribute to demand history.
type AssetRequest struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	ItemID      snowflake.ID  `gorm:"not null;index" json:"item_id"`
	RequestedBy string        `gorm:"not null" json:"requested_by"`
	Quantity    int           `gorm:"not null" json:"quantity"`
	Status      RequestStatus `gorm:"not null;index;default:pending" json:"status"`
	Reason      string        `json:"reason,omitempty"`
	FulfilledAt *time.Time    `gorm:"index" json:"fulfilled_at,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null" json:"updated_at"`
}

func (AssetRequest) TableName() string {
	return "asset_requests"
}

// EffectiveDate is the demand date of the request: the fulfillment time when
// recorded, otherwise the creation time.
func (r AssetRequest) EffectiveDate() time.Time {
	if r.FulfilledAt != nil {
		return *r.FulfilledAt
	}
	return r.CreatedAt
}
