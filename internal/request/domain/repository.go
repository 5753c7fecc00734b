package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, req *AssetRequest) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*AssetRequest, error)
	Update(ctx context.Context, db *gorm.DB, req *AssetRequest) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, limit int) ([]*AssetRequest, error)

	// FindRecentApprovedByItem returns up to limit approved requests for the
	// item, newest effective date first.
	FindRecentApprovedByItem(ctx context.Context, db *gorm.DB, itemID snowflake.ID, limit int) ([]*AssetRequest, error)
}

type ListFilter struct {
	ItemID *snowflake.ID
	Status *RequestStatus
	Cursor *RequestCursor
}

// RequestCursor is the keyset position for list pagination.
type RequestCursor struct {
	ID snowflake.ID `json:"id"`
}
