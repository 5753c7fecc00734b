package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/request/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, req *domain.AssetRequest) error {
	return db.WithContext(ctx).Create(req).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.AssetRequest, error) {
	var req domain.AssetRequest
	err := db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, req *domain.AssetRequest) error {
	return db.WithContext(ctx).Save(req).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, limit int) ([]*domain.AssetRequest, error) {
	var out []*domain.AssetRequest
	stmt := db.WithContext(ctx).Model(&domain.AssetRequest{})

	if filter.ItemID != nil {
		stmt = stmt.Where("item_id = ?", *filter.ItemID)
	}
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}
	if filter.Cursor != nil {
		stmt = stmt.Where("id < ?", filter.Cursor.ID)
	}

	stmt = stmt.Order("id desc")
	if limit > 0 {
		stmt = stmt.Limit(limit + 1)
	}

	if err := stmt.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repo) FindRecentApprovedByItem(ctx context.Context, db *gorm.DB, itemID snowflake.ID, limit int) ([]*domain.AssetRequest, error) {
	var out []*domain.AssetRequest
	stmt := db.WithContext(ctx).
		Model(&domain.AssetRequest{}).
		Where("item_id = ?", itemID).
		Where("status = ?", domain.StatusApproved).
		Order("COALESCE(fulfilled_at, created_at) DESC").
		Order("id DESC")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	if err := stmt.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
