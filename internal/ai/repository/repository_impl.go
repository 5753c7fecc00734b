package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) UpsertRecommendation(ctx context.Context, db *gorm.DB, rec *domain.AIRecommendation) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			UpdateAll: true,
		}).
		Create(rec).Error
}

func (r *repo) FindRecommendation(ctx context.Context, db *gorm.DB, itemID snowflake.ID) (*domain.AIRecommendation, error) {
	var rec domain.AIRecommendation
	err := db.WithContext(ctx).First(&rec, "item_id = ?", itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoRecommendation
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repo) CountRecentlyUpdated(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.AIRecommendation{}).
		Where("last_updated >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repo) InsertForecastRun(ctx context.Context, db *gorm.DB, run *domain.ForecastRun) error {
	return db.WithContext(ctx).Create(run).Error
}
