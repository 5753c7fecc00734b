package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	UpsertRecommendation(ctx context.Context, db *gorm.DB, rec *AIRecommendation) error
	// FindRecommendation returns ErrNoRecommendation when no row exists.
	FindRecommendation(ctx context.Context, db *gorm.DB, itemID snowflake.ID) (*AIRecommendation, error)
	CountRecentlyUpdated(ctx context.Context, db *gorm.DB, since time.Time) (int64, error)
	InsertForecastRun(ctx context.Context, db *gorm.DB, run *ForecastRun) error
}
