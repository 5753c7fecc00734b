package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AIRecommendation is the per-item planning record produced by optimization
// runs. One row per item, overwritten on every run.
type AIRecommendation struct {
	ItemID               snowflake.ID                `gorm:"primaryKey" json:"item_id"`
	ItemName             string                      `gorm:"not null" json:"item_name"`
	CurrentStock         int                         `gorm:"not null" json:"current_stock"`
	OptimalOrderQuantity int                         `gorm:"not null" json:"optimal_order_quantity"`
	ReorderPoint         int                         `gorm:"not null" json:"reorder_point"`
	SafetyStock          int                         `gorm:"not null" json:"safety_stock"`
	ForecastAccuracy     float64                     `gorm:"not null" json:"forecast_accuracy"`
	ABCCategory          string                      `gorm:"column:abc_category;not null" json:"abc_category"`
	RecommendationNotes  datatypes.JSONSlice[string] `json:"recommendation_notes"`
	LastUpdated          time.Time                   `gorm:"not null;index" json:"last_updated"`
}

func (AIRecommendation) TableName() string {
	return "ai_recommendations"
}

// Fresh reports whether the record is recent enough to serve without
// regeneration.
func (r AIRecommendation) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(r.LastUpdated) < ttl
}

// ForecastRun is the durable trace of one completed forecast.
type ForecastRun struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	ItemID      snowflake.ID `gorm:"not null;index" json:"item_id"`
	ModelUsed   string       `gorm:"not null" json:"model_used"`
	HorizonDays int          `gorm:"not null" json:"horizon_days"`
	Accuracy    float64      `gorm:"not null" json:"accuracy"`
	RequestedBy string       `json:"requested_by"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
}

func (ForecastRun) TableName() string {
	return "ai_forecast_runs"
}
