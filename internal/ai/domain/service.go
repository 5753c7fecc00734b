package domain

import (
	"context"
	"encoding/json"
	"time"
)

// SystemActor tags bridge work issued by the application itself rather than
// an end user (cache-triggered regeneration).
const SystemActor = "system"

type ForecastRequest struct {
	ItemID              string `json:"item_id"`
	ForecastHorizonDays int    `json:"forecast_horizon_days"`
	ModelHint           string `json:"model_hint"`
	RequestedBy         string `json:"-"`
}

type ForecastResponse struct {
	ItemID              string          `json:"item_id"`
	ItemName            string          `json:"item_name"`
	Predictions         json.RawMessage `json:"predictions"`
	ModelUsed           string          `json:"model_used"`
	Accuracy            float64         `json:"accuracy"`
	ConfidenceIntervals json.RawMessage `json:"confidence_intervals,omitempty"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

type OptimizationRequest struct {
	TargetItemID    string   `json:"target_item_id"`
	TargetItemIDs   []string `json:"target_item_ids"`
	ServiceLevel    float64  `json:"service_level"`
	HoldingCostRate float64  `json:"holding_cost_rate"`
	OrderingCost    float64  `json:"ordering_cost"`
	RequestedBy     string   `json:"-"`
}

type OptimizationResponse struct {
	OptimizedItems  []OptimizedItem `json:"optimized_items"`
	BusinessImpact  json.RawMessage `json:"business_impact,omitempty"`
	Recommendations json.RawMessage `json:"recommendations,omitempty"`
	OptimizedAt     time.Time       `json:"optimized_at"`
}

// HealthStatus is always returned, never an error. WorkerDetail carries the
// worker's own health document when the call succeeded.
type HealthStatus struct {
	WorkerStatus          string          `json:"worker_status"`
	StoreConnectivity     string          `json:"store_connectivity"`
	RecentRecommendations int64           `json:"recent_recommendations"`
	WorkerDetail          json.RawMessage `json:"worker_detail,omitempty"`
	Error                 string          `json:"error,omitempty"`
}

type Service interface {
	Forecast(ctx context.Context, req ForecastRequest) (*ForecastResponse, error)
	Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResponse, error)

	// GetRecommendation serves a fresh stored recommendation or regenerates
	// one. It returns ErrNoRecommendation instead of failing when nothing
	// can be produced.
	GetRecommendation(ctx context.Context, itemID string) (*AIRecommendation, error)

	CheckHealth(ctx context.Context) *HealthStatus
	RetrainModels(ctx context.Context, userID string) (json.RawMessage, error)
	GetModelPerformance(ctx context.Context) (json.RawMessage, error)
	AnalyzeDemandPatterns(ctx context.Context) (json.RawMessage, error)
}
