package domain

import "encoding/json"

// Wire types exchanged with the analytics worker. Field names are part of
// the worker protocol and must stay lower_snake_case.

// DemandPoint is one day of approved demand. Date is a calendar day in
// 2006-01-02 form.
type DemandPoint struct {
	Date     string `json:"date"`
	Quantity int    `json:"quantity"`
}

type ForecastPayload struct {
	ItemID          string        `json:"item_id"`
	ItemName        string        `json:"item_name"`
	HistoricalData  []DemandPoint `json:"historical_data"`
	ForecastHorizon int           `json:"forecast_horizon"`
	ModelType       string        `json:"model_type"`
}

// ForecastResult is the worker's forecast response. Predictions and
// confidence intervals are passed through untouched.
type ForecastResult struct {
	Predictions         json.RawMessage `json:"predictions"`
	ModelUsed           string          `json:"model_used"`
	Accuracy            float64         `json:"accuracy"`
	ConfidenceIntervals json.RawMessage `json:"confidence_intervals,omitempty"`
}

type OptimizeItemData struct {
	ItemID       string  `json:"item_id"`
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	UnitCost     float64 `json:"unit_cost"`
	CurrentStock int     `json:"current_stock"`
	LeadTimeDays int     `json:"lead_time_days"`
	AnnualDemand int     `json:"annual_demand"`
	SupplierName string  `json:"supplier_name"`
}

type OptimizePayload struct {
	ItemsData       []OptimizeItemData `json:"items_data"`
	ServiceLevel    float64            `json:"service_level"`
	HoldingCostRate float64            `json:"holding_cost_rate"`
	OrderingCost    float64            `json:"ordering_cost"`
}

// OptimizedItem is one entry of the worker's optimize response. Optional
// fields stay pointers so omitted values can be told apart from zeros.
type OptimizedItem struct {
	ItemID               string   `json:"item_id"`
	ItemName             string   `json:"item_name"`
	CurrentStock         *int     `json:"current_stock,omitempty"`
	OptimalOrderQuantity int      `json:"optimal_order_quantity"`
	ReorderPoint         int      `json:"reorder_point"`
	SafetyStock          int      `json:"safety_stock"`
	ForecastAccuracy     *float64 `json:"forecast_accuracy,omitempty"`
	ABCCategory          string   `json:"abc_category,omitempty"`
	RecommendationNotes  []string `json:"recommendation_notes,omitempty"`
}

type OptimizeResult struct {
	OptimizedItems  []OptimizedItem `json:"optimized_items"`
	BusinessImpact  json.RawMessage `json:"business_impact,omitempty"`
	Recommendations json.RawMessage `json:"recommendations,omitempty"`
}

// TotalPotentialSavings digs the savings figure out of the opaque business
// impact document. Zero when absent.
func (r OptimizeResult) TotalPotentialSavings() float64 {
	if len(r.BusinessImpact) == 0 {
		return 0
	}
	var impact struct {
		TotalPotentialSavings float64 `json:"total_potential_savings"`
	}
	if err := json.Unmarshal(r.BusinessImpact, &impact); err != nil {
		return 0
	}
	return impact.TotalPotentialSavings
}
