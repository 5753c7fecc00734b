package domain

import "errors"

var (
	// ErrNotFound: the item (or every requested item) does not exist.
	ErrNotFound = errors.New("item_not_found")
	// ErrInsufficientData: fewer than MinHistoryPoints approved records.
	ErrInsufficientData = errors.New("insufficient_historical_data")
	// ErrInvalidRequest: malformed forecast or optimization parameters.
	ErrInvalidRequest = errors.New("invalid_ai_request")
	// ErrNoRecommendation: no stored recommendation and regeneration
	// produced none. Not a failure.
	ErrNoRecommendation = errors.New("recommendation_not_available")

	// ErrForecastFailed and ErrOptimizationFailed wrap bridge and store
	// failures at the orchestrator boundary.
	ErrForecastFailed     = errors.New("forecast_failed")
	ErrOptimizationFailed = errors.New("optimization_failed")
)

// MinHistoryPoints is the smallest approved-record history a forecast will
// accept.
const MinHistoryPoints = 30

// HistoryRecordCap bounds how many recent records the assembler loads.
const HistoryRecordCap = 365
