package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"go.uber.org/zap"
)

// Model hints the worker understands. "auto" lets the worker pick.
var validModelHints = map[string]struct{}{
	"auto":                  {},
	"arima":                 {},
	"exponential_smoothing": {},
	"linear_regression":     {},
	"seasonal_decompose":    {},
}

func (s *Service) Forecast(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, error) {
	itemID, err := snowflake.ParseString(strings.TrimSpace(req.ItemID))
	if err != nil || itemID == 0 {
		return nil, fmt.Errorf("%w: item_id is not a valid id", domain.ErrInvalidRequest)
	}

	horizon := req.ForecastHorizonDays
	if horizon == 0 {
		horizon = s.planning.Get().ForecastHorizonDays
	}
	if horizon < 1 || horizon > 365 {
		return nil, fmt.Errorf("%w: forecast_horizon_days must be within [1,365]", domain.ErrInvalidRequest)
	}

	hint := strings.TrimSpace(req.ModelHint)
	if hint == "" {
		hint = "auto"
	}
	if _, ok := validModelHints[hint]; !ok {
		return nil, fmt.Errorf("%w: unknown model_hint %q", domain.ErrInvalidRequest, hint)
	}

	hist, err := s.assembleHistory(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrForecastFailed, err)
	}
	if len(hist.points) < domain.MinHistoryPoints {
		return nil, fmt.Errorf("%w: have %d approved records, need %d",
			domain.ErrInsufficientData, len(hist.points), domain.MinHistoryPoints)
	}

	payload := domain.ForecastPayload{
		ItemID:          itemID.String(),
		ItemName:        hist.item.Name,
		HistoricalData:  hist.points,
		ForecastHorizon: horizon,
		ModelType:       hint,
	}

	raw, err := s.bridge.Invoke(ctx, bridge.ActionForecast, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrForecastFailed, err)
	}

	var result domain.ForecastResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding worker response: %v", domain.ErrForecastFailed, err)
	}

	modelUsed := result.ModelUsed
	if modelUsed == "" {
		modelUsed = hint
	}

	now := s.clock.Now()
	run := &domain.ForecastRun{
		ID:          s.genID.Generate(),
		ItemID:      itemID,
		ModelUsed:   modelUsed,
		HorizonDays: horizon,
		Accuracy:    result.Accuracy,
		RequestedBy: req.RequestedBy,
		CreatedAt:   now,
	}
	if err := s.repo.InsertForecastRun(ctx, s.db, run); err != nil {
		return nil, fmt.Errorf("%w: persisting forecast run: %v", domain.ErrForecastFailed, err)
	}

	entityID := itemID.String()
	s.audit.Record(ctx, auditdomain.Entry{
		Action:     "ai.forecast",
		EntityType: "item",
		EntityID:   &entityID,
		UserID:     strptr(req.RequestedBy),
		NewValues: map[string]any{
			"forecast_horizon": horizon,
			"model_hint":       hint,
			"accuracy":         result.Accuracy,
		},
	})

	s.log.Info("forecast completed",
		zap.String("item_id", entityID),
		zap.String("model_used", modelUsed),
		zap.Int("horizon_days", horizon),
		zap.Int("history_points", len(hist.points)),
		zap.Float64("accuracy", result.Accuracy),
	)

	return &domain.ForecastResponse{
		ItemID:              entityID,
		ItemName:            hist.item.Name,
		Predictions:         result.Predictions,
		ModelUsed:           modelUsed,
		Accuracy:            result.Accuracy,
		ConfidenceIntervals: result.ConfidenceIntervals,
		GeneratedAt:         now,
	}, nil
}
