package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	"github.com/stretchr/testify/assert"
)

func TestForecastItemNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Forecast(context.Background(), domain.ForecastRequest{
		ItemID:              f.genID.Generate().String(),
		ForecastHorizonDays: 30,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.bridge.calls)
}

func TestForecastInsufficientData(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Infusion Pump")
	f.seedApproved(t, item.ID, 10, 5, 1)

	_, err := f.svc.Forecast(context.Background(), domain.ForecastRequest{
		ItemID:              item.ID.String(),
		ForecastHorizonDays: 30,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientData)
	assert.Empty(t, f.bridge.calls)
}

func TestForecastRejectsBadHorizon(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Infusion Pump")

	_, err := f.svc.Forecast(context.Background(), domain.ForecastRequest{
		ItemID:              item.ID.String(),
		ForecastHorizonDays: 400,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestForecastRejectsUnknownModelHint(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Infusion Pump")

	_, err := f.svc.Forecast(context.Background(), domain.ForecastRequest{
		ItemID:              item.ID.String(),
		ForecastHorizonDays: 30,
		ModelHint:           "prophet",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestForecastAssemblesHistoryAndReportsAccuracy(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Infusion Pump")
	// 40 approved records, quantity 10, all within the last 200 days.
	f.seedApproved(t, item.ID, 40, 10, 1)

	f.bridge.responses[bridge.ActionForecast] = json.RawMessage(
		`{"predictions":[{"date":"2025-06-02","quantity":11}],"model_used":"auto","accuracy":0.9,"confidence_intervals":[{"lower":8,"upper":14}]}`)

	resp, err := f.svc.Forecast(context.Background(), domain.ForecastRequest{
		ItemID:              item.ID.String(),
		ForecastHorizonDays: 30,
		RequestedBy:         "user-1",
	})
	assert.NoError(t, err)

	assert.Equal(t, item.ID.String(), resp.ItemID)
	assert.Equal(t, "Infusion Pump", resp.ItemName)
	assert.Equal(t, 0.9, resp.Accuracy)
	assert.Equal(t, "auto", resp.ModelUsed)
	assert.Equal(t, f.clk.Now(), resp.GeneratedAt)

	// The worker saw all 40 points with the protocol field names.
	assert.Equal(t, []string{bridge.ActionForecast}, f.bridge.calls)
	payload, ok := f.bridge.payloads[0].(domain.ForecastPayload)
	assert.True(t, ok)
	assert.Len(t, payload.HistoricalData, 40)
	assert.Equal(t, 30, payload.ForecastHorizon)
	assert.Equal(t, "auto", payload.ModelType)
	assert.Equal(t, 10, payload.HistoricalData[0].Quantity)

	// The run is durably recorded and audited.
	var runs []domain.ForecastRun
	assert.NoError(t, f.db.Find(&runs).Error)
	assert.Len(t, runs, 1)
	assert.Equal(t, item.ID, runs[0].ItemID)
	assert.Equal(t, 0.9, runs[0].Accuracy)

	assert.Len(t, f.audit.entries, 1)
	assert.Equal(t, "ai.forecast", f.audit.entries[0].Action)
	assert.Equal(t, 0.9, f.audit.entries[0].NewValues["accuracy"])
}

func TestForecastWrapsBridgeFailure(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Infusion Pump")
	f.seedApproved(t, item.ID, 35, 10, 1)

	f.bridge.errs[bridge.ActionForecast] = &bridge.ExecutionError{ExitCode: 2, Stderr: "model store corrupted"}

	_, err := f.svc.Forecast(context.Background(), domain.ForecastRequest{
		ItemID:              item.ID.String(),
		ForecastHorizonDays: 30,
	})

	assert.ErrorIs(t, err, domain.ErrForecastFailed)
	assert.Contains(t, err.Error(), "model store corrupted")

	var execErr *bridge.ExecutionError
	assert.False(t, errors.As(err, &execErr), "bridge error kinds do not leak through the orchestrator")
}
