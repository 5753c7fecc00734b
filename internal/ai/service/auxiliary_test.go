package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/stretchr/testify/assert"
)

func TestCheckHealthDegradesOnWorkerFailure(t *testing.T) {
	f := newFixture(t)
	f.bridge.errs[bridge.ActionHealthCheck] = &bridge.LaunchError{Err: assert.AnError}

	status := f.svc.CheckHealth(context.Background())

	assert.Equal(t, "unhealthy", status.WorkerStatus)
	assert.Equal(t, "unknown", status.StoreConnectivity)
	assert.Equal(t, int64(0), status.RecentRecommendations)
	assert.NotEmpty(t, status.Error)
}

func TestCheckHealthCountsRecentRecommendations(t *testing.T) {
	f := newFixture(t)
	itemA := f.seedItem(t, "Ventilator")
	itemB := f.seedItem(t, "Defibrillator")
	f.seedRecommendation(t, itemA.ID, f.clk.Now().AddDate(0, 0, -3))
	f.seedRecommendation(t, itemB.ID, f.clk.Now().AddDate(0, 0, -10))

	f.bridge.responses[bridge.ActionHealthCheck] = json.RawMessage(`{"models_loaded":4}`)

	status := f.svc.CheckHealth(context.Background())

	assert.Equal(t, "healthy", status.WorkerStatus)
	assert.Equal(t, "connected", status.StoreConnectivity)
	assert.Equal(t, int64(1), status.RecentRecommendations)
	assert.JSONEq(t, `{"models_loaded":4}`, string(status.WorkerDetail))
}

func TestRetrainModelsRecordsAudit(t *testing.T) {
	f := newFixture(t)
	f.bridge.responses[bridge.ActionRetrain] = json.RawMessage(`{"status":"scheduled"}`)

	out, err := f.svc.RetrainModels(context.Background(), "admin-1")
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":"scheduled"}`, string(out))

	assert.Len(t, f.audit.entries, 1)
	assert.Equal(t, "ai.retrain", f.audit.entries[0].Action)
	assert.Equal(t, "admin-1", *f.audit.entries[0].UserID)
}

func TestPerformanceAndPatternsPassThrough(t *testing.T) {
	f := newFixture(t)
	f.bridge.responses[bridge.ActionGetPerformance] = json.RawMessage(`{"mape":0.12}`)
	f.bridge.responses[bridge.ActionAnalyzePatterns] = json.RawMessage(`{"seasonal":true}`)

	perf, err := f.svc.GetModelPerformance(context.Background())
	assert.NoError(t, err)
	assert.JSONEq(t, `{"mape":0.12}`, string(perf))

	patterns, err := f.svc.AnalyzeDemandPatterns(context.Background())
	assert.NoError(t, err)
	assert.JSONEq(t, `{"seasonal":true}`, string(patterns))

	assert.Equal(t, []string{bridge.ActionGetPerformance, bridge.ActionAnalyzePatterns}, f.bridge.calls)
}
