package scheduler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	aidomain "github.com/rsmedika/inventaris/internal/ai/domain"
	"github.com/rsmedika/inventaris/internal/clock"
	"github.com/rsmedika/inventaris/internal/config"
	"github.com/rsmedika/inventaris/pkg/db"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingAIService struct {
	requested []string
	err       error
}

func (r *recordingAIService) Forecast(context.Context, aidomain.ForecastRequest) (*aidomain.ForecastResponse, error) {
	return nil, nil
}

func (r *recordingAIService) Optimize(context.Context, aidomain.OptimizationRequest) (*aidomain.OptimizationResponse, error) {
	return nil, nil
}

func (r *recordingAIService) GetRecommendation(_ context.Context, itemID string) (*aidomain.AIRecommendation, error) {
	r.requested = append(r.requested, itemID)
	if r.err != nil {
		return nil, r.err
	}
	return &aidomain.AIRecommendation{}, nil
}

func (r *recordingAIService) CheckHealth(context.Context) *aidomain.HealthStatus {
	return &aidomain.HealthStatus{}
}

func (r *recordingAIService) RetrainModels(context.Context, string) (json.RawMessage, error) {
	return nil, nil
}

func (r *recordingAIService) GetModelPerformance(context.Context) (json.RawMessage, error) {
	return nil, nil
}

func (r *recordingAIService) AnalyzeDemandPatterns(context.Context) (json.RawMessage, error) {
	return nil, nil
}

func newTestScheduler(t *testing.T) (*Scheduler, *recordingAIService, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	dbConn, err := db.NewTest()
	assert.NoError(t, err)
	assert.NoError(t, dbConn.AutoMigrate(&aidomain.AIRecommendation{}))

	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	aiSvc := &recordingAIService{}

	sched := New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		Clock: clk,
		AISvc: aiSvc,
		Cfg: config.Config{
			Worker: config.WorkerConfig{
				RefreshInterval:   time.Minute,
				RecommendationTTL: 24 * time.Hour,
			},
		},
	})
	return sched, aiSvc, dbConn, clk
}

func seedRecommendation(t *testing.T, dbConn *gorm.DB, itemID snowflake.ID, lastUpdated time.Time) {
	t.Helper()
	rec := &aidomain.AIRecommendation{
		ItemID:      itemID,
		ItemName:    "Infusion Pump",
		LastUpdated: lastUpdated,
	}
	assert.NoError(t, dbConn.Create(rec).Error)
}

func TestRefreshStaleTargetsOnlyLapsedRecommendations(t *testing.T) {
	sched, aiSvc, dbConn, clk := newTestScheduler(t)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	stale := node.Generate()
	fresh := node.Generate()
	seedRecommendation(t, dbConn, stale, clk.Now().Add(-30*time.Hour))
	seedRecommendation(t, dbConn, fresh, clk.Now().Add(-time.Hour))

	sched.RefreshStale(context.Background())

	assert.Equal(t, []string{stale.String()}, aiSvc.requested)
}

func TestRefreshStaleContinuesPastAbsentItems(t *testing.T) {
	sched, aiSvc, dbConn, clk := newTestScheduler(t)
	aiSvc.err = aidomain.ErrNoRecommendation

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	first := node.Generate()
	second := node.Generate()
	seedRecommendation(t, dbConn, first, clk.Now().Add(-48*time.Hour))
	seedRecommendation(t, dbConn, second, clk.Now().Add(-30*time.Hour))

	sched.RefreshStale(context.Background())

	// Oldest first, and the absence error does not halt the batch.
	assert.Equal(t, []string{first.String(), second.String()}, aiSvc.requested)
}

func TestRefreshStaleNoStaleRowsSpawnsNothing(t *testing.T) {
	sched, aiSvc, dbConn, clk := newTestScheduler(t)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)
	seedRecommendation(t, dbConn, node.Generate(), clk.Now().Add(-time.Hour))

	sched.RefreshStale(context.Background())

	assert.Empty(t, aiSvc.requested)
}

func TestSchedulerDisabledWithoutInterval(t *testing.T) {
	sched, _, _, _ := newTestScheduler(t)
	assert.True(t, sched.Enabled())

	sched.interval = 0
	assert.False(t, sched.Enabled())
}
