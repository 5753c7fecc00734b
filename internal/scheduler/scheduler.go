// Package scheduler refreshes stale AI recommendations in the background so
// interactive callers rarely pay the regeneration cost themselves.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	aidomain "github.com/rsmedika/inventaris/internal/ai/domain"
	"github.com/rsmedika/inventaris/internal/clock"
	"github.com/rsmedika/inventaris/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// refreshBatchSize caps how many stale items one tick touches. Every
// refresh spawns two worker processes, so this doubles as a process budget.
const refreshBatchSize = 25

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Cfg   config.Config
	Clock clock.Clock
	AISvc aidomain.Service
}

type Scheduler struct {
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	aiSvc    aidomain.Service
	interval time.Duration
	ttl      time.Duration
}

func New(p Params) *Scheduler {
	return &Scheduler{
		db:       p.DB,
		log:      p.Log.Named("scheduler"),
		clock:    p.Clock,
		aiSvc:    p.AISvc,
		interval: p.Cfg.Worker.RefreshInterval,
		ttl:      p.Cfg.Worker.RecommendationTTL,
	}
}

func (s *Scheduler) Enabled() bool {
	return s.interval > 0
}

func (s *Scheduler) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshStale(ctx)
		}
	}
}

// RefreshStale regenerates up to refreshBatchSize recommendations whose
// freshness window has lapsed, oldest first.
func (s *Scheduler) RefreshStale(ctx context.Context) {
	cutoff := s.clock.Now().Add(-s.ttl)

	var itemIDs []snowflake.ID
	err := s.db.WithContext(ctx).
		Model(&aidomain.AIRecommendation{}).
		Where("last_updated < ?", cutoff).
		Order("last_updated asc").
		Limit(refreshBatchSize).
		Pluck("item_id", &itemIDs).Error
	if err != nil {
		s.log.Warn("stale recommendation scan failed", zap.Error(err))
		return
	}
	if len(itemIDs) == 0 {
		return
	}

	refreshed := 0
	for _, itemID := range itemIDs {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.aiSvc.GetRecommendation(ctx, itemID.String()); err != nil {
			if errors.Is(err, aidomain.ErrNoRecommendation) {
				continue
			}
			s.log.Warn("background refresh failed",
				zap.String("item_id", itemID.String()), zap.Error(err))
			continue
		}
		refreshed++
	}

	s.log.Info("stale recommendations refreshed",
		zap.Int("stale", len(itemIDs)),
		zap.Int("refreshed", refreshed),
	)
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, s *Scheduler) {
		if !s.Enabled() {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				go s.loop(ctx)
				return nil
			},
			OnStop: func(context.Context) error {
				cancel()
				return nil
			},
		})
	}),
)
