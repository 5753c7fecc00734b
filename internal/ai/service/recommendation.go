package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	"go.uber.org/zap"
)

// GetRecommendation is the caller-facing cache path. A fresh stored record
// is served as-is; a missing or stale one triggers a forecast plus an
// optimization run with the planning defaults, issued as the system actor.
// Regeneration failures degrade to ErrNoRecommendation, never to a hard
// error.
func (s *Service) GetRecommendation(ctx context.Context, itemID string) (*domain.AIRecommendation, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(itemID))
	if err != nil || id == 0 {
		return nil, domain.ErrNoRecommendation
	}

	rec, err := s.repo.FindRecommendation(ctx, s.db, id)
	if err == nil && rec.Fresh(s.clock.Now(), s.ttl) {
		s.metrics.CacheHit()
		return rec, nil
	}
	if err != nil && !errors.Is(err, domain.ErrNoRecommendation) {
		s.log.Warn("recommendation lookup failed, regenerating",
			zap.String("item_id", itemID), zap.Error(err))
	}

	s.metrics.CacheMiss()
	return s.regenerate(ctx, id)
}

func (s *Service) regenerate(ctx context.Context, id snowflake.ID) (*domain.AIRecommendation, error) {
	if release, proceed := s.acquireRegenLock(ctx, id); !proceed {
		// Another regeneration is in flight; serve whatever is stored.
		rec, err := s.repo.FindRecommendation(ctx, s.db, id)
		if err != nil {
			return nil, domain.ErrNoRecommendation
		}
		return rec, nil
	} else if release != nil {
		defer release()
	}

	planning := s.planning.Get()

	forecast, err := s.Forecast(ctx, domain.ForecastRequest{
		ItemID:              id.String(),
		ForecastHorizonDays: planning.ForecastHorizonDays,
		ModelHint:           "auto",
		RequestedBy:         domain.SystemActor,
	})
	if err != nil {
		s.log.Warn("regeneration forecast failed",
			zap.String("item_id", id.String()), zap.Error(err))
		return nil, domain.ErrNoRecommendation
	}

	if _, err := s.Optimize(ctx, domain.OptimizationRequest{
		TargetItemID:    id.String(),
		ServiceLevel:    planning.ServiceLevel,
		HoldingCostRate: planning.HoldingCostRate,
		OrderingCost:    planning.OrderingCost,
		RequestedBy:     domain.SystemActor,
	}); err != nil {
		s.log.Warn("regeneration optimization failed",
			zap.String("item_id", id.String()), zap.Error(err))
		return nil, domain.ErrNoRecommendation
	}

	rec, err := s.repo.FindRecommendation(ctx, s.db, id)
	if err != nil {
		// The worker produced no entry for this item. Valid outcome.
		return nil, domain.ErrNoRecommendation
	}

	// The forecast's accuracy wins over the default applied during
	// optimization.
	if rec.ForecastAccuracy != forecast.Accuracy {
		rec.ForecastAccuracy = forecast.Accuracy
		if err := s.repo.UpsertRecommendation(ctx, s.db, rec); err != nil {
			s.log.Warn("merged accuracy not persisted",
				zap.String("item_id", id.String()), zap.Error(err))
		}
	}

	s.metrics.Regenerated()
	s.log.Info("recommendation regenerated",
		zap.String("item_id", id.String()),
		zap.Float64("forecast_accuracy", rec.ForecastAccuracy),
	)
	return rec, nil
}

// acquireRegenLock takes the best-effort per-item redis lock. Returns
// proceed=false only when another holder is confirmed; lock errors and a
// missing locker fall through to regenerating anyway.
func (s *Service) acquireRegenLock(ctx context.Context, id snowflake.ID) (release func(), proceed bool) {
	if s.locker == nil || s.lockTTL <= 0 {
		return nil, true
	}

	key := "ai:regenerate:" + id.String()
	token, ok, err := s.locker.TryLock(ctx, key, s.lockTTL)
	if err != nil {
		s.log.Debug("regeneration lock unavailable", zap.Error(err))
		return nil, true
	}
	if !ok {
		return nil, false
	}
	return func() {
		if err := s.locker.Release(ctx, key, token); err != nil {
			s.log.Debug("regeneration lock release failed", zap.Error(err))
		}
	}, true
}
