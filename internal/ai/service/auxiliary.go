package service

import (
	"context"
	"encoding/json"

	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"go.uber.org/zap"
)

// CheckHealth probes the worker and the store. It never returns an error:
// a failed worker call degrades to an unhealthy status instead.
func (s *Service) CheckHealth(ctx context.Context) *domain.HealthStatus {
	raw, err := s.bridge.Invoke(ctx, bridge.ActionHealthCheck, map[string]any{})
	if err != nil {
		s.log.Warn("worker health check failed", zap.Error(err))
		return &domain.HealthStatus{
			WorkerStatus:          "unhealthy",
			StoreConnectivity:     "unknown",
			RecentRecommendations: 0,
			Error:                 err.Error(),
		}
	}

	status := &domain.HealthStatus{
		WorkerStatus: "healthy",
		WorkerDetail: raw,
	}

	since := s.clock.Now().AddDate(0, 0, -7)
	count, err := s.repo.CountRecentlyUpdated(ctx, s.db, since)
	if err != nil {
		s.log.Warn("recommendation count failed during health check", zap.Error(err))
		status.StoreConnectivity = "error"
		return status
	}

	status.StoreConnectivity = "connected"
	status.RecentRecommendations = count
	return status
}

func (s *Service) RetrainModels(ctx context.Context, userID string) (json.RawMessage, error) {
	raw, err := s.bridge.Invoke(ctx, bridge.ActionRetrain, map[string]any{})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     "ai.retrain",
		EntityType: "ai_model",
		UserID:     strptr(userID),
	})

	s.log.Info("model retrain requested", zap.String("user_id", userID))
	return raw, nil
}

func (s *Service) GetModelPerformance(ctx context.Context) (json.RawMessage, error) {
	return s.bridge.Invoke(ctx, bridge.ActionGetPerformance, map[string]any{})
}

func (s *Service) AnalyzeDemandPatterns(ctx context.Context) (json.RawMessage, error) {
	return s.bridge.Invoke(ctx, bridge.ActionAnalyzePatterns, map[string]any{})
}
