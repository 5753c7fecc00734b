package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	defaultForecastAccuracy = 0.85
	defaultABCCategory      = "N/A"
	defaultSupplierName     = "Unknown"
)

func (s *Service) Optimize(ctx context.Context, req domain.OptimizationRequest) (*domain.OptimizationResponse, error) {
	targets, err := resolveTargets(req)
	if err != nil {
		return nil, err
	}
	if err := validateCostParams(req); err != nil {
		return nil, err
	}

	itemsData := make([]domain.OptimizeItemData, 0, len(targets))
	stockByID := make(map[string]domain.OptimizeItemData, len(targets))
	for _, target := range targets {
		itemID, parseErr := snowflake.ParseString(target)
		if parseErr != nil || itemID == 0 {
			// Unresolvable targets are skipped like missing items.
			continue
		}

		hist, histErr := s.assembleHistory(ctx, itemID)
		if histErr != nil {
			if errors.Is(histErr, domain.ErrNotFound) {
				s.log.Debug("optimization target skipped", zap.String("item_id", target))
				continue
			}
			return nil, fmt.Errorf("%w: %v", domain.ErrOptimizationFailed, histErr)
		}

		leadTime := hist.item.LeadTimeDays
		if leadTime <= 0 {
			leadTime = s.planning.Get().LeadTimeDays
		}
		supplier := hist.item.SupplierName
		if supplier == "" {
			supplier = defaultSupplierName
		}

		data := domain.OptimizeItemData{
			ItemID:       itemID.String(),
			ItemName:     hist.item.Name,
			Category:     hist.item.Category,
			UnitCost:     hist.item.UnitCost,
			CurrentStock: hist.item.CurrentStock,
			LeadTimeDays: leadTime,
			AnnualDemand: hist.annualDemand,
			SupplierName: supplier,
		}
		itemsData = append(itemsData, data)
		stockByID[data.ItemID] = data
	}

	if len(itemsData) == 0 {
		return nil, domain.ErrNotFound
	}

	payload := domain.OptimizePayload{
		ItemsData:       itemsData,
		ServiceLevel:    req.ServiceLevel,
		HoldingCostRate: req.HoldingCostRate,
		OrderingCost:    req.OrderingCost,
	}

	raw, err := s.bridge.Invoke(ctx, bridge.ActionOptimize, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOptimizationFailed, err)
	}

	var result domain.OptimizeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: decoding worker response: %v", domain.ErrOptimizationFailed, err)
	}

	now := s.clock.Now()
	for _, optimized := range result.OptimizedItems {
		itemID, parseErr := snowflake.ParseString(optimized.ItemID)
		if parseErr != nil || itemID == 0 {
			s.log.Warn("worker returned unknown item id", zap.String("item_id", optimized.ItemID))
			continue
		}

		rec := recommendationFrom(itemID, optimized, stockByID[optimized.ItemID], now)
		if err := s.repo.UpsertRecommendation(ctx, s.db, rec); err != nil {
			return nil, fmt.Errorf("%w: persisting recommendation: %v", domain.ErrOptimizationFailed, err)
		}
	}

	s.audit.Record(ctx, auditdomain.Entry{
		Action:     "ai.optimize",
		EntityType: "ai_recommendation",
		UserID:     strptr(req.RequestedBy),
		NewValues: map[string]any{
			"item_count":              len(itemsData),
			"service_level":           req.ServiceLevel,
			"total_potential_savings": result.TotalPotentialSavings(),
		},
	})

	s.log.Info("optimization completed",
		zap.Int("requested_items", len(targets)),
		zap.Int("optimized_items", len(result.OptimizedItems)),
		zap.Float64("service_level", req.ServiceLevel),
	)

	return &domain.OptimizationResponse{
		OptimizedItems:  result.OptimizedItems,
		BusinessImpact:  result.BusinessImpact,
		Recommendations: result.Recommendations,
		OptimizedAt:     now,
	}, nil
}

func resolveTargets(req domain.OptimizationRequest) ([]string, error) {
	single := strings.TrimSpace(req.TargetItemID)
	if single != "" {
		return []string{single}, nil
	}

	targets := make([]string, 0, len(req.TargetItemIDs))
	for _, id := range req.TargetItemIDs {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: either target_item_id or target_item_ids is required", domain.ErrInvalidRequest)
	}
	return targets, nil
}

func validateCostParams(req domain.OptimizationRequest) error {
	if req.ServiceLevel <= 0 || req.ServiceLevel > 1 {
		return fmt.Errorf("%w: service_level must be within (0,1]", domain.ErrInvalidRequest)
	}
	if req.HoldingCostRate <= 0 || req.HoldingCostRate > 1 {
		return fmt.Errorf("%w: holding_cost_rate must be within (0,1]", domain.ErrInvalidRequest)
	}
	if req.OrderingCost < 0 {
		return fmt.Errorf("%w: ordering_cost cannot be negative", domain.ErrInvalidRequest)
	}
	return nil
}

// recommendationFrom maps one optimized worker entry to the stored record,
// falling back to the per-item payload and documented defaults for fields
// the worker omitted.
func recommendationFrom(itemID snowflake.ID, optimized domain.OptimizedItem, source domain.OptimizeItemData, now time.Time) *domain.AIRecommendation {
	name := optimized.ItemName
	if name == "" {
		name = source.ItemName
	}

	stock := source.CurrentStock
	if optimized.CurrentStock != nil {
		stock = *optimized.CurrentStock
	}

	accuracy := defaultForecastAccuracy
	if optimized.ForecastAccuracy != nil {
		accuracy = *optimized.ForecastAccuracy
	}

	abc := optimized.ABCCategory
	if abc == "" {
		abc = defaultABCCategory
	}

	notes := optimized.RecommendationNotes
	if notes == nil {
		notes = []string{}
	}

	return &domain.AIRecommendation{
		ItemID:               itemID,
		ItemName:             name,
		CurrentStock:         stock,
		OptimalOrderQuantity: optimized.OptimalOrderQuantity,
		ReorderPoint:         optimized.ReorderPoint,
		SafetyStock:          optimized.SafetyStock,
		ForecastAccuracy:     accuracy,
		ABCCategory:          abc,
		RecommendationNotes:  datatypes.JSONSlice[string](notes),
		LastUpdated:          now,
	}
}
