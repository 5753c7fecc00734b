package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	"github.com/stretchr/testify/assert"
)

func TestOptimizeRequiresTargetSelection(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		ServiceLevel:    0.95,
		HoldingCostRate: 0.25,
		OrderingCost:    150,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	assert.Empty(t, f.bridge.calls)
}

func TestOptimizeRejectsBadServiceLevel(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		TargetItemID:    f.genID.Generate().String(),
		ServiceLevel:    1.5,
		HoldingCostRate: 0.25,
		OrderingCost:    150,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestOptimizeAllItemsMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		TargetItemIDs:   []string{f.genID.Generate().String(), f.genID.Generate().String()},
		ServiceLevel:    0.95,
		HoldingCostRate: 0.25,
		OrderingCost:    150,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.bridge.calls)
}

func TestOptimizeSkipsMissingItems(t *testing.T) {
	f := newFixture(t)
	itemA := f.seedItem(t, "Ventilator")
	f.seedApproved(t, itemA.ID, 12, 4, 1)
	missingB := f.genID.Generate().String()

	f.bridge.responses[bridge.ActionOptimize] = json.RawMessage(
		`{"optimized_items":[{"item_id":"` + itemA.ID.String() + `","item_name":"Ventilator","optimal_order_quantity":60,"reorder_point":20,"safety_stock":8,"forecast_accuracy":0.91,"abc_category":"A","recommendation_notes":["increase order frequency"]}],"business_impact":{"total_potential_savings":1250.5}}`)

	resp, err := f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		TargetItemIDs:   []string{itemA.ID.String(), missingB},
		ServiceLevel:    0.95,
		HoldingCostRate: 0.25,
		OrderingCost:    150,
	})
	assert.NoError(t, err)
	assert.Len(t, resp.OptimizedItems, 1)

	// Only the resolvable item reached the worker.
	payload, ok := f.bridge.payloads[0].(domain.OptimizePayload)
	assert.True(t, ok)
	assert.Len(t, payload.ItemsData, 1)
	assert.Equal(t, itemA.ID.String(), payload.ItemsData[0].ItemID)

	var recs []domain.AIRecommendation
	assert.NoError(t, f.db.Find(&recs).Error)
	assert.Len(t, recs, 1)
	assert.Equal(t, itemA.ID, recs[0].ItemID)
}

func TestOptimizeUpsertAppliesWorkerValuesAndDefaults(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Defibrillator")
	f.seedApproved(t, item.ID, 8, 3, 2)

	// The worker omits forecast_accuracy, abc_category and current_stock.
	f.bridge.responses[bridge.ActionOptimize] = json.RawMessage(
		`{"optimized_items":[{"item_id":"` + item.ID.String() + `","item_name":"Defibrillator","optimal_order_quantity":25,"reorder_point":10,"safety_stock":4}]}`)

	_, err := f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		TargetItemID:    item.ID.String(),
		ServiceLevel:    0.95,
		HoldingCostRate: 0.25,
		OrderingCost:    150,
	})
	assert.NoError(t, err)

	var rec domain.AIRecommendation
	assert.NoError(t, f.db.First(&rec, "item_id = ?", item.ID).Error)
	assert.Equal(t, 25, rec.OptimalOrderQuantity)
	assert.Equal(t, 10, rec.ReorderPoint)
	assert.Equal(t, 4, rec.SafetyStock)
	assert.Equal(t, 0.85, rec.ForecastAccuracy)
	assert.Equal(t, "N/A", rec.ABCCategory)
	assert.Equal(t, item.CurrentStock, rec.CurrentStock)
	assert.WithinDuration(t, f.clk.Now(), rec.LastUpdated, time.Second)

	// A second run overwrites the stored row in place.
	f.bridge.responses[bridge.ActionOptimize] = json.RawMessage(
		`{"optimized_items":[{"item_id":"` + item.ID.String() + `","item_name":"Defibrillator","optimal_order_quantity":40,"reorder_point":14,"safety_stock":6,"forecast_accuracy":0.88,"abc_category":"B"}]}`)

	_, err = f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		TargetItemID:    item.ID.String(),
		ServiceLevel:    0.95,
		HoldingCostRate: 0.25,
		OrderingCost:    150,
	})
	assert.NoError(t, err)

	var count int64
	assert.NoError(t, f.db.Model(&domain.AIRecommendation{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, f.db.First(&rec, "item_id = ?", item.ID).Error)
	assert.Equal(t, 40, rec.OptimalOrderQuantity)
	assert.Equal(t, 0.88, rec.ForecastAccuracy)
	assert.Equal(t, "B", rec.ABCCategory)
}

func TestOptimizeAnnualDemandUsesTrailingYearOnly(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Patient Monitor")
	// 20 records inside the trailing year, 20 well outside it.
	f.seedApproved(t, item.ID, 20, 6, 1)
	f.seedApproved(t, item.ID, 20, 9, 400)

	f.bridge.responses[bridge.ActionOptimize] = json.RawMessage(`{"optimized_items":[]}`)

	_, err := f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		TargetItemID:    item.ID.String(),
		ServiceLevel:    0.95,
		HoldingCostRate: 0.25,
		OrderingCost:    150,
	})
	assert.NoError(t, err)

	payload, ok := f.bridge.payloads[0].(domain.OptimizePayload)
	assert.True(t, ok)
	assert.Len(t, payload.ItemsData, 1)
	// All 40 points travel as history, but only the recent 20 count toward
	// annual demand.
	assert.Equal(t, 20*6, payload.ItemsData[0].AnnualDemand)
	assert.Equal(t, "PT Medika Supply", payload.ItemsData[0].SupplierName)
	assert.Equal(t, 5, payload.ItemsData[0].LeadTimeDays)
}

func TestOptimizeAuditsSummary(t *testing.T) {
	f := newFixture(t)
	item := f.seedItem(t, "Ventilator")
	f.seedApproved(t, item.ID, 5, 2, 1)

	f.bridge.responses[bridge.ActionOptimize] = json.RawMessage(
		`{"optimized_items":[],"business_impact":{"total_potential_savings":321.75}}`)

	_, err := f.svc.Optimize(context.Background(), domain.OptimizationRequest{
		TargetItemID:    item.ID.String(),
		ServiceLevel:    0.9,
		HoldingCostRate: 0.2,
		OrderingCost:    100,
		RequestedBy:     "user-7",
	})
	assert.NoError(t, err)

	assert.Len(t, f.audit.entries, 1)
	entry := f.audit.entries[0]
	assert.Equal(t, "ai.optimize", entry.Action)
	assert.Equal(t, 1, entry.NewValues["item_count"])
	assert.Equal(t, 0.9, entry.NewValues["service_level"])
	assert.Equal(t, 321.75, entry.NewValues["total_potential_savings"])
}
