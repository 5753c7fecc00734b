package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	airepository "github.com/rsmedika/inventaris/internal/ai/repository"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"github.com/rsmedika/inventaris/internal/clock"
	"github.com/rsmedika/inventaris/internal/config"
	itemdomain "github.com/rsmedika/inventaris/internal/item/domain"
	itemrepository "github.com/rsmedika/inventaris/internal/item/repository"
	requestdomain "github.com/rsmedika/inventaris/internal/request/domain"
	requestrepository "github.com/rsmedika/inventaris/internal/request/repository"
	"github.com/rsmedika/inventaris/pkg/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubBridge records every invocation and replies from canned responses.
type stubBridge struct {
	responses map[string]json.RawMessage
	errs      map[string]error
	calls     []string
	payloads  []any
}

func newStubBridge() *stubBridge {
	return &stubBridge{
		responses: map[string]json.RawMessage{},
		errs:      map[string]error{},
	}
}

func (b *stubBridge) Invoke(_ context.Context, action string, payload any) (json.RawMessage, error) {
	b.calls = append(b.calls, action)
	b.payloads = append(b.payloads, payload)
	if err, ok := b.errs[action]; ok {
		return nil, err
	}
	if resp, ok := b.responses[action]; ok {
		return resp, nil
	}
	return json.RawMessage(`{}`), nil
}

type stubAudit struct {
	entries []auditdomain.Entry
}

func (a *stubAudit) Record(_ context.Context, entry auditdomain.Entry) {
	a.entries = append(a.entries, entry)
}

func (a *stubAudit) List(context.Context, auditdomain.ListAuditLogRequest) (auditdomain.ListAuditLogResponse, error) {
	return auditdomain.ListAuditLogResponse{}, nil
}

type fixture struct {
	svc    domain.Service
	db     *gorm.DB
	bridge *stubBridge
	audit  *stubAudit
	clk    *clock.FakeClock
	genID  *snowflake.Node
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(
		&itemdomain.Item{},
		&requestdomain.AssetRequest{},
		&domain.AIRecommendation{},
		&domain.ForecastRun{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	br := newStubBridge()
	aud := &stubAudit{}
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:       dbConn,
		Log:      zap.NewNop(),
		Cfg:      config.Config{Worker: config.WorkerConfig{RecommendationTTL: 24 * time.Hour}},
		Planning: config.NewStaticPlanningConfig(config.DefaultPlanningConfig()),
		Clock:    clk,
		GenID:    node,
		Repo:     airepository.Provide(),
		Items:    itemrepository.Provide(),
		Requests: requestrepository.Provide(),
		Bridge:   br,
		Audit:    aud,
	})

	return &fixture{
		svc:    svc,
		db:     dbConn,
		bridge: br,
		audit:  aud,
		clk:    clk,
		genID:  node,
	}
}

func (f *fixture) seedItem(t *testing.T, name string) *itemdomain.Item {
	t.Helper()

	now := f.clk.Now()
	item := &itemdomain.Item{
		ID:           f.genID.Generate(),
		Name:         name,
		Category:     "it_equipment",
		UnitCost:     125.5,
		CurrentStock: 40,
		LeadTimeDays: 5,
		SupplierName: "PT Medika Supply",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := f.db.Create(item).Error; err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return item
}

// seedApproved inserts count approved requests, one per day going backward
// from startDaysAgo, each with the given quantity.
func (f *fixture) seedApproved(t *testing.T, itemID snowflake.ID, count, quantity, startDaysAgo int) {
	t.Helper()

	for i := 0; i < count; i++ {
		fulfilled := f.clk.Now().AddDate(0, 0, -(startDaysAgo + i))
		req := &requestdomain.AssetRequest{
			ID:          f.genID.Generate(),
			ItemID:      itemID,
			RequestedBy: "unit-icu",
			Quantity:    quantity,
			Status:      requestdomain.StatusApproved,
			FulfilledAt: &fulfilled,
			CreatedAt:   fulfilled,
			UpdatedAt:   fulfilled,
		}
		if err := f.db.Create(req).Error; err != nil {
			t.Fatalf("failed to seed approved request: %v", err)
		}
	}
}

func (f *fixture) seedRecommendation(t *testing.T, itemID snowflake.ID, lastUpdated time.Time) *domain.AIRecommendation {
	t.Helper()

	rec := &domain.AIRecommendation{
		ItemID:               itemID,
		ItemName:             "Infusion Pump",
		CurrentStock:         40,
		OptimalOrderQuantity: 120,
		ReorderPoint:         35,
		SafetyStock:          15,
		ForecastAccuracy:     0.8,
		ABCCategory:          "A",
		LastUpdated:          lastUpdated,
	}
	if err := f.db.Create(rec).Error; err != nil {
		t.Fatalf("failed to seed recommendation: %v", err)
	}
	return rec
}
