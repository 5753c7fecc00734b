package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	itemdomain "github.com/rsmedika/inventaris/internal/item/domain"
	"github.com/rsmedika/inventaris/internal/item/repository"
	"github.com/rsmedika/inventaris/pkg/db"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) itemdomain.Service {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&itemdomain.Item{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(Params{
		DB:    dbConn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), itemdomain.CreateItemRequest{
		Name: "   ",
	})
	assert.ErrorIs(t, err, itemdomain.ErrInvalidName)
}

func TestCreateDefaultsLeadTime(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Create(context.Background(), itemdomain.CreateItemRequest{
		Name:         "Syringe Pump",
		Category:     "medical_device",
		UnitCost:     85,
		CurrentStock: 12,
	})
	assert.NoError(t, err)
	assert.Equal(t, 7, item.LeadTimeDays)

	fetched, err := svc.GetByID(context.Background(), item.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, "Syringe Pump", fetched.Name)
}

func TestGetByIDNotFound(t *testing.T) {
	svc := newTestService(t)

	node, _ := snowflake.NewNode(2)
	_, err := svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, itemdomain.ErrNotFound)
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Create(context.Background(), itemdomain.CreateItemRequest{
		Name:         "Oxygen Concentrator",
		CurrentStock: 3,
	})
	assert.NoError(t, err)

	_, err = svc.AdjustStock(context.Background(), itemdomain.AdjustStockRequest{
		ID:    item.ID.String(),
		Delta: -5,
	})
	assert.ErrorIs(t, err, itemdomain.ErrNegativeStock)

	updated, err := svc.AdjustStock(context.Background(), itemdomain.AdjustStockRequest{
		ID:     item.ID.String(),
		Delta:  -3,
		Reason: "issued to ward",
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, updated.CurrentStock)
}

func TestListFiltersByCategory(t *testing.T) {
	svc := newTestService(t)

	for _, seed := range []struct {
		name     string
		category string
	}{
		{"Laptop", "it_equipment"},
		{"Monitor", "it_equipment"},
		{"Wheelchair", "mobility"},
	} {
		_, err := svc.Create(context.Background(), itemdomain.CreateItemRequest{
			Name:     seed.name,
			Category: seed.category,
		})
		assert.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), itemdomain.ListItemRequest{
		Category: "it_equipment",
	})
	assert.NoError(t, err)
	assert.Len(t, resp.Items, 2)

	resp, err = svc.List(context.Background(), itemdomain.ListItemRequest{
		Name: "wheel",
	})
	assert.NoError(t, err)
	if assert.Len(t, resp.Items, 1) {
		assert.Equal(t, "Wheelchair", resp.Items[0].Name)
	}
}

func TestListPaginates(t *testing.T) {
	svc := newTestService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), itemdomain.CreateItemRequest{
			Name: "Item",
		})
		assert.NoError(t, err)
	}

	first, err := svc.List(context.Background(), itemdomain.ListItemRequest{PageSize: 2})
	assert.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.True(t, first.PageInfo.HasMore)
	assert.NotEmpty(t, first.PageInfo.NextPageToken)

	second, err := svc.List(context.Background(), itemdomain.ListItemRequest{
		PageSize:  2,
		PageToken: first.PageInfo.NextPageToken,
	})
	assert.NoError(t, err)
	assert.Len(t, second.Items, 2)
	assert.NotEqual(t, first.Items[0].ID, second.Items[0].ID)
}
