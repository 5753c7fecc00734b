package domain

import (
	"context"
	"errors"

	"github.com/rsmedika/inventaris/pkg/db/pagination"
)

type CreateItemRequest struct {
	Name         string
	Category     string
	UnitCost     float64
	CurrentStock int
	LeadTimeDays int
	SupplierName string
}

type ListItemRequest struct {
	PageToken string
	PageSize  int32
	Category  string
	Name      string
}

type ListItemFilter struct {
	Category string
	Name     string
}

type ListItemResponse struct {
	pagination.PageInfo
	Items []Item `json:"items"`
}

type AdjustStockRequest struct {
	ID     string
	Delta  int
	Reason string
}

type Service interface {
	Create(context.Context, CreateItemRequest) (Item, error)
	GetByID(ctx context.Context, id string) (Item, error)
	List(context.Context, ListItemRequest) (ListItemResponse, error)
	AdjustStock(context.Context, AdjustStockRequest) (Item, error)
}

var (
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidUnitCost = errors.New("invalid_unit_cost")
	ErrNegativeStock   = errors.New("negative_stock")
	ErrNotFound        = errors.New("not_found")
)
