package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/item/domain"
	"github.com/rsmedika/inventaris/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("item.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateItemRequest) (domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Item{}, domain.ErrInvalidName
	}
	if req.UnitCost < 0 {
		return domain.Item{}, domain.ErrInvalidUnitCost
	}
	if req.CurrentStock < 0 {
		return domain.Item{}, domain.ErrNegativeStock
	}

	leadTime := req.LeadTimeDays
	if leadTime <= 0 {
		leadTime = 7
	}

	now := time.Now().UTC()
	item := domain.Item{
		ID:           s.genID.Generate(),
		Name:         name,
		Category:     strings.TrimSpace(req.Category),
		UnitCost:     req.UnitCost,
		CurrentStock: req.CurrentStock,
		LeadTimeDays: leadTime,
		SupplierName: strings.TrimSpace(req.SupplierName),
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &item); err != nil {
		return domain.Item{}, err
	}

	s.log.Info("item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name),
		zap.Int("current_stock", item.CurrentStock),
	)
	return item, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Item, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return domain.Item{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Item{}, err
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context, req domain.ListItemRequest) (domain.ListItemResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, domain.ListItemFilter{
		Category: strings.TrimSpace(req.Category),
		Name:     strings.TrimSpace(req.Name),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListItemResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(item *domain.Item) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: item.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	out := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, *item)
	}

	resp := domain.ListItemResponse{Items: out}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) AdjustStock(ctx context.Context, req domain.AdjustStockRequest) (domain.Item, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || parsed == 0 {
		return domain.Item{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return domain.Item{}, err
	}

	newStock := item.CurrentStock + req.Delta
	if newStock < 0 {
		return domain.Item{}, domain.ErrNegativeStock
	}

	previous := item.CurrentStock
	item.CurrentStock = newStock
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return domain.Item{}, err
	}

	s.log.Info("stock adjusted",
		zap.String("item_id", item.ID.String()),
		zap.Int("previous", previous),
		zap.Int("current", item.CurrentStock),
		zap.String("reason", strings.TrimSpace(req.Reason)),
	)
	return *item, nil
}
