package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"github.com/rsmedika/inventaris/internal/request/domain"
	"github.com/rsmedika/inventaris/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
	Audit auditdomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	audit auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("request.service"),
		genID: p.GenID,
		repo:  p.Repo,
		audit: p.Audit,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.AssetRequest, error) {
	if req.ItemID == 0 {
		return nil, domain.ErrInvalidItemID
	}
	if strings.TrimSpace(req.RequestedBy) == "" {
		return nil, domain.ErrInvalidRequester
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	now := time.Now().UTC()
	request := &domain.AssetRequest{
		ID:          s.genID.Generate(),
		ItemID:      req.ItemID,
		RequestedBy: strings.TrimSpace(req.RequestedBy),
		Quantity:    req.Quantity,
		Status:      domain.StatusPending,
		Reason:      strings.TrimSpace(req.Reason),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, request); err != nil {
		return nil, err
	}

	s.log.Info("asset request created",
		zap.String("request_id", request.ID.String()),
		zap.String("item_id", request.ItemID.String()),
		zap.Int("quantity", request.Quantity),
	)
	return request, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.AssetRequest, error) {
	if id == 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) Approve(ctx context.Context, req domain.DecideRequest) (*domain.AssetRequest, error) {
	return s.decide(ctx, req, domain.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, req domain.DecideRequest) (*domain.AssetRequest, error) {
	return s.decide(ctx, req, domain.StatusRejected)
}

func (s *Service) decide(ctx context.Context, req domain.DecideRequest, status domain.RequestStatus) (*domain.AssetRequest, error) {
	if req.ID == 0 {
		return nil, domain.ErrInvalidID
	}

	request, err := s.repo.FindByID(ctx, s.db, req.ID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.StatusPending {
		return nil, domain.ErrNotPending
	}

	now := time.Now().UTC()
	previous := request.Status
	request.Status = status
	request.UpdatedAt = now
	if status == domain.StatusApproved {
		request.FulfilledAt = &now
	}
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		request.Reason = reason
	}

	if err := s.repo.Update(ctx, s.db, request); err != nil {
		return nil, err
	}

	entityID := request.ID.String()
	decidedBy := strings.TrimSpace(req.DecidedBy)
	s.audit.Record(ctx, auditdomain.Entry{
		Action:     "request." + string(status),
		EntityType: "asset_request",
		EntityID:   &entityID,
		UserID:     &decidedBy,
		OldValues:  map[string]any{"status": string(previous)},
		NewValues:  map[string]any{"status": string(status)},
	})

	s.log.Info("asset request decided",
		zap.String("request_id", request.ID.String()),
		zap.String("status", string(status)),
		zap.String("decided_by", decidedBy),
	)
	return request, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*domain.ListResponse, error) {
	pageSize := req.Pagination.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	filter := domain.ListFilter{
		ItemID: req.Filter.ItemID,
		Status: req.Filter.Status,
	}
	if token := strings.TrimSpace(req.Pagination.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		id, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, domain.ErrInvalidPageToken
		}
		filter.Cursor = &domain.RequestCursor{ID: id}
	}

	requests, err := s.repo.List(ctx, s.db, filter, pageSize)
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(requests, int32(pageSize), func(r *domain.AssetRequest) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: r.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(requests) > pageSize {
		requests = requests[:pageSize]
	}

	resp := &domain.ListResponse{Requests: requests}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}
