package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/pkg/db/pagination"
)

var (
	ErrInvalidID        = errors.New("invalid_request_id")
	ErrInvalidItemID    = errors.New("invalid_item_id")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidRequester = errors.New("invalid_requester")
	ErrNotFound         = errors.New("request_not_found")
	ErrNotPending       = errors.New("request_not_pending")
	ErrInvalidPageToken = errors.New("invalid_page_token")
)

type CreateRequest struct {
	ItemID      snowflake.ID `json:"item_id"`
	RequestedBy string       `json:"requested_by"`
	Quantity    int          `json:"quantity"`
	Reason      string       `json:"reason"`
}

type DecideRequest struct {
	ID        snowflake.ID `json:"id"`
	DecidedBy string       `json:"decided_by"`
	Reason    string       `json:"reason"`
}

type ListRequest struct {
	Filter     ListRequestFilter
	Pagination pagination.Pagination
}

type ListRequestFilter struct {
	ItemID *snowflake.ID
	Status *RequestStatus
}

type ListResponse struct {
	Requests []*AssetRequest     `json:"requests"`
	PageInfo pagination.PageInfo `json:"page_info"`
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*AssetRequest, error)
	GetByID(ctx context.Context, id snowflake.ID) (*AssetRequest, error)
	Approve(ctx context.Context, req DecideRequest) (*AssetRequest, error)
	Reject(ctx context.Context, req DecideRequest) (*AssetRequest, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
}
