package domain

import (
	"context"
	"errors"
	"time"

	"github.com/rsmedika/inventaris/pkg/db/pagination"
)

// Entry is the payload collaborating features hand to Record. Only Action
// and EntityType are required.
type Entry struct {
	Action     string
	EntityType string
	EntityID   *string
	UserID     *string
	OldValues  map[string]any
	NewValues  map[string]any
}

type ListAuditLogRequest struct {
	pagination.Pagination
	Action     string
	EntityType string
	EntityID   string
	StartAt    *time.Time
	EndAt      *time.Time
}

type ListAuditLogResponse struct {
	pagination.PageInfo
	AuditLogs []AuditLog `json:"audit_logs"`
}

// Service records and lists audit entries. Record is fire-and-forget: a
// failed write is logged and swallowed so it can never fail the operation
// that triggered it.
type Service interface {
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context, req ListAuditLogRequest) (ListAuditLogResponse, error)
}

var (
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrInvalidTimeRange = errors.New("invalid_time_range")
)
