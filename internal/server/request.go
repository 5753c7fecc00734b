package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	requestdomain "github.com/rsmedika/inventaris/internal/request/domain"
	"github.com/rsmedika/inventaris/pkg/db/pagination"
)

type createRequestBody struct {
	ItemID      string `json:"item_id"`
	RequestedBy string `json:"requested_by"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
}

func (s *Server) CreateRequest(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	itemID, err := snowflake.ParseString(strings.TrimSpace(body.ItemID))
	if err != nil {
		AbortWithError(c, requestdomain.ErrInvalidItemID)
		return
	}

	req, err := s.requestSvc.Create(c.Request.Context(), requestdomain.CreateRequest{
		ItemID:      itemID,
		RequestedBy: body.RequestedBy,
		Quantity:    body.Quantity,
		Reason:      body.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, req)
}

func (s *Server) GetRequest(c *gin.Context) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, requestdomain.ErrInvalidID)
		return
	}

	req, err := s.requestSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

type decideRequestBody struct {
	DecidedBy string `json:"decided_by"`
	Reason    string `json:"reason"`
}

func (s *Server) ApproveRequest(c *gin.Context) {
	s.decideRequest(c, s.requestSvc.Approve)
}

func (s *Server) RejectRequest(c *gin.Context) {
	s.decideRequest(c, s.requestSvc.Reject)
}

func (s *Server) decideRequest(c *gin.Context, decide func(context.Context, requestdomain.DecideRequest) (*requestdomain.AssetRequest, error)) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, requestdomain.ErrInvalidID)
		return
	}

	// The decision body is optional.
	var body decideRequestBody
	_ = c.ShouldBindJSON(&body)

	req, err := decide(c.Request.Context(), requestdomain.DecideRequest{
		ID:        id,
		DecidedBy: body.DecidedBy,
		Reason:    body.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, req)
}

type listRequestsQuery struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size"`
	ItemID    string `form:"item_id"`
	Status    string `form:"status"`
}

func (s *Server) ListRequests(c *gin.Context) {
	var query listRequestsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var filter requestdomain.ListRequestFilter
	if raw := strings.TrimSpace(query.ItemID); raw != "" {
		itemID, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, requestdomain.ErrInvalidItemID)
			return
		}
		filter.ItemID = &itemID
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status := requestdomain.RequestStatus(raw)
		switch status {
		case requestdomain.StatusPending, requestdomain.StatusApproved, requestdomain.StatusRejected:
			filter.Status = &status
		default:
			AbortWithError(c, newValidationError("status", "invalid_status", "invalid status"))
			return
		}
	}

	resp, err := s.requestSvc.List(c.Request.Context(), requestdomain.ListRequest{
		Filter: filter,
		Pagination: pagination.Pagination{
			PageToken: query.PageToken,
			PageSize:  query.PageSize,
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
