package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	itemdomain "github.com/rsmedika/inventaris/internal/item/domain"
)

type createItemBody struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	UnitCost     float64 `json:"unit_cost"`
	CurrentStock int     `json:"current_stock"`
	LeadTimeDays int     `json:"lead_time_days"`
	SupplierName string  `json:"supplier_name"`
}

func (s *Server) CreateItem(c *gin.Context) {
	var body createItemBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.Create(c.Request.Context(), itemdomain.CreateItemRequest{
		Name:         body.Name,
		Category:     body.Category,
		UnitCost:     body.UnitCost,
		CurrentStock: body.CurrentStock,
		LeadTimeDays: body.LeadTimeDays,
		SupplierName: body.SupplierName,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (s *Server) GetItem(c *gin.Context) {
	item, err := s.itemSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type listItemsQuery struct {
	PageToken string `form:"page_token"`
	PageSize  int32  `form:"page_size"`
	Category  string `form:"category"`
	Name      string `form:"name"`
}

func (s *Server) ListItems(c *gin.Context) {
	var query listItemsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.itemSvc.List(c.Request.Context(), itemdomain.ListItemRequest{
		PageToken: query.PageToken,
		PageSize:  query.PageSize,
		Category:  query.Category,
		Name:      query.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type adjustStockBody struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

func (s *Server) AdjustItemStock(c *gin.Context) {
	var body adjustStockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.itemSvc.AdjustStock(c.Request.Context(), itemdomain.AdjustStockRequest{
		ID:     c.Param("id"),
		Delta:  body.Delta,
		Reason: body.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
