package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	aidomain "github.com/rsmedika/inventaris/internal/ai/domain"
)

type forecastBody struct {
	ItemID              string `json:"item_id"`
	ForecastHorizonDays int    `json:"forecast_horizon_days"`
	ModelHint           string `json:"model_hint"`
	RequestedBy         string `json:"requested_by"`
}

func (s *Server) AIForecast(c *gin.Context) {
	var body forecastBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.aiSvc.Forecast(c.Request.Context(), aidomain.ForecastRequest{
		ItemID:              body.ItemID,
		ForecastHorizonDays: body.ForecastHorizonDays,
		ModelHint:           body.ModelHint,
		RequestedBy:         body.RequestedBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

type optimizeBody struct {
	TargetItemID    string   `json:"target_item_id"`
	TargetItemIDs   []string `json:"target_item_ids"`
	ServiceLevel    float64  `json:"service_level"`
	HoldingCostRate float64  `json:"holding_cost_rate"`
	OrderingCost    float64  `json:"ordering_cost"`
	RequestedBy     string   `json:"requested_by"`
}

func (s *Server) AIOptimize(c *gin.Context) {
	var body optimizeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.aiSvc.Optimize(c.Request.Context(), aidomain.OptimizationRequest{
		TargetItemID:    body.TargetItemID,
		TargetItemIDs:   body.TargetItemIDs,
		ServiceLevel:    body.ServiceLevel,
		HoldingCostRate: body.HoldingCostRate,
		OrderingCost:    body.OrderingCost,
		RequestedBy:     body.RequestedBy,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) AIRecommendation(c *gin.Context) {
	rec, err := s.aiSvc.GetRecommendation(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) AIHealth(c *gin.Context) {
	status := s.aiSvc.CheckHealth(c.Request.Context())

	httpStatus := http.StatusOK
	if status.WorkerStatus != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}
	c.JSON(httpStatus, status)
}

type retrainBody struct {
	RequestedBy string `json:"requested_by"`
}

func (s *Server) AIRetrain(c *gin.Context) {
	// Body is optional; retrain has no parameters beyond the actor.
	var body retrainBody
	_ = c.ShouldBindJSON(&body)

	out, err := s.aiSvc.RetrainModels(c.Request.Context(), body.RequestedBy)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, out)
}

func (s *Server) AIModelPerformance(c *gin.Context) {
	out, err := s.aiSvc.GetModelPerformance(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) AIDemandPatterns(c *gin.Context) {
	out, err := s.aiSvc.AnalyzeDemandPatterns(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
