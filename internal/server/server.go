package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rsmedika/inventaris/internal/ai"
	aidomain "github.com/rsmedika/inventaris/internal/ai/domain"
	"github.com/rsmedika/inventaris/internal/audit"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"github.com/rsmedika/inventaris/internal/config"
	"github.com/rsmedika/inventaris/internal/item"
	itemdomain "github.com/rsmedika/inventaris/internal/item/domain"
	"github.com/rsmedika/inventaris/internal/observability"
	obsmiddleware "github.com/rsmedika/inventaris/internal/observability/logger"
	obsmetrics "github.com/rsmedika/inventaris/internal/observability/metrics"
	"github.com/rsmedika/inventaris/internal/ratelimit"
	"github.com/rsmedika/inventaris/internal/request"
	requestdomain "github.com/rsmedika/inventaris/internal/request/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	audit.Module,
	item.Module,
	request.Module,
	ai.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":8080",
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	itemSvc    itemdomain.Service
	requestSvc requestdomain.Service
	aiSvc      aidomain.Service
	auditSvc   auditdomain.Service
	aiLimiter  *ratelimit.RegenerateLimiter
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	ItemSvc    itemdomain.Service
	RequestSvc requestdomain.Service
	AISvc      aidomain.Service
	AuditSvc   auditdomain.Service
	AILimiter  *ratelimit.RegenerateLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		itemSvc:    p.ItemSvc,
		requestSvc: p.RequestSvc,
		aiSvc:      p.AISvc,
		auditSvc:   p.AuditSvc,
		aiLimiter:  p.AILimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/items", s.CreateItem)
	v1.GET("/items", s.ListItems)
	v1.GET("/items/:id", s.GetItem)
	v1.POST("/items/:id/adjust-stock", s.AdjustItemStock)

	v1.POST("/requests", s.CreateRequest)
	v1.GET("/requests", s.ListRequests)
	v1.GET("/requests/:id", s.GetRequest)
	v1.POST("/requests/:id/approve", s.ApproveRequest)
	v1.POST("/requests/:id/reject", s.RejectRequest)

	aiGroup := v1.Group("/ai")
	aiGroup.GET("/health", s.AIHealth)
	aiGroup.GET("/performance", s.AIModelPerformance)
	aiGroup.GET("/patterns", s.AIDemandPatterns)
	aiGroup.GET("/recommendations/:itemId", s.AIRecommendation)

	var spawnGuard gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if s.aiLimiter.Enabled() {
		spawnGuard = s.aiLimiter.Middleware()
	}
	aiGroup.POST("/forecast", spawnGuard, s.AIForecast)
	aiGroup.POST("/optimize", spawnGuard, s.AIOptimize)
	aiGroup.POST("/retrain", spawnGuard, s.AIRetrain)

	v1.GET("/audit-logs", s.ListAuditLogs)
}
