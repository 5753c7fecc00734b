package service

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/rsmedika/inventaris/internal/ai/domain"
	auditdomain "github.com/rsmedika/inventaris/internal/audit/domain"
	"github.com/rsmedika/inventaris/internal/clock"
	"github.com/rsmedika/inventaris/internal/config"
	itemdomain "github.com/rsmedika/inventaris/internal/item/domain"
	"github.com/rsmedika/inventaris/internal/observability/metrics"
	"github.com/rsmedika/inventaris/internal/ratelimit"
	requestdomain "github.com/rsmedika/inventaris/internal/request/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Cfg      config.Config
	Planning *config.PlanningConfigHolder
	Clock    clock.Clock
	GenID    *snowflake.Node
	Repo     domain.Repository
	Items    itemdomain.Repository
	Requests requestdomain.Repository
	Bridge   bridge.Invoker
	Audit    auditdomain.Service
	Metrics  *metrics.BridgeMetrics `optional:"true"`
	Locker   *ratelimit.Locker      `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	planning *config.PlanningConfigHolder
	clock    clock.Clock
	genID    *snowflake.Node
	repo     domain.Repository
	items    itemdomain.Repository
	requests requestdomain.Repository
	bridge   bridge.Invoker
	audit    auditdomain.Service
	metrics  *metrics.BridgeMetrics
	locker   *ratelimit.Locker

	ttl     time.Duration
	lockTTL time.Duration
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("ai.service"),
		planning: p.Planning,
		clock:    p.Clock,
		genID:    p.GenID,
		repo:     p.Repo,
		items:    p.Items,
		requests: p.Requests,
		bridge:   p.Bridge,
		audit:    p.Audit,
		metrics:  p.Metrics,
		locker:   p.Locker,
		ttl:      p.Cfg.Worker.RecommendationTTL,
		lockTTL:  time.Duration(p.Cfg.RateLimit.LockTTLSeconds) * time.Second,
	}
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
