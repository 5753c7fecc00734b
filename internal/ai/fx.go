package ai

import (
	"github.com/rsmedika/inventaris/internal/ai/bridge"
	"github.com/rsmedika/inventaris/internal/ai/repository"
	"github.com/rsmedika/inventaris/internal/ai/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ai.service",
	fx.Provide(bridge.New),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
