package request

import (
	"github.com/rsmedika/inventaris/internal/request/repository"
	"github.com/rsmedika/inventaris/internal/request/service"
	"go.uber.org/fx"
)

var Module = fx.Module("request.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
