package audit

import (
	"github.com/rsmedika/inventaris/internal/audit/repository"
	"github.com/rsmedika/inventaris/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
