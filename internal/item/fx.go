package item

import (
	"github.com/rsmedika/inventaris/internal/item/repository"
	"github.com/rsmedika/inventaris/internal/item/service"
	"go.uber.org/fx"
)

var Module = fx.Module("item.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
