package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/rsmedika/inventaris/internal/clock"
	"github.com/rsmedika/inventaris/internal/config"
	"github.com/rsmedika/inventaris/internal/migration"
	"github.com/rsmedika/inventaris/internal/observability"
	"github.com/rsmedika/inventaris/internal/scheduler"
	"github.com/rsmedika/inventaris/internal/server"
	"github.com/rsmedika/inventaris/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
