package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/migration"
	"github.com/fodetoorg/yoyo/internal/observability"
	"github.com/fodetoorg/yoyo/internal/server"
	"github.com/fodetoorg/yoyo/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
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
