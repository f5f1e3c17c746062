package pricing

import (
	"github.com/fodetoorg/yoyo/internal/pricing/repository"
	"github.com/fodetoorg/yoyo/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
