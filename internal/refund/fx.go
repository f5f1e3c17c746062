package refund

import (
	"github.com/fodetoorg/yoyo/internal/refund/repository"
	"github.com/fodetoorg/yoyo/internal/refund/service"
	"go.uber.org/fx"
)

var Module = fx.Module("refund.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
