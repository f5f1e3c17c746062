package coupon

import (
	"github.com/fodetoorg/yoyo/internal/coupon/repository"
	"github.com/fodetoorg/yoyo/internal/coupon/service"
	"go.uber.org/fx"
)

var Module = fx.Module("coupon.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
