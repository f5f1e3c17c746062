package booking

import (
	"github.com/fodetoorg/yoyo/internal/booking/repository"
	"github.com/fodetoorg/yoyo/internal/booking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
