package hotel

import (
	"github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/internal/hotel/repository"
	"github.com/fodetoorg/yoyo/internal/hotel/service"
	"go.uber.org/fx"
)

var Module = fx.Module("hotel.service",
	fx.Provide(repository.Provide),
	fx.Provide(repository.ProvideRoom),
	fx.Provide(service.New),
	fx.Provide(func(s *service.Service) domain.Service { return s }),
	fx.Provide(func(s *service.Service) domain.ContextLookup { return s }),
)
