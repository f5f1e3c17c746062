package wallet

import (
	"github.com/fodetoorg/yoyo/internal/wallet/repository"
	"github.com/fodetoorg/yoyo/internal/wallet/service"
	"go.uber.org/fx"
)

var Module = fx.Module("wallet.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
