package payment

import (
	"github.com/fodetoorg/yoyo/internal/config"
	"github.com/fodetoorg/yoyo/internal/payment/adapters"
	"github.com/fodetoorg/yoyo/internal/payment/adapters/razorpay"
	"github.com/fodetoorg/yoyo/internal/payment/domain"
	"github.com/fodetoorg/yoyo/internal/payment/repository"
	"github.com/fodetoorg/yoyo/internal/payment/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provideRegistry(cfg config.Config, log *zap.Logger) *adapters.Registry {
	var registered []domain.Adapter
	if cfg.RazorpayWebhookSecret != "" {
		adapter, err := razorpay.New(cfg.RazorpayWebhookSecret)
		if err != nil {
			log.Warn("razorpay adapter disabled", zap.Error(err))
		} else {
			registered = append(registered, adapter)
		}
	} else {
		log.Warn("razorpay webhook secret not configured, webhooks disabled")
	}
	return adapters.NewRegistry(registered...)
}

var Module = fx.Module("payment.service",
	fx.Provide(repository.ProvideOrder),
	fx.Provide(repository.ProvideEvent),
	fx.Provide(provideRegistry),
	fx.Provide(service.New),
)
