package migration

import (
	bookingdomain "github.com/fodetoorg/yoyo/internal/booking/domain"
	"github.com/fodetoorg/yoyo/internal/config"
	coupondomain "github.com/fodetoorg/yoyo/internal/coupon/domain"
	hoteldomain "github.com/fodetoorg/yoyo/internal/hotel/domain"
	paymentdomain "github.com/fodetoorg/yoyo/internal/payment/domain"
	pricingdomain "github.com/fodetoorg/yoyo/internal/pricing/domain"
	refunddomain "github.com/fodetoorg/yoyo/internal/refund/domain"
	walletdomain "github.com/fodetoorg/yoyo/internal/wallet/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			return RunMigrations(sqlDB)
		}

		// Non-postgres dialects (local sqlite, mysql) fall back to AutoMigrate.
		return conn.AutoMigrate(
			&hoteldomain.Hotel{},
			&hoteldomain.Room{},
			&pricingdomain.PriceAdjustmentRule{},
			&coupondomain.Coupon{},
			&bookingdomain.Booking{},
			&paymentdomain.PaymentOrder{},
			&paymentdomain.EventRecord{},
			&refunddomain.RefundRecord{},
			&walletdomain.Wallet{},
			&walletdomain.Transaction{},
		)
	}),
)
