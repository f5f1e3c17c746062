package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/booking"
	bookingdomain "github.com/fodetoorg/yoyo/internal/booking/domain"
	"github.com/fodetoorg/yoyo/internal/config"
	"github.com/fodetoorg/yoyo/internal/coupon"
	coupondomain "github.com/fodetoorg/yoyo/internal/coupon/domain"
	"github.com/fodetoorg/yoyo/internal/hotel"
	hoteldomain "github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/internal/locker"
	"github.com/fodetoorg/yoyo/internal/observability"
	obsmiddleware "github.com/fodetoorg/yoyo/internal/observability/logger"
	obsmetrics "github.com/fodetoorg/yoyo/internal/observability/metrics"
	obstracing "github.com/fodetoorg/yoyo/internal/observability/tracing"
	"github.com/fodetoorg/yoyo/internal/payment"
	paymentdomain "github.com/fodetoorg/yoyo/internal/payment/domain"
	"github.com/fodetoorg/yoyo/internal/pdf"
	"github.com/fodetoorg/yoyo/internal/pricing"
	pricingdomain "github.com/fodetoorg/yoyo/internal/pricing/domain"
	"github.com/fodetoorg/yoyo/internal/refund"
	refunddomain "github.com/fodetoorg/yoyo/internal/refund/domain"
	"github.com/fodetoorg/yoyo/internal/wallet"
	walletdomain "github.com/fodetoorg/yoyo/internal/wallet/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	config.Module,
	fx.Provide(registerGin),
	locker.Module,
	pdf.Module,
	hotel.Module,
	pricing.Module,
	coupon.Module,
	booking.Module,
	payment.Module,
	refund.Module,
	wallet.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	db         *gorm.DB
	genID      *snowflake.Node
	hotelSvc   hoteldomain.Service
	pricingSvc pricingdomain.Service
	couponSvc  coupondomain.Service
	bookingSvc bookingdomain.Service
	paymentSvc paymentdomain.Service
	refundSvc  refunddomain.Service
	walletSvc  walletdomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	GenID      *snowflake.Node
	HotelSvc   hoteldomain.Service
	PricingSvc pricingdomain.Service
	CouponSvc  coupondomain.Service
	BookingSvc bookingdomain.Service
	PaymentSvc paymentdomain.Service
	RefundSvc  refunddomain.Service
	WalletSvc  walletdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		genID:      p.GenID,
		hotelSvc:   p.HotelSvc,
		pricingSvc: p.PricingSvc,
		couponSvc:  p.CouponSvc,
		bookingSvc: p.BookingSvc,
		paymentSvc: p.PaymentSvc,
		refundSvc:  p.RefundSvc,
		walletSvc:  p.WalletSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Hotels & Rooms --------
	api.GET("/hotels", s.SearchHotels)
	api.GET("/hotels/search", s.SearchHotels)
	api.POST("/hotels", s.CreateHotel)
	api.GET("/hotels/:id", s.GetHotelByID)
	api.PATCH("/hotels/:id", s.UpdateHotel)
	api.GET("/hotels/:id/rooms", s.ListRooms)
	api.POST("/hotels/:id/rooms", s.CreateRoom)
	api.GET("/rooms/:id", s.GetRoomByID)
	api.PATCH("/rooms/:id", s.UpdateRoom)

	// -------- Pricing --------
	api.GET("/pricing/rules", s.ListPricingRules)
	api.POST("/pricing/rules", s.CreatePricingRule)
	api.GET("/pricing/rules/:id", s.GetPricingRuleByID)
	api.PATCH("/pricing/rules/:id", s.UpdatePricingRule)
	api.POST("/pricing/quote", s.QuotePrice)

	// -------- Bookings --------
	api.POST("/bookings/quote", s.QuoteBooking)
	api.GET("/bookings", s.ListBookings)
	api.POST("/bookings", s.CreateBooking)
	api.GET("/bookings/:id", s.GetBookingByID)
	api.POST("/bookings/:id/cancel", s.CancelBooking)
	api.POST("/bookings/:id/check-in", s.CheckInBooking)
	api.POST("/bookings/:id/check-out", s.CheckOutBooking)
	api.GET("/bookings/:id/receipt", s.GetBookingReceipt)

	// -------- Payments --------
	api.POST("/payments/orders", s.CreatePaymentOrder)
	api.GET("/payments/orders/:id", s.GetPaymentOrderByID)
	api.POST("/payments/webhooks/:provider", s.HandlePaymentWebhook)

	// -------- Refunds --------
	api.GET("/refunds", s.ListRefunds)
	api.POST("/refunds", s.RequestRefund)
	api.GET("/refunds/:id", s.GetRefundByID)
	api.POST("/refunds/:id/process", s.ProcessRefund)
	api.POST("/refunds/:id/reject", s.RejectRefund)

	// -------- Wallets --------
	api.GET("/wallets/:userId", s.GetWallet)
	api.GET("/wallets/:userId/transactions", s.ListWalletTransactions)

	// -------- Coupons --------
	api.GET("/coupons", s.ListCoupons)
	api.POST("/coupons", s.CreateCoupon)
	api.GET("/coupons/:id", s.GetCouponByID)
	api.PATCH("/coupons/:id", s.UpdateCoupon)
}
