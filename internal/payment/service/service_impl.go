package service

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/fodetoorg/yoyo/internal/booking/domain"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/observability/metrics"
	"github.com/fodetoorg/yoyo/internal/payment/adapters"
	"github.com/fodetoorg/yoyo/internal/payment/domain"
	"github.com/fodetoorg/yoyo/pkg/db"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Orders   domain.OrderRepository
	Events   domain.EventRepository
	Registry *adapters.Registry
	Bookings bookingdomain.Service
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	orders   domain.OrderRepository
	events   domain.EventRepository
	registry *adapters.Registry
	bookings bookingdomain.Service
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("payment.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		orders:   p.Orders,
		events:   p.Events,
		registry: p.Registry,
		bookings: p.Bookings,
		metrics:  p.Metrics,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (*domain.PaymentOrder, error) {
	booking, err := s.bookings.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != bookingdomain.StatusPendingPayment {
		return nil, bookingdomain.ErrInvalidTransition
	}

	// Reuse an open order so repeated checkout attempts don't pile up rows.
	existing, err := s.orders.FindOpenByBooking(ctx, s.db, booking.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := s.clock.Now()
	order := &domain.PaymentOrder{
		ID:              s.genID.Generate(),
		BookingID:       booking.ID,
		Provider:        "razorpay",
		ProviderOrderID: "order_" + ulid.Make().String(),
		AmountCents:     booking.TotalCents,
		Currency:        booking.Currency,
		Status:          domain.OrderCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Insert(ctx, s.db, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.PaymentOrder, error) {
	orderID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	order, err := s.orders.FindByID(ctx, s.db, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	return order, nil
}

func (s *Service) HandleWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) (*domain.EventRecord, error) {
	adapter, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	if err := adapter.Verify(ctx, payload, headers); err != nil {
		return nil, err
	}

	event, err := adapter.Parse(ctx, payload)
	if err != nil {
		return nil, err
	}

	existing, err := s.events.FindByProviderEventID(ctx, s.db, event.Provider, event.EventID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.Info("webhook replay skipped",
			zap.String("provider", event.Provider),
			zap.String("provider_event_id", event.EventID),
		)
		return existing, nil
	}

	now := s.clock.Now()
	record := &domain.EventRecord{
		ID:              s.genID.Generate(),
		Provider:        event.Provider,
		ProviderEventID: event.EventID,
		EventType:       event.Type,
		Payload:         datatypes.JSON(payload),
		ProcessedAt:     now,
		CreatedAt:       now,
	}

	if err := s.events.Insert(ctx, s.db, record); err != nil {
		// Concurrent delivery of the same event: the unique index wins the
		// race, treat it as a replay.
		if db.IsDuplicateKeyErr(err) {
			return s.events.FindByProviderEventID(ctx, s.db, event.Provider, event.EventID)
		}
		return nil, err
	}

	if err := s.apply(ctx, event); err != nil {
		s.log.Error("webhook apply failed",
			zap.String("provider_event_id", event.EventID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPaymentEvent(event.Provider, string(event.Type))
	}

	return record, nil
}

func (s *Service) apply(ctx context.Context, event *domain.PaymentEvent) error {
	switch event.Type {
	case domain.EventPaymentCaptured:
		return s.applyCaptured(ctx, event)
	case domain.EventPaymentFailed:
		return s.applyFailed(ctx, event)
	case domain.EventRefundProcessed:
		// Gateway-side refunds are recorded for audit; the refund record
		// lifecycle is driven by the refund service.
		s.log.Info("gateway refund recorded",
			zap.String("provider_payment_id", event.ProviderPaymentID),
			zap.Int64("amount_cents", event.AmountCents),
		)
		return nil
	default:
		return domain.ErrInvalidEvent
	}
}

func (s *Service) applyCaptured(ctx context.Context, event *domain.PaymentEvent) error {
	order, err := s.resolveOrder(ctx, event)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	order.Status = domain.OrderPaid
	order.ProviderPaymentID = event.ProviderPaymentID
	order.UpdatedAt = now
	if err := s.orders.Update(ctx, s.db, order); err != nil {
		return err
	}

	if _, err := s.bookings.Transition(ctx, order.BookingID, bookingdomain.StatusConfirmed); err != nil {
		return err
	}

	s.log.Info("payment captured",
		zap.String("booking_id", order.BookingID.String()),
		zap.String("provider_payment_id", event.ProviderPaymentID),
		zap.Int64("amount_cents", event.AmountCents),
	)
	return nil
}

func (s *Service) applyFailed(ctx context.Context, event *domain.PaymentEvent) error {
	order, err := s.resolveOrder(ctx, event)
	if err != nil {
		return err
	}

	order.Status = domain.OrderFailed
	order.ProviderPaymentID = event.ProviderPaymentID
	order.UpdatedAt = s.clock.Now()
	return s.orders.Update(ctx, s.db, order)
}

func (s *Service) resolveOrder(ctx context.Context, event *domain.PaymentEvent) (*domain.PaymentOrder, error) {
	if event.ProviderOrderID != "" {
		order, err := s.orders.FindByProviderOrderID(ctx, s.db, event.ProviderOrderID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	if event.BookingID != "" {
		bookingID, err := snowflake.ParseString(event.BookingID)
		if err == nil {
			order, err := s.orders.FindOpenByBooking(ctx, s.db, bookingID)
			if err != nil {
				return nil, err
			}
			if order != nil {
				return order, nil
			}
		}
	}

	return nil, domain.ErrOrderNotFound
}
