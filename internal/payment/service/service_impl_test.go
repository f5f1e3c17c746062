package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/fodetoorg/yoyo/internal/booking/domain"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/payment/adapters"
	"github.com/fodetoorg/yoyo/internal/payment/adapters/razorpay"
	"github.com/fodetoorg/yoyo/internal/payment/domain"
	paymentrepository "github.com/fodetoorg/yoyo/internal/payment/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test"

type bookingStub struct {
	bookings    map[snowflake.ID]*bookingdomain.Booking
	transitions []bookingdomain.BookingStatus
}

func (s *bookingStub) Get(ctx context.Context, id string) (*bookingdomain.Booking, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, bookingdomain.ErrBookingNotFound
	}
	booking, ok := s.bookings[parsed]
	if !ok {
		return nil, bookingdomain.ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingStub) Transition(ctx context.Context, id snowflake.ID, to bookingdomain.BookingStatus) (*bookingdomain.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, bookingdomain.ErrBookingNotFound
	}
	if !bookingdomain.CanTransition(booking.Status, to) {
		return nil, bookingdomain.ErrInvalidTransition
	}
	booking.Status = to
	s.transitions = append(s.transitions, to)
	return booking, nil
}

func (s *bookingStub) Quote(ctx context.Context, req bookingdomain.QuoteRequest) (*bookingdomain.QuoteResponse, error) {
	return nil, bookingdomain.ErrBookingNotFound
}

func (s *bookingStub) Create(ctx context.Context, req bookingdomain.CreateRequest) (*bookingdomain.Booking, error) {
	return nil, bookingdomain.ErrBookingNotFound
}

func (s *bookingStub) List(ctx context.Context, req bookingdomain.ListRequest) ([]*bookingdomain.Booking, error) {
	return nil, nil
}

func (s *bookingStub) Receipt(ctx context.Context, id string) ([]byte, error) {
	return nil, bookingdomain.ErrBookingNotFound
}

type paymentFixture struct {
	svc      domain.Service
	bookings *bookingStub
	node     *snowflake.Node
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = gdb.AutoMigrate(&domain.PaymentOrder{}, &domain.EventRecord{})
	assert.NoError(t, err)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	adapter, err := razorpay.New(testWebhookSecret)
	assert.NoError(t, err)

	bookings := &bookingStub{bookings: map[snowflake.ID]*bookingdomain.Booking{}}

	svc := New(Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		Orders:   paymentrepository.ProvideOrder(),
		Events:   paymentrepository.ProvideEvent(),
		Registry: adapters.NewRegistry(adapter),
		Bookings: bookings,
	})

	return &paymentFixture{svc: svc, bookings: bookings, node: node}
}

func (f *paymentFixture) seedBooking(status bookingdomain.BookingStatus) *bookingdomain.Booking {
	booking := &bookingdomain.Booking{
		ID:         f.node.Generate(),
		Reference:  "BK-TEST-" + f.node.Generate().String(),
		UserID:     f.node.Generate(),
		TotalCents: 180_000,
		Currency:   "INR",
		Status:     status,
	}
	f.bookings.bookings[booking.ID] = booking
	return booking
}

func sign(payload []byte) http.Header {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(payload)

	headers := http.Header{}
	headers.Set("X-Razorpay-Signature", hex.EncodeToString(mac.Sum(nil)))
	return headers
}

func capturedPayload(eventID, orderID string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {
			"id": %q, "order_id": %q, "amount": %d, "currency": "INR"
		}}}
	}`, eventID, orderID, amount))
}

func TestCreateOrder_ReusesOpenOrder(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.seedBooking(bookingdomain.StatusPendingPayment)

	first, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{BookingID: booking.ID.String()})
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderCreated, first.Status)
	assert.Equal(t, int64(180_000), first.AmountCents)

	second, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{BookingID: booking.ID.String()})
	assert.NoError(t, err)
	assert.Equal(t, first.ProviderOrderID, second.ProviderOrderID)
}

func TestCreateOrder_RejectsNonPendingBooking(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.seedBooking(bookingdomain.StatusConfirmed)

	_, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{BookingID: booking.ID.String()})
	assert.ErrorIs(t, err, bookingdomain.ErrInvalidTransition)
}

func TestWebhook_CapturedConfirmsBooking(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.seedBooking(bookingdomain.StatusPendingPayment)

	order, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{BookingID: booking.ID.String()})
	assert.NoError(t, err)

	payload := capturedPayload("pay_EV001", order.ProviderOrderID, 180_000)

	record, err := f.svc.HandleWebhook(context.Background(), "razorpay", payload, sign(payload))
	assert.NoError(t, err)
	assert.Equal(t, "pay_EV001", record.ProviderEventID)
	assert.Equal(t, bookingdomain.StatusConfirmed, booking.Status)

	reloaded, err := f.svc.GetOrder(context.Background(), order.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, reloaded.Status)
	assert.Equal(t, "pay_EV001", reloaded.ProviderPaymentID)
}

func TestWebhook_ReplayIsIdempotent(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.seedBooking(bookingdomain.StatusPendingPayment)

	order, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{BookingID: booking.ID.String()})
	assert.NoError(t, err)

	payload := capturedPayload("pay_EV002", order.ProviderOrderID, 180_000)

	first, err := f.svc.HandleWebhook(context.Background(), "razorpay", payload, sign(payload))
	assert.NoError(t, err)

	// Redelivery acknowledges without reapplying the transition.
	second, err := f.svc.HandleWebhook(context.Background(), "razorpay", payload, sign(payload))
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []bookingdomain.BookingStatus{bookingdomain.StatusConfirmed}, f.bookings.transitions)
}

func TestWebhook_FailedMarksOrder(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.seedBooking(bookingdomain.StatusPendingPayment)

	order, err := f.svc.CreateOrder(context.Background(), domain.CreateOrderRequest{BookingID: booking.ID.String()})
	assert.NoError(t, err)

	payload := []byte(fmt.Sprintf(`{
		"event": "payment.failed",
		"payload": {"payment": {"entity": {
			"id": "pay_EV003", "order_id": %q, "amount": 180000, "currency": "INR"
		}}}
	}`, order.ProviderOrderID))

	_, err = f.svc.HandleWebhook(context.Background(), "razorpay", payload, sign(payload))
	assert.NoError(t, err)

	reloaded, err := f.svc.GetOrder(context.Background(), order.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderFailed, reloaded.Status)
	assert.Equal(t, bookingdomain.StatusPendingPayment, booking.Status)
}

func TestWebhook_InvalidSignature(t *testing.T) {
	f := newPaymentFixture(t)

	payload := capturedPayload("pay_EV004", "order_X", 1000)
	headers := http.Header{}
	headers.Set("X-Razorpay-Signature", "deadbeef")

	_, err := f.svc.HandleWebhook(context.Background(), "razorpay", payload, headers)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestWebhook_UnknownProvider(t *testing.T) {
	f := newPaymentFixture(t)

	payload := capturedPayload("pay_EV005", "order_X", 1000)
	_, err := f.svc.HandleWebhook(context.Background(), "unknown", payload, sign(payload))
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}
