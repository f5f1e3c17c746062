package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/fodetoorg/yoyo/internal/booking/domain"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/config"
	"github.com/fodetoorg/yoyo/internal/refund/domain"
	refundrepository "github.com/fodetoorg/yoyo/internal/refund/repository"
	walletdomain "github.com/fodetoorg/yoyo/internal/wallet/domain"
	walletrepository "github.com/fodetoorg/yoyo/internal/wallet/repository"
	walletservice "github.com/fodetoorg/yoyo/internal/wallet/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// bookingStub satisfies bookingdomain.Service with a fixed set of bookings and
// records the transitions the refund flow asks for.
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

type refundFixture struct {
	svc      domain.Service
	wallets  walletdomain.Service
	bookings *bookingStub
	clk      *clock.FakeClock
	node     *snowflake.Node
}

func newRefundFixture(t *testing.T) *refundFixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = gdb.AutoMigrate(
		&domain.RefundRecord{},
		&walletdomain.Wallet{},
		&walletdomain.Transaction{},
	)
	assert.NoError(t, err)

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	logger := zap.NewNop()
	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	wallets := walletservice.New(walletservice.Params{
		DB:    gdb,
		Log:   logger,
		GenID: node,
		Clock: clk,
		Repo:  walletrepository.Provide(),
	})

	bookings := &bookingStub{bookings: map[snowflake.ID]*bookingdomain.Booking{}}

	svc := New(Params{
		DB:       gdb,
		Log:      logger,
		GenID:    node,
		Clock:    clk,
		Repo:     refundrepository.Provide(),
		Policy:   config.StaticRefundPolicyHolder(config.DefaultRefundPolicy()),
		Bookings: bookings,
		Wallets:  wallets,
	})

	return &refundFixture{
		svc:      svc,
		wallets:  wallets,
		bookings: bookings,
		clk:      clk,
		node:     node,
	}
}

func (f *refundFixture) seedBooking(hoursUntilCheckIn float64, totalCents int64, status bookingdomain.BookingStatus) *bookingdomain.Booking {
	checkIn := f.clk.Now().Add(time.Duration(hoursUntilCheckIn * float64(time.Hour)))
	booking := &bookingdomain.Booking{
		ID:           f.node.Generate(),
		Reference:    "BK-TEST-" + f.node.Generate().String(),
		UserID:       f.node.Generate(),
		HotelID:      f.node.Generate(),
		RoomID:       f.node.Generate(),
		CheckInDate:  checkIn,
		CheckOutDate: checkIn.Add(48 * time.Hour),
		Nights:       2,
		TotalCents:   totalCents,
		Currency:     "INR",
		Status:       status,
	}
	f.bookings.bookings[booking.ID] = booking
	return booking
}

func TestRefundRequest_LateCancellation(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(10, 100_000, bookingdomain.StatusConfirmed)

	record, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.Cancellation,
		Reason:     "change of plans",
	})
	assert.NoError(t, err)

	// 10h before check-in falls in the 50% tier.
	assert.Equal(t, domain.StatusPending, record.Status)
	assert.Equal(t, int64(100_000), record.OriginalCents)
	assert.Equal(t, int64(50_000), record.FeeCents)
	assert.Equal(t, int64(50_000), record.RefundCents)
	assert.Equal(t, 50.0, record.FeePercent)
	assert.Equal(t, domain.PayoutWallet, record.PayoutMethod)

	// The booking moved to cancelled alongside the refund request.
	assert.Equal(t, bookingdomain.StatusCancelled, booking.Status)
	assert.Equal(t, []bookingdomain.BookingStatus{bookingdomain.StatusCancelled}, f.bookings.transitions)
}

func TestRefundRequest_EarlyCancellationFullRefund(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(120, 250_000, bookingdomain.StatusConfirmed)

	record, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.Cancellation,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), record.FeeCents)
	assert.Equal(t, int64(250_000), record.RefundCents)
}

func TestRefundRequest_NoShowForfeitsEverything(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(200, 80_000, bookingdomain.StatusConfirmed)

	record, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.NoShow,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(80_000), record.FeeCents)
	assert.Equal(t, int64(0), record.RefundCents)
	assert.Equal(t, bookingdomain.StatusNoShow, booking.Status)
}

func TestRefundRequest_AdminRefundLeavesBookingAlone(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(10, 60_000, bookingdomain.StatusConfirmed)

	_, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.AdminRefund,
	})
	assert.NoError(t, err)
	assert.Equal(t, bookingdomain.StatusConfirmed, booking.Status)
	assert.Empty(t, f.bookings.transitions)
}

func TestRefundRequest_SecondPendingRejected(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(10, 100_000, bookingdomain.StatusConfirmed)

	_, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.AdminRefund,
	})
	assert.NoError(t, err)

	_, err = f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.AdminRefund,
	})
	assert.ErrorIs(t, err, domain.ErrRefundInFlight)
}

func TestRefundRequest_InvalidType(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(10, 100_000, bookingdomain.StatusConfirmed)

	_, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.Type("chargeback"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRefundType)
}

func TestRefundProcess_CreditsWallet(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(10, 100_000, bookingdomain.StatusConfirmed)

	record, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.Cancellation,
	})
	assert.NoError(t, err)

	processed, err := f.svc.Process(context.Background(), record.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusProcessed, processed.Status)
	assert.NotNil(t, processed.ProcessedAt)

	wallet, err := f.wallets.GetByUser(context.Background(), booking.UserID.String())
	assert.NoError(t, err)
	assert.Equal(t, int64(50_000), wallet.BalanceCents)

	txns, err := f.wallets.Transactions(context.Background(), booking.UserID.String())
	assert.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.Equal(t, "refund:"+record.ID.String(), txns[0].Reference)
}

func TestRefundProcess_FinalStatusIsTerminal(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(10, 100_000, bookingdomain.StatusConfirmed)

	record, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.Cancellation,
	})
	assert.NoError(t, err)

	_, err = f.svc.Process(context.Background(), record.ID.String())
	assert.NoError(t, err)

	_, err = f.svc.Process(context.Background(), record.ID.String())
	assert.ErrorIs(t, err, domain.ErrRefundFinal)
}

func TestRefundReject(t *testing.T) {
	f := newRefundFixture(t)
	booking := f.seedBooking(10, 100_000, bookingdomain.StatusConfirmed)

	record, err := f.svc.Request(context.Background(), domain.RefundRequest{
		BookingID:  booking.ID.String(),
		RefundType: domain.AdminRefund,
	})
	assert.NoError(t, err)

	// Rejection without a reason is refused.
	_, err = f.svc.Reject(context.Background(), record.ID.String(), "  ")
	assert.ErrorIs(t, err, domain.ErrRejectionReasonRequired)

	rejected, err := f.svc.Reject(context.Background(), record.ID.String(), "duplicate request")
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.Equal(t, "duplicate request", rejected.RejectionReason)

	// No payout happened.
	_, err = f.wallets.GetByUser(context.Background(), booking.UserID.String())
	assert.ErrorIs(t, err, walletdomain.ErrWalletNotFound)

	_, err = f.svc.Process(context.Background(), record.ID.String())
	assert.ErrorIs(t, err, domain.ErrRefundFinal)
}
