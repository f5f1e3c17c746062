package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/booking/domain"
	"github.com/fodetoorg/yoyo/internal/clock"
	coupondomain "github.com/fodetoorg/yoyo/internal/coupon/domain"
	hoteldomain "github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/internal/observability/metrics"
	"github.com/fodetoorg/yoyo/internal/pdf"
	pricingdomain "github.com/fodetoorg/yoyo/internal/pricing/domain"
	"github.com/fodetoorg/yoyo/pkg/money"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	Hotels  hoteldomain.Service
	Pricing pricingdomain.Service
	Coupons coupondomain.Service
	PDF     pdf.Generator    `optional:"true"`
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	hotels  hoteldomain.Service
	pricing pricingdomain.Service
	coupons coupondomain.Service
	pdf     pdf.Generator
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("booking.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		hotels:  p.Hotels,
		pricing: p.Pricing,
		coupons: p.Coupons,
		pdf:     p.PDF,
		metrics: p.Metrics,
	}
}

type stayQuote struct {
	room         *hoteldomain.Room
	checkIn      time.Time
	checkOut     time.Time
	nights       int32
	nightlyCents int64
	appliedRules []snowflake.ID
}

func (s *Service) quoteStay(ctx context.Context, roomID, checkInRaw, checkOutRaw string) (*stayQuote, error) {
	checkIn, err := parseStayDate(checkInRaw)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseStayDate(checkOutRaw)
	if err != nil {
		return nil, err
	}
	if !checkOut.After(checkIn) {
		return nil, domain.ErrInvalidStayDates
	}

	nights := int32(checkOut.Sub(checkIn).Hours() / 24)
	if nights <= 0 {
		return nil, domain.ErrInvalidStayDates
	}

	quote, err := s.pricing.Quote(ctx, pricingdomain.QuoteRequest{
		RoomID: roomID,
		AsOf:   &checkIn,
	})
	if err != nil {
		return nil, err
	}

	room, err := s.hotels.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !room.Active {
		return nil, domain.ErrRoomUnavailable
	}

	return &stayQuote{
		room:         room,
		checkIn:      checkIn,
		checkOut:     checkOut,
		nights:       nights,
		nightlyCents: quote.FinalPriceCents,
		appliedRules: quote.AppliedRules,
	}, nil
}

func (s *Service) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.QuoteResponse, error) {
	stay, err := s.quoteStay(ctx, req.RoomID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	subtotal := stay.nightlyCents * int64(stay.nights)

	var discount int64
	if req.CouponCode != "" {
		d, err := s.coupons.Validate(ctx, req.CouponCode, subtotal, s.clock.Now())
		if err != nil {
			return nil, err
		}
		discount = d.DiscountCents
	}

	return &domain.QuoteResponse{
		RoomID:            stay.room.ID,
		Currency:          stay.room.Currency,
		CheckInDate:       stay.checkIn,
		CheckOutDate:      stay.checkOut,
		Nights:            stay.nights,
		NightlyPriceCents: stay.nightlyCents,
		SubtotalCents:     subtotal,
		DiscountCents:     discount,
		TotalCents:        subtotal - discount,
		AppliedRules:      stay.appliedRules,
	}, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Booking, error) {
	userID, err := snowflake.ParseString(req.UserID)
	if err != nil || userID == 0 {
		return nil, domain.ErrInvalidGuest
	}

	stay, err := s.quoteStay(ctx, req.RoomID, req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}

	subtotal := stay.nightlyCents * int64(stay.nights)
	now := s.clock.Now()

	var discount int64
	var couponID *snowflake.ID
	if req.CouponCode != "" {
		d, err := s.coupons.Redeem(ctx, req.CouponCode, subtotal, now)
		if err != nil {
			return nil, err
		}
		discount = d.DiscountCents
		couponID = &d.Coupon.ID
	}

	entity := &domain.Booking{
		ID:                s.genID.Generate(),
		Reference:         newReference(),
		UserID:            userID,
		HotelID:           stay.room.HotelID,
		RoomID:            stay.room.ID,
		CheckInDate:       stay.checkIn,
		CheckOutDate:      stay.checkOut,
		Nights:            stay.nights,
		NightlyPriceCents: stay.nightlyCents,
		SubtotalCents:     subtotal,
		DiscountCents:     discount,
		TotalCents:        subtotal - discount,
		Currency:          stay.room.Currency,
		CouponID:          couponID,
		AppliedRules:      datatypes.NewJSONSlice(stay.appliedRules),
		Status:            domain.StatusPendingPayment,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordBooking(string(entity.Status))
	}

	s.log.Info("booking created",
		zap.String("booking_id", entity.ID.String()),
		zap.String("reference", entity.Reference),
		zap.Int64("total_cents", entity.TotalCents),
	)

	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Booking, error) {
	bookingID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrBookingNotFound
	}

	booking, err := s.repo.FindByID(ctx, s.db, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}

	return booking, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]*domain.Booking, error) {
	filter := domain.ListFilter{}
	if req.UserID != "" {
		userID, err := snowflake.ParseString(req.UserID)
		if err != nil {
			return nil, domain.ErrInvalidGuest
		}
		filter.UserID = userID
	}
	if req.Status != "" {
		filter.Status = domain.BookingStatus(req.Status)
	}

	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Transition(ctx context.Context, id snowflake.ID, to domain.BookingStatus) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}

	if !domain.CanTransition(booking.Status, to) {
		return nil, domain.ErrInvalidTransition
	}

	now := s.clock.Now()
	booking.Status = to
	booking.UpdatedAt = now
	if to == domain.StatusCancelled {
		booking.CancelledAt = &now
	}

	if err := s.repo.Update(ctx, s.db, booking); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordBooking(string(to))
	}

	s.log.Info("booking transitioned",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(to)),
	)

	return booking, nil
}

func (s *Service) Receipt(ctx context.Context, id string) ([]byte, error) {
	booking, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.pdf == nil {
		return nil, domain.ErrReceiptUnavailable
	}

	hotel, err := s.hotels.GetHotel(ctx, booking.HotelID.String())
	if err != nil {
		return nil, err
	}
	room, err := s.hotels.GetRoom(ctx, booking.RoomID.String())
	if err != nil {
		return nil, err
	}

	data := pdf.ReceiptData{
		Reference:    booking.Reference,
		Status:       string(booking.Status),
		HotelName:    hotel.Name,
		HotelAddress: hotel.Address,
		RoomName:     room.Name,
		CheckInDate:  booking.CheckInDate.Format(time.DateOnly),
		CheckOutDate: booking.CheckOutDate.Format(time.DateOnly),
		Nights:       booking.Nights,
		NightlyPrice: booking.Currency + " " + money.Format(booking.NightlyPriceCents),
		Subtotal:     booking.Currency + " " + money.Format(booking.SubtotalCents),
		Total:        booking.Currency + " " + money.Format(booking.TotalCents),
		IssuedAt:     s.clock.Now().Format(time.DateOnly),
	}
	if booking.DiscountCents > 0 {
		data.Discount = booking.Currency + " " + money.Format(booking.DiscountCents)
	}

	return s.pdf.BookingReceipt(ctx, data)
}

func parseStayDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.ErrInvalidStayDates
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, domain.ErrInvalidStayDates
		}
	}
	return t.UTC(), nil
}

func newReference() string {
	return "BK-" + ulid.Make().String()
}
