package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrBookingNotFound    = errors.New("booking_not_found")
	ErrInvalidStayDates   = errors.New("invalid_stay_dates")
	ErrInvalidGuest       = errors.New("invalid_guest")
	ErrRoomUnavailable    = errors.New("room_unavailable")
	ErrInvalidTransition  = errors.New("invalid_booking_transition")
	ErrReceiptUnavailable = errors.New("receipt_unavailable")
)

type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	Get(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, req ListRequest) ([]*Booking, error)
	// Transition moves a booking along the state machine, rejecting edges the
	// machine does not allow.
	Transition(ctx context.Context, id snowflake.ID, to BookingStatus) (*Booking, error)
	Receipt(ctx context.Context, id string) ([]byte, error)
}

type QuoteRequest struct {
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	CouponCode   string `json:"coupon_code"`
}

type QuoteResponse struct {
	RoomID            snowflake.ID   `json:"room_id"`
	Currency          string         `json:"currency"`
	CheckInDate       time.Time      `json:"check_in_date"`
	CheckOutDate      time.Time      `json:"check_out_date"`
	Nights            int32          `json:"nights"`
	NightlyPriceCents int64          `json:"nightly_price_cents"`
	SubtotalCents     int64          `json:"subtotal_cents"`
	DiscountCents     int64          `json:"discount_cents"`
	TotalCents        int64          `json:"total_cents"`
	AppliedRules      []snowflake.ID `json:"applied_rules"`
}

type CreateRequest struct {
	UserID       string `json:"user_id"`
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	CouponCode   string `json:"coupon_code"`
}

type ListRequest struct {
	UserID string `form:"user_id"`
	Status string `form:"status"`
}
