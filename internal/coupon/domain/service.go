package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCouponNotFound     = errors.New("coupon_not_found")
	ErrCouponInactive     = errors.New("coupon_inactive")
	ErrCouponNotStarted   = errors.New("coupon_not_started")
	ErrCouponExpired      = errors.New("coupon_expired")
	ErrCouponExhausted    = errors.New("coupon_exhausted")
	ErrInvalidCouponCode  = errors.New("invalid_coupon_code")
	ErrInvalidCouponType  = errors.New("invalid_coupon_type")
	ErrInvalidCouponValue = errors.New("invalid_coupon_value")
	ErrInvalidWindow      = errors.New("invalid_validity_window")
)

// Discount is the outcome of validating a coupon against a booking total.
type Discount struct {
	Coupon        *Coupon
	DiscountCents int64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Coupon, error)
	Get(ctx context.Context, id string) (*Coupon, error)
	List(ctx context.Context) ([]Coupon, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Coupon, error)

	// Validate checks a code against a total without consuming usage.
	Validate(ctx context.Context, code string, totalCents int64, at time.Time) (*Discount, error)
	// Redeem validates and consumes one usage inside the caller's transaction.
	Redeem(ctx context.Context, code string, totalCents int64, at time.Time) (*Discount, error)
}

type CreateRequest struct {
	Code             string       `json:"code"`
	DiscountType     DiscountType `json:"discount_type"`
	DiscountValue    float64      `json:"discount_value"`
	MaxDiscountCents int64        `json:"max_discount_cents"`
	ValidFrom        time.Time    `json:"valid_from"`
	ValidUntil       *time.Time   `json:"valid_until"`
	UsageLimit       int32        `json:"usage_limit"`
}

type UpdateRequest struct {
	DiscountValue    *float64   `json:"discount_value"`
	MaxDiscountCents *int64     `json:"max_discount_cents"`
	ValidUntil       *time.Time `json:"valid_until"`
	UsageLimit       *int32     `json:"usage_limit"`
	Active           *bool      `json:"active"`
}
