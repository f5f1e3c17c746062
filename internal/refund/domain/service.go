package domain

import (
	"context"
	"errors"
)

var (
	ErrRefundNotFound          = errors.New("refund_not_found")
	ErrRefundInFlight          = errors.New("refund_in_flight")
	ErrInvalidBookingState     = errors.New("invalid_booking_state")
	ErrInvalidRefundType       = errors.New("invalid_refund_type")
	ErrInvalidFeePolicy        = errors.New("invalid_fee_policy")
	ErrRefundFinal             = errors.New("refund_already_final")
	ErrRejectionReasonRequired = errors.New("rejection_reason_required")
)

type Service interface {
	// Request computes the fee split for a booking and records a pending
	// refund. Concurrent requests for the same booking are serialized.
	Request(ctx context.Context, req RefundRequest) (*RefundRecord, error)
	Get(ctx context.Context, id string) (*RefundRecord, error)
	List(ctx context.Context, req ListRequest) ([]*RefundRecord, error)
	// Process pays out a pending refund and marks it processed, or failed if
	// the payout cannot be applied.
	Process(ctx context.Context, id string) (*RefundRecord, error)
	Reject(ctx context.Context, id string, reason string) (*RefundRecord, error)
}

type RefundRequest struct {
	BookingID    string       `json:"booking_id"`
	RefundType   Type         `json:"refund_type"`
	Reason       string       `json:"reason"`
	PayoutMethod PayoutMethod `json:"payout_method"`
}

type ListRequest struct {
	BookingID string `form:"booking_id"`
	Status    string `form:"status"`
}
