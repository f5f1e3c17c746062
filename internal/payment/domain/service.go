package domain

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrProviderNotFound = errors.New("provider_not_found")
	ErrInvalidConfig    = errors.New("invalid_provider_config")
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrInvalidPayload   = errors.New("invalid_payload")
	ErrInvalidEvent     = errors.New("invalid_event")
	ErrEventIgnored     = errors.New("event_ignored")
	ErrOrderNotFound    = errors.New("order_not_found")
)

type Service interface {
	// CreateOrder opens a payment order for a pending booking.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*PaymentOrder, error)
	GetOrder(ctx context.Context, id string) (*PaymentOrder, error)
	// HandleWebhook verifies, parses and applies a provider webhook. Replayed
	// events are acknowledged without reapplying.
	HandleWebhook(ctx context.Context, provider string, payload []byte, headers http.Header) (*EventRecord, error)
}

type CreateOrderRequest struct {
	BookingID string `json:"booking_id"`
}
