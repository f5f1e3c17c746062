package domain

import (
	"context"
	"net/http"
)

type EventType string

var (
	EventPaymentCaptured EventType = "payment_captured"
	EventPaymentFailed   EventType = "payment_failed"
	EventRefundProcessed EventType = "refund_processed"
)

// PaymentEvent is a provider-neutral webhook event after verification and
// parsing. Amounts are minor units as delivered by the gateway.
type PaymentEvent struct {
	Provider          string
	EventID           string
	Type              EventType
	ProviderOrderID   string
	ProviderPaymentID string
	BookingID         string
	AmountCents       int64
	Currency          string
}

// Adapter verifies and parses one provider's webhook payloads.
type Adapter interface {
	Provider() string
	Verify(ctx context.Context, payload []byte, headers http.Header) error
	Parse(ctx context.Context, payload []byte) (*PaymentEvent, error)
}
