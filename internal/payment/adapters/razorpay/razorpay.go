// Package razorpay verifies and parses Razorpay webhook deliveries.
package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fodetoorg/yoyo/internal/payment/domain"
)

const signatureHeader = "X-Razorpay-Signature"

type Adapter struct {
	webhookSecret string
}

func New(webhookSecret string) (*Adapter, error) {
	webhookSecret = strings.TrimSpace(webhookSecret)
	if webhookSecret == "" {
		return nil, domain.ErrInvalidConfig
	}
	return &Adapter{webhookSecret: webhookSecret}, nil
}

func (a *Adapter) Provider() string { return "razorpay" }

// Verify checks the hex HMAC-SHA256 of the raw body against the signature
// header using a constant-time comparison.
func (a *Adapter) Verify(ctx context.Context, payload []byte, headers http.Header) error {
	signature := strings.TrimSpace(headers.Get(signatureHeader))
	if signature == "" {
		return domain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(a.webhookSecret))
	_, _ = mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return domain.ErrInvalidSignature
	}
	return nil
}

type webhookBody struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity refundEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

type paymentEntity struct {
	ID       string            `json:"id"`
	OrderID  string            `json:"order_id"`
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes"`
}

type refundEntity struct {
	ID        string            `json:"id"`
	PaymentID string            `json:"payment_id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Notes     map[string]string `json:"notes"`
}

func (a *Adapter) Parse(ctx context.Context, payload []byte) (*domain.PaymentEvent, error) {
	var body webhookBody
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, domain.ErrInvalidPayload
	}

	switch strings.TrimSpace(body.Event) {
	case "payment.captured":
		return a.paymentEvent(body.Payload.Payment.Entity, domain.EventPaymentCaptured)
	case "payment.failed":
		return a.paymentEvent(body.Payload.Payment.Entity, domain.EventPaymentFailed)
	case "refund.processed":
		entity := body.Payload.Refund.Entity
		if entity.ID == "" {
			return nil, domain.ErrInvalidEvent
		}
		return &domain.PaymentEvent{
			Provider:          a.Provider(),
			EventID:           entity.ID,
			Type:              domain.EventRefundProcessed,
			ProviderPaymentID: entity.PaymentID,
			BookingID:         entity.Notes["booking_id"],
			AmountCents:       entity.Amount,
			Currency:          entity.Currency,
		}, nil
	default:
		return nil, domain.ErrEventIgnored
	}
}

func (a *Adapter) paymentEvent(entity paymentEntity, eventType domain.EventType) (*domain.PaymentEvent, error) {
	if entity.ID == "" {
		return nil, domain.ErrInvalidEvent
	}
	return &domain.PaymentEvent{
		Provider:          a.Provider(),
		EventID:           entity.ID,
		Type:              eventType,
		ProviderOrderID:   entity.OrderID,
		ProviderPaymentID: entity.ID,
		BookingID:         entity.Notes["booking_id"],
		AmountCents:       entity.Amount,
		Currency:          entity.Currency,
	}, nil
}
