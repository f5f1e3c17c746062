package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"testing"

	"github.com/fodetoorg/yoyo/internal/payment/domain"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "rzp_whsec_test"
	payload := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1"}}}}`)

	adapter, err := New(secret)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	header := http.Header{}
	header.Set("X-Razorpay-Signature", sign(secret, payload))
	if err := adapter.Verify(context.Background(), payload, header); err != nil {
		t.Fatalf("expected valid signature, got error: %v", err)
	}

	header.Set("X-Razorpay-Signature", sign("wrong", payload))
	if err := adapter.Verify(context.Background(), payload, header); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error, got: %v", err)
	}

	header.Del("X-Razorpay-Signature")
	if err := adapter.Verify(context.Background(), payload, header); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error for missing header, got: %v", err)
	}
}

func TestParsePaymentCaptured(t *testing.T) {
	adapter, _ := New("secret")
	payload := []byte(`{
		"event": "payment.captured",
		"payload": {
			"payment": {
				"entity": {
					"id": "pay_123",
					"order_id": "order_456",
					"amount": 105000,
					"currency": "INR",
					"notes": {"booking_id": "987654321"}
				}
			}
		}
	}`)

	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.Type != domain.EventPaymentCaptured {
		t.Fatalf("expected payment_captured, got %s", event.Type)
	}
	if event.EventID != "pay_123" || event.ProviderOrderID != "order_456" {
		t.Fatalf("unexpected identifiers: %+v", event)
	}
	if event.AmountCents != 105000 || event.Currency != "INR" {
		t.Fatalf("unexpected amount: %+v", event)
	}
	if event.BookingID != "987654321" {
		t.Fatalf("expected booking id from notes, got %q", event.BookingID)
	}
}

func TestParsePaymentFailed(t *testing.T) {
	adapter, _ := New("secret")
	payload := []byte(`{
		"event": "payment.failed",
		"payload": {
			"payment": {
				"entity": {"id": "pay_9", "order_id": "order_9", "amount": 5000, "currency": "INR"}
			}
		}
	}`)

	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.Type != domain.EventPaymentFailed {
		t.Fatalf("expected payment_failed, got %s", event.Type)
	}
}

func TestParseRefundProcessed(t *testing.T) {
	adapter, _ := New("secret")
	payload := []byte(`{
		"event": "refund.processed",
		"payload": {
			"refund": {
				"entity": {"id": "rfnd_1", "payment_id": "pay_1", "amount": 2500, "currency": "INR"}
			}
		}
	}`)

	event, err := adapter.Parse(context.Background(), payload)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if event.Type != domain.EventRefundProcessed {
		t.Fatalf("expected refund_processed, got %s", event.Type)
	}
	if event.ProviderPaymentID != "pay_1" || event.AmountCents != 2500 {
		t.Fatalf("unexpected refund event: %+v", event)
	}
}

func TestParseIgnoresUnknownEvents(t *testing.T) {
	adapter, _ := New("secret")

	_, err := adapter.Parse(context.Background(), []byte(`{"event":"order.paid","payload":{}}`))
	if !errors.Is(err, domain.ErrEventIgnored) {
		t.Fatalf("expected event ignored, got: %v", err)
	}

	_, err = adapter.Parse(context.Background(), []byte(`not json`))
	if !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload, got: %v", err)
	}

	_, err = adapter.Parse(context.Background(), []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{}}}}`))
	if !errors.Is(err, domain.ErrInvalidEvent) {
		t.Fatalf("expected invalid event for missing id, got: %v", err)
	}
}
