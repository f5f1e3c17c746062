package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type OrderStatus string

var (
	OrderCreated OrderStatus = "created"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

type PaymentOrder struct {
	ID                snowflake.ID `json:"id" gorm:"primaryKey"`
	BookingID         snowflake.ID `json:"booking_id" gorm:"column:booking_id;not null;index"`
	Provider          string       `json:"provider" gorm:"type:text;not null"`
	ProviderOrderID   string       `json:"provider_order_id" gorm:"type:text;not null;uniqueIndex"`
	ProviderPaymentID string       `json:"provider_payment_id,omitempty" gorm:"type:text"`
	AmountCents       int64        `json:"amount_cents" gorm:"not null"`
	Currency          string       `json:"currency" gorm:"type:text;not null"`
	Status            OrderStatus  `json:"status" gorm:"type:text;not null;index"`
	CreatedAt         time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PaymentOrder) TableName() string { return "payment_orders" }

// EventRecord makes webhook processing idempotent: the provider event id is
// unique, replays hit the existing row and are skipped.
type EventRecord struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Provider        string         `json:"provider" gorm:"type:text;not null;index"`
	ProviderEventID string         `json:"provider_event_id" gorm:"type:text;not null;uniqueIndex"`
	EventType       EventType      `json:"event_type" gorm:"type:text;not null"`
	Payload         datatypes.JSON `json:"payload,omitempty" gorm:"type:jsonb"`
	ProcessedAt     time.Time      `json:"processed_at" gorm:"not null"`
	CreatedAt       time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (EventRecord) TableName() string { return "payment_events" }
