package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Type string

var (
	Cancellation Type = "cancellation"
	NoShow       Type = "no_show"
	AdminRefund  Type = "admin_refund"
)

type Status string

var (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusRejected  Status = "rejected"
	StatusFailed    Status = "failed"
)

// IsFinal reports whether a status has no outgoing transitions.
func (s Status) IsFinal() bool {
	return s == StatusProcessed || s == StatusRejected || s == StatusFailed
}

type PayoutMethod string

var (
	PayoutWallet  PayoutMethod = "wallet"
	PayoutGateway PayoutMethod = "gateway"
)

// RefundRecord holds the computed split of a captured amount. FeeCents plus
// RefundCents always equals OriginalCents.
type RefundRecord struct {
	ID                snowflake.ID `json:"id" gorm:"primaryKey"`
	BookingID         snowflake.ID `json:"booking_id" gorm:"column:booking_id;not null;index"`
	UserID            snowflake.ID `json:"user_id" gorm:"column:user_id;not null;index"`
	OriginalCents     int64        `json:"original_cents" gorm:"not null"`
	FeeCents          int64        `json:"fee_cents" gorm:"not null"`
	RefundCents       int64        `json:"refund_cents" gorm:"not null"`
	FeePercent        float64      `json:"fee_percent" gorm:"type:numeric;not null"`
	HoursUntilCheckIn float64      `json:"hours_until_check_in" gorm:"type:numeric;not null"`
	Currency          string       `json:"currency" gorm:"type:text;not null"`
	RefundType        Type         `json:"refund_type" gorm:"type:text;not null"`
	Status            Status       `json:"status" gorm:"type:text;not null;index"`
	Reason            string       `json:"reason,omitempty" gorm:"type:text"`
	RejectionReason   string       `json:"rejection_reason,omitempty" gorm:"type:text"`
	PayoutMethod      PayoutMethod `json:"payout_method" gorm:"type:text;not null;default:wallet"`
	ProcessedAt       *time.Time   `json:"processed_at,omitempty"`
	CreatedAt         time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (RefundRecord) TableName() string { return "refund_records" }
