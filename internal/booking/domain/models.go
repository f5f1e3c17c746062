package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type BookingStatus string

var (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCheckedIn      BookingStatus = "checked_in"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusNoShow         BookingStatus = "no_show"
)

// Booking captures a stay and the money actually charged for it. All amounts
// are minor currency units. TotalCents is the captured amount refunds are
// computed against.
type Booking struct {
	ID                snowflake.ID                      `json:"id" gorm:"primaryKey"`
	Reference         string                            `json:"reference" gorm:"type:text;not null;uniqueIndex"`
	UserID            snowflake.ID                      `json:"user_id" gorm:"column:user_id;not null;index"`
	HotelID           snowflake.ID                      `json:"hotel_id" gorm:"column:hotel_id;not null;index"`
	RoomID            snowflake.ID                      `json:"room_id" gorm:"column:room_id;not null;index"`
	CheckInDate       time.Time                         `json:"check_in_date" gorm:"not null"`
	CheckOutDate      time.Time                         `json:"check_out_date" gorm:"not null"`
	Nights            int32                             `json:"nights" gorm:"not null"`
	NightlyPriceCents int64                             `json:"nightly_price_cents" gorm:"not null"`
	SubtotalCents     int64                             `json:"subtotal_cents" gorm:"not null"`
	DiscountCents     int64                             `json:"discount_cents" gorm:"not null;default:0"`
	TotalCents        int64                             `json:"total_cents" gorm:"not null"`
	Currency          string                            `json:"currency" gorm:"type:text;not null"`
	CouponID          *snowflake.ID                     `json:"coupon_id,omitempty" gorm:"column:coupon_id"`
	AppliedRules      datatypes.JSONSlice[snowflake.ID] `json:"applied_rules" gorm:"column:applied_rules"`
	Status            BookingStatus                     `json:"status" gorm:"type:text;not null;index"`
	CancelledAt       *time.Time                        `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time                         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time                         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Booking) TableName() string { return "bookings" }

// validTransitions is the booking state machine. Terminal statuses have no
// outgoing edges.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPendingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:      {StatusCompleted},
}

func CanTransition(from, to BookingStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
