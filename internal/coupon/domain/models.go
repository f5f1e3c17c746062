package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type DiscountType string

var (
	PercentageDiscount DiscountType = "percentage"
	FlatDiscount       DiscountType = "flat"
)

type Coupon struct {
	ID               snowflake.ID `json:"id" gorm:"primaryKey"`
	Code             string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	DiscountType     DiscountType `json:"discount_type" gorm:"type:text;not null"`
	DiscountValue    float64      `json:"discount_value" gorm:"type:numeric;not null"`
	MaxDiscountCents int64        `json:"max_discount_cents" gorm:"not null;default:0"`
	ValidFrom        time.Time    `json:"valid_from" gorm:"not null"`
	ValidUntil       *time.Time   `json:"valid_until,omitempty"`
	UsageLimit       int32        `json:"usage_limit" gorm:"not null;default:0"`
	UsedCount        int32        `json:"used_count" gorm:"not null;default:0"`
	Active           bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt        time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Coupon) TableName() string { return "coupons" }
