package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type AdjustmentType string

var (
	Percentage AdjustmentType = "percentage"
	Fixed      AdjustmentType = "fixed"
)

// PriceAdjustmentRule is a scoped, time-windowed price modifier. Scope lists
// are stored as JSON arrays; an empty list matches every value of that
// dimension. Rules are retired by flipping Active or backdating ExpiryDate,
// never deleted.
type PriceAdjustmentRule struct {
	ID              snowflake.ID                     `json:"id" gorm:"primaryKey"`
	CityIDs         datatypes.JSONSlice[snowflake.ID] `json:"city_ids" gorm:"column:city_ids"`
	HotelIDs        datatypes.JSONSlice[snowflake.ID] `json:"hotel_ids" gorm:"column:hotel_ids"`
	RoomTypeIDs     datatypes.JSONSlice[snowflake.ID] `json:"room_type_ids" gorm:"column:room_type_ids"`
	AdjustmentType  AdjustmentType                   `json:"adjustment_type" gorm:"type:text;not null"`
	AdjustmentValue float64                          `json:"adjustment_value" gorm:"type:numeric;not null"`
	EffectiveDate   time.Time                        `json:"effective_date" gorm:"not null;index"`
	ExpiryDate      *time.Time                       `json:"expiry_date,omitempty"`
	Reason          string                           `json:"reason,omitempty" gorm:"type:text"`
	Active          bool                             `json:"active" gorm:"not null;default:true"`
	CreatedAt       time.Time                        `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time                        `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PriceAdjustmentRule) TableName() string { return "price_adjustment_rules" }
