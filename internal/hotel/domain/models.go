package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type HotelStatus string

var (
	HotelActive   HotelStatus = "active"
	HotelInactive HotelStatus = "inactive"
)

type Hotel struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	CityID      snowflake.ID `json:"city_id" gorm:"column:city_id;not null;index"`
	Name        string       `json:"name" gorm:"type:text;not null"`
	Slug        string       `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Address     string       `json:"address,omitempty" gorm:"type:text"`
	StarRating  int32        `json:"star_rating" gorm:"not null;default:0"`
	Status      HotelStatus  `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Hotel) TableName() string { return "hotels" }

type Room struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	HotelID        snowflake.ID `json:"hotel_id" gorm:"column:hotel_id;not null;index"`
	RoomTypeID     snowflake.ID `json:"room_type_id" gorm:"column:room_type_id;not null;index"`
	Name           string       `json:"name" gorm:"type:text;not null"`
	Capacity       int32        `json:"capacity" gorm:"not null;default:2"`
	BasePriceCents int64        `json:"base_price_cents" gorm:"column:base_price_cents;not null"`
	Currency       string       `json:"currency" gorm:"type:text;not null;default:INR"`
	Active         bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Room) TableName() string { return "rooms" }
