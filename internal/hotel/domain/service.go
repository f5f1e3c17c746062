package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/pkg/db/pagination"
)

var (
	ErrHotelNotFound    = errors.New("hotel_not_found")
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrInvalidCity      = errors.New("invalid_city_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidBasePrice = errors.New("invalid_base_price")
	ErrInvalidCapacity  = errors.New("invalid_capacity")
	ErrSlugTaken        = errors.New("slug_taken")
	ErrHotelInactive    = errors.New("hotel_inactive")
)

type Service interface {
	CreateHotel(ctx context.Context, req CreateHotelRequest) (*Hotel, error)
	GetHotel(ctx context.Context, id string) (*Hotel, error)
	UpdateHotel(ctx context.Context, id string, req UpdateHotelRequest) (*Hotel, error)
	SearchHotels(ctx context.Context, req SearchRequest) (*SearchResponse, error)

	CreateRoom(ctx context.Context, hotelID string, req CreateRoomRequest) (*Room, error)
	GetRoom(ctx context.Context, id string) (*Room, error)
	ListRooms(ctx context.Context, hotelID string) ([]*Room, error)
	UpdateRoom(ctx context.Context, id string, req UpdateRoomRequest) (*Room, error)
}

type CreateHotelRequest struct {
	CityID      string `json:"city_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	StarRating  int32  `json:"star_rating"`
}

type UpdateHotelRequest struct {
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Address     *string      `json:"address"`
	StarRating  *int32       `json:"star_rating"`
	Status      *HotelStatus `json:"status"`
}

type SearchRequest struct {
	pagination.Pagination

	CityID string `form:"city_id"`
	Status string `form:"status"`
	Query  string `form:"q"`
}

type SearchResponse struct {
	Hotels   []*Hotel             `json:"hotels"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

type CreateRoomRequest struct {
	RoomTypeID     string `json:"room_type_id"`
	Name           string `json:"name"`
	Capacity       int32  `json:"capacity"`
	BasePriceCents int64  `json:"base_price_cents"`
	Currency       string `json:"currency"`
}

type UpdateRoomRequest struct {
	Name           *string `json:"name"`
	Capacity       *int32  `json:"capacity"`
	BasePriceCents *int64  `json:"base_price_cents"`
	Active         *bool   `json:"active"`
}

// RoomContext carries the scope identifiers price adjustment rules match
// against. Resolved once per quote from the room row.
type RoomContext struct {
	CityID     snowflake.ID
	HotelID    snowflake.ID
	RoomTypeID snowflake.ID
}

// ContextLookup resolves a room's scope identifiers and base price. Implemented
// by the hotel service and consumed by pricing and booking.
type ContextLookup interface {
	RoomContext(ctx context.Context, roomID snowflake.ID) (RoomContext, *Room, error)
}
