package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/pkg/db/pagination"
	"gorm.io/gorm"
)

type SearchFilter struct {
	CityID snowflake.ID
	Status HotelStatus
	Query  string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, hotel *Hotel) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Hotel, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Hotel, error)
	Search(ctx context.Context, db *gorm.DB, filter SearchFilter, page pagination.Pagination) ([]*Hotel, error)
	Update(ctx context.Context, db *gorm.DB, hotel *Hotel) error
}

type RoomRepository interface {
	Insert(ctx context.Context, db *gorm.DB, room *Room) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Room, error)
	ListByHotel(ctx context.Context, db *gorm.DB, hotelID snowflake.ID) ([]*Room, error)
	Update(ctx context.Context, db *gorm.DB, room *Room) error
}
