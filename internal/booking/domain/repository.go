package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	UserID snowflake.ID
	Status BookingStatus
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, booking *Booking) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Booking, error)
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Booking, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Booking, error)
	Update(ctx context.Context, db *gorm.DB, booking *Booking) error
}
