package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	BookingID snowflake.ID
	Status    Status
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *RefundRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*RefundRecord, error)
	FindPendingByBooking(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*RefundRecord, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*RefundRecord, error)
	Update(ctx context.Context, db *gorm.DB, record *RefundRecord) error
}
