package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Insert(ctx context.Context, db *gorm.DB, order *PaymentOrder) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PaymentOrder, error)
	FindByProviderOrderID(ctx context.Context, db *gorm.DB, providerOrderID string) (*PaymentOrder, error)
	FindOpenByBooking(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*PaymentOrder, error)
	Update(ctx context.Context, db *gorm.DB, order *PaymentOrder) error
}

type EventRepository interface {
	Insert(ctx context.Context, db *gorm.DB, record *EventRecord) error
	FindByProviderEventID(ctx context.Context, db *gorm.DB, provider, eventID string) (*EventRecord, error)
}
