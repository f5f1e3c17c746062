package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/payment/domain"
	"gorm.io/gorm"
)

type orderRepo struct{}

func ProvideOrder() domain.OrderRepository {
	return &orderRepo{}
}

func (r *orderRepo) Insert(ctx context.Context, db *gorm.DB, order *domain.PaymentOrder) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByProviderOrderID(ctx context.Context, db *gorm.DB, providerOrderID string) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	err := db.WithContext(ctx).
		Where("provider_order_id = ?", providerOrderID).
		Take(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindOpenByBooking(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*domain.PaymentOrder, error) {
	var order domain.PaymentOrder
	err := db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, domain.OrderCreated).
		Take(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) Update(ctx context.Context, db *gorm.DB, order *domain.PaymentOrder) error {
	return db.WithContext(ctx).Save(order).Error
}

type eventRepo struct{}

func ProvideEvent() domain.EventRepository {
	return &eventRepo{}
}

func (r *eventRepo) Insert(ctx context.Context, db *gorm.DB, record *domain.EventRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *eventRepo) FindByProviderEventID(ctx context.Context, db *gorm.DB, provider, eventID string) (*domain.EventRecord, error) {
	var record domain.EventRecord
	err := db.WithContext(ctx).
		Where("provider = ? AND provider_event_id = ?", provider, eventID).
		Take(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
