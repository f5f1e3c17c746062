package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/refund/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.RefundRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.RefundRecord, error) {
	var record domain.RefundRecord
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) FindPendingByBooking(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*domain.RefundRecord, error) {
	var record domain.RefundRecord
	err := db.WithContext(ctx).
		Where("booking_id = ? AND status = ?", bookingID, domain.StatusPending).
		Take(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.RefundRecord, error) {
	var records []*domain.RefundRecord
	stmt := db.WithContext(ctx).Model(&domain.RefundRecord{})
	if filter.BookingID != 0 {
		stmt = stmt.Where("booking_id = ?", filter.BookingID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&records).Error
	return records, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, record *domain.RefundRecord) error {
	return db.WithContext(ctx).Save(record).Error
}
