package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/coupon/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, coupon *domain.Coupon) error {
	return db.WithContext(ctx).Create(coupon).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&coupon).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := db.WithContext(ctx).
		Where("code = ?", code).
		Take(&coupon).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.Coupon, error) {
	var coupons []domain.Coupon
	err := db.WithContext(ctx).
		Order("created_at desc, id desc").
		Find(&coupons).Error
	return coupons, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, coupon *domain.Coupon) error {
	return db.WithContext(ctx).Save(coupon).Error
}

// IncrementUsage bumps used_count atomically so concurrent redemptions cannot
// lose an increment.
func (r *repo) IncrementUsage(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Coupon{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}
