package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/pricing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, rule *domain.PriceAdjustmentRule) error {
	return db.WithContext(ctx).Create(rule).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PriceAdjustmentRule, error) {
	var rule domain.PriceAdjustmentRule
	err := db.WithContext(ctx).
		Where("id = ?", id).
		Take(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]domain.PriceAdjustmentRule, error) {
	var rules []domain.PriceAdjustmentRule
	err := db.WithContext(ctx).
		Order("effective_date asc, id asc").
		Find(&rules).Error
	return rules, err
}

// ListActive over-fetches: window and scope filtering happen in the resolver,
// only the active flag is pushed down.
func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]domain.PriceAdjustmentRule, error) {
	var rules []domain.PriceAdjustmentRule
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("effective_date asc, id asc").
		Find(&rules).Error
	return rules, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, rule *domain.PriceAdjustmentRule) error {
	return db.WithContext(ctx).Save(rule).Error
}
