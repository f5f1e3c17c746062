package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, rule *PriceAdjustmentRule) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*PriceAdjustmentRule, error)
	List(ctx context.Context, db *gorm.DB) ([]PriceAdjustmentRule, error)
	ListActive(ctx context.Context, db *gorm.DB) ([]PriceAdjustmentRule, error)
	Update(ctx context.Context, db *gorm.DB, rule *PriceAdjustmentRule) error
}
