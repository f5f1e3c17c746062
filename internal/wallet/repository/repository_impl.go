package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/wallet/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, wallet *domain.Wallet) error {
	return db.WithContext(ctx).Create(wallet).Error
}

func (r *repo) FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*domain.Wallet, error) {
	var wallet domain.Wallet
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&wallet).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &wallet, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, wallet *domain.Wallet) error {
	return db.WithContext(ctx).Save(wallet).Error
}

func (r *repo) InsertTransaction(ctx context.Context, db *gorm.DB, tx *domain.Transaction) error {
	return db.WithContext(ctx).Create(tx).Error
}

func (r *repo) ListTransactions(ctx context.Context, db *gorm.DB, walletID snowflake.ID) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction
	err := db.WithContext(ctx).
		Where("wallet_id = ?", walletID).
		Order("created_at desc, id desc").
		Find(&txs).Error
	return txs, err
}
