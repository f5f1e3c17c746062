package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, wallet *Wallet) error
	FindByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Wallet, error)
	Update(ctx context.Context, db *gorm.DB, wallet *Wallet) error
	InsertTransaction(ctx context.Context, db *gorm.DB, tx *Transaction) error
	ListTransactions(ctx context.Context, db *gorm.DB, walletID snowflake.ID) ([]*Transaction, error)
}
