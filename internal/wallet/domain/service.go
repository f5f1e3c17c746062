package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrWalletNotFound      = errors.New("wallet_not_found")
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInsufficientBalance = errors.New("insufficient_balance")
)

type Service interface {
	GetByUser(ctx context.Context, userID string) (*Wallet, error)
	Transactions(ctx context.Context, userID string) ([]*Transaction, error)
	// Credit adds funds, creating the wallet on first use.
	Credit(ctx context.Context, req EntryRequest) (*Transaction, error)
	Debit(ctx context.Context, req EntryRequest) (*Transaction, error)
}

type EntryRequest struct {
	UserID      snowflake.ID
	AmountCents int64
	Currency    string
	Reference   string
	Description string
}
