package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type TransactionKind string

var (
	Credit TransactionKind = "credit"
	Debit  TransactionKind = "debit"
)

type Wallet struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	UserID       snowflake.ID `json:"user_id" gorm:"column:user_id;not null;uniqueIndex"`
	BalanceCents int64        `json:"balance_cents" gorm:"not null;default:0"`
	Currency     string       `json:"currency" gorm:"type:text;not null;default:INR"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Wallet) TableName() string { return "wallets" }

// Transaction is an immutable ledger entry. BalanceAfterCents snapshots the
// wallet balance as of this entry.
type Transaction struct {
	ID                snowflake.ID    `json:"id" gorm:"primaryKey"`
	WalletID          snowflake.ID    `json:"wallet_id" gorm:"column:wallet_id;not null;index"`
	UserID            snowflake.ID    `json:"user_id" gorm:"column:user_id;not null;index"`
	Kind              TransactionKind `json:"kind" gorm:"type:text;not null"`
	AmountCents       int64           `json:"amount_cents" gorm:"not null"`
	BalanceAfterCents int64           `json:"balance_after_cents" gorm:"not null"`
	Reference         string          `json:"reference,omitempty" gorm:"type:text;index"`
	Description       string          `json:"description,omitempty" gorm:"type:text"`
	CreatedAt         time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Transaction) TableName() string { return "wallet_transactions" }
