package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/wallet/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("wallet.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) GetByUser(ctx context.Context, userID string) (*domain.Wallet, error) {
	id, err := snowflake.ParseString(userID)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidUser
	}

	wallet, err := s.repo.FindByUser(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, domain.ErrWalletNotFound
	}

	return wallet, nil
}

func (s *Service) Transactions(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	wallet, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListTransactions(ctx, s.db, wallet.ID)
}

func (s *Service) Credit(ctx context.Context, req domain.EntryRequest) (*domain.Transaction, error) {
	return s.apply(ctx, domain.Credit, req)
}

func (s *Service) Debit(ctx context.Context, req domain.EntryRequest) (*domain.Transaction, error) {
	return s.apply(ctx, domain.Debit, req)
}

// apply runs the balance mutation and ledger insert in one transaction.
func (s *Service) apply(ctx context.Context, kind domain.TransactionKind, req domain.EntryRequest) (*domain.Transaction, error) {
	if req.UserID == 0 {
		return nil, domain.ErrInvalidUser
	}
	if req.AmountCents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	now := s.clock.Now()
	var entry *domain.Transaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet, err := s.repo.FindByUser(ctx, tx, req.UserID)
		if err != nil {
			return err
		}
		if wallet == nil {
			if kind == domain.Debit {
				return domain.ErrWalletNotFound
			}
			currency := strings.ToUpper(strings.TrimSpace(req.Currency))
			if currency == "" {
				currency = "INR"
			}
			wallet = &domain.Wallet{
				ID:        s.genID.Generate(),
				UserID:    req.UserID,
				Currency:  currency,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.Insert(ctx, tx, wallet); err != nil {
				return err
			}
		}

		switch kind {
		case domain.Credit:
			wallet.BalanceCents += req.AmountCents
		case domain.Debit:
			if wallet.BalanceCents < req.AmountCents {
				return domain.ErrInsufficientBalance
			}
			wallet.BalanceCents -= req.AmountCents
		}
		wallet.UpdatedAt = now

		if err := s.repo.Update(ctx, tx, wallet); err != nil {
			return err
		}

		entry = &domain.Transaction{
			ID:                s.genID.Generate(),
			WalletID:          wallet.ID,
			UserID:            wallet.UserID,
			Kind:              kind,
			AmountCents:       req.AmountCents,
			BalanceAfterCents: wallet.BalanceCents,
			Reference:         req.Reference,
			Description:       req.Description,
			CreatedAt:         now,
		}
		return s.repo.InsertTransaction(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("wallet entry applied",
		zap.String("user_id", req.UserID.String()),
		zap.String("kind", string(kind)),
		zap.Int64("amount_cents", req.AmountCents),
	)

	return entry, nil
}
