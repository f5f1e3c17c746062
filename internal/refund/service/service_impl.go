package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/fodetoorg/yoyo/internal/booking/domain"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/config"
	"github.com/fodetoorg/yoyo/internal/locker"
	"github.com/fodetoorg/yoyo/internal/observability/metrics"
	"github.com/fodetoorg/yoyo/internal/refund/domain"
	walletdomain "github.com/fodetoorg/yoyo/internal/wallet/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const lockTTL = 30 * time.Second

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Policy   *config.RefundPolicyHolder
	Bookings bookingdomain.Service
	Wallets  walletdomain.Service
	Locker   *locker.Locker   `optional:"true"`
	Metrics  *metrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	policy   *config.RefundPolicyHolder
	bookings bookingdomain.Service
	wallets  walletdomain.Service
	locker   *locker.Locker
	metrics  *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("refund.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		policy:   p.Policy,
		bookings: p.Bookings,
		wallets:  p.Wallets,
		locker:   p.Locker,
		metrics:  p.Metrics,
	}
}

func (s *Service) Request(ctx context.Context, req domain.RefundRequest) (*domain.RefundRecord, error) {
	if req.RefundType != domain.Cancellation && req.RefundType != domain.NoShow && req.RefundType != domain.AdminRefund {
		return nil, domain.ErrInvalidRefundType
	}

	booking, err := s.bookings.Get(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// Cross-instance serialization; the pending-row check inside the
	// transaction is the backstop when redis is not configured.
	if s.locker != nil {
		key := "refund:booking:" + booking.ID.String()
		token, ok, err := s.locker.TryLock(ctx, key, lockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrRefundInFlight
		}
		defer func() {
			if err := s.locker.Release(ctx, key, token); err != nil {
				s.log.Warn("refund lock release failed", zap.Error(err))
			}
		}()
	}

	now := s.clock.Now()
	tiers := feeTiers(s.policy.Get())

	computation, err := domain.Calculate(domain.BookingSnapshot{
		CheckInDate: booking.CheckInDate,
		TotalCents:  booking.TotalCents,
	}, now, req.RefundType, tiers)
	if err != nil {
		return nil, err
	}

	payout := req.PayoutMethod
	if payout == "" {
		payout = domain.PayoutWallet
	}

	record := &domain.RefundRecord{
		ID:                s.genID.Generate(),
		BookingID:         booking.ID,
		UserID:            booking.UserID,
		OriginalCents:     booking.TotalCents,
		FeeCents:          computation.FeeCents,
		RefundCents:       computation.RefundCents,
		FeePercent:        computation.FeePercent,
		HoursUntilCheckIn: computation.HoursUntilCheckIn,
		Currency:          booking.Currency,
		RefundType:        req.RefundType,
		Status:            domain.StatusPending,
		Reason:            strings.TrimSpace(req.Reason),
		PayoutMethod:      payout,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		pending, err := s.repo.FindPendingByBooking(ctx, tx, booking.ID)
		if err != nil {
			return err
		}
		if pending != nil {
			return domain.ErrRefundInFlight
		}
		return s.repo.Insert(ctx, tx, record)
	})
	if err != nil {
		return nil, err
	}

	// Admin refunds leave the booking where it is.
	if req.RefundType != domain.AdminRefund {
		target := bookingdomain.StatusCancelled
		if req.RefundType == domain.NoShow {
			target = bookingdomain.StatusNoShow
		}
		if _, err := s.bookings.Transition(ctx, booking.ID, target); err != nil {
			s.log.Warn("booking transition after refund request failed",
				zap.String("booking_id", booking.ID.String()),
				zap.Error(err),
			)
		}
	}

	if s.metrics != nil {
		s.metrics.RecordRefund(string(record.Status))
	}

	s.log.Info("refund requested",
		zap.String("refund_id", record.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.Float64("fee_percent", record.FeePercent),
		zap.Int64("refund_cents", record.RefundCents),
	)

	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.RefundRecord, error) {
	refundID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrRefundNotFound
	}

	record, err := s.repo.FindByID(ctx, s.db, refundID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrRefundNotFound
	}

	return record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]*domain.RefundRecord, error) {
	filter := domain.ListFilter{}
	if req.BookingID != "" {
		bookingID, err := snowflake.ParseString(req.BookingID)
		if err != nil {
			return nil, domain.ErrRefundNotFound
		}
		filter.BookingID = bookingID
	}
	if req.Status != "" {
		filter.Status = domain.Status(req.Status)
	}

	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Process(ctx context.Context, id string) (*domain.RefundRecord, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status.IsFinal() {
		return nil, domain.ErrRefundFinal
	}

	now := s.clock.Now()

	if record.PayoutMethod == domain.PayoutWallet && record.RefundCents > 0 {
		_, err := s.wallets.Credit(ctx, walletdomain.EntryRequest{
			UserID:      record.UserID,
			AmountCents: record.RefundCents,
			Currency:    record.Currency,
			Reference:   "refund:" + record.ID.String(),
			Description: "booking refund",
		})
		if err != nil {
			record.Status = domain.StatusFailed
			record.UpdatedAt = now
			if updateErr := s.repo.Update(ctx, s.db, record); updateErr != nil {
				return nil, updateErr
			}
			if s.metrics != nil {
				s.metrics.RecordRefund(string(domain.StatusFailed))
			}
			return record, err
		}
	}

	record.Status = domain.StatusProcessed
	record.ProcessedAt = &now
	record.UpdatedAt = now

	if err := s.repo.Update(ctx, s.db, record); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRefund(string(domain.StatusProcessed))
	}

	s.log.Info("refund processed",
		zap.String("refund_id", record.ID.String()),
		zap.Int64("refund_cents", record.RefundCents),
	)

	return record, nil
}

func (s *Service) Reject(ctx context.Context, id string, reason string) (*domain.RefundRecord, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domain.ErrRejectionReasonRequired
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Status.IsFinal() {
		return nil, domain.ErrRefundFinal
	}

	record.Status = domain.StatusRejected
	record.RejectionReason = reason
	record.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, record); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordRefund(string(domain.StatusRejected))
	}

	return record, nil
}

func feeTiers(policy config.RefundPolicy) []domain.FeeTier {
	tiers := make([]domain.FeeTier, 0, len(policy.Tiers))
	for _, tier := range policy.Tiers {
		tiers = append(tiers, domain.FeeTier{
			MinHours:   tier.MinHours,
			FeePercent: tier.FeePercent,
		})
	}
	return tiers
}
