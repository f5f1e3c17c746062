package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/coupon/domain"
	"github.com/fodetoorg/yoyo/pkg/db"
	"github.com/fodetoorg/yoyo/pkg/money"
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
		log:   p.Log.Named("coupon.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, domain.ErrInvalidCouponCode
	}
	if req.DiscountType != domain.PercentageDiscount && req.DiscountType != domain.FlatDiscount {
		return nil, domain.ErrInvalidCouponType
	}
	if req.DiscountValue <= 0 {
		return nil, domain.ErrInvalidCouponValue
	}
	if req.DiscountType == domain.PercentageDiscount && req.DiscountValue > 100 {
		return nil, domain.ErrInvalidCouponValue
	}
	validFrom := req.ValidFrom
	if validFrom.IsZero() {
		validFrom = s.clock.Now()
	}
	if req.ValidUntil != nil && !req.ValidUntil.After(validFrom) {
		return nil, domain.ErrInvalidWindow
	}

	now := s.clock.Now()
	entity := &domain.Coupon{
		ID:               s.genID.Generate(),
		Code:             code,
		DiscountType:     req.DiscountType,
		DiscountValue:    req.DiscountValue,
		MaxDiscountCents: req.MaxDiscountCents,
		ValidFrom:        validFrom.UTC(),
		ValidUntil:       req.ValidUntil,
		UsageLimit:       req.UsageLimit,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrInvalidCouponCode
		}
		return nil, err
	}

	return entity, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Coupon, error) {
	couponID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrCouponNotFound
	}

	coupon, err := s.repo.FindByID(ctx, s.db, couponID)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, domain.ErrCouponNotFound
	}

	return coupon, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Coupon, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateRequest) (*domain.Coupon, error) {
	coupon, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DiscountValue != nil {
		if *req.DiscountValue <= 0 {
			return nil, domain.ErrInvalidCouponValue
		}
		if coupon.DiscountType == domain.PercentageDiscount && *req.DiscountValue > 100 {
			return nil, domain.ErrInvalidCouponValue
		}
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.MaxDiscountCents != nil {
		coupon.MaxDiscountCents = *req.MaxDiscountCents
	}
	if req.ValidUntil != nil {
		if !req.ValidUntil.After(coupon.ValidFrom) {
			return nil, domain.ErrInvalidWindow
		}
		coupon.ValidUntil = req.ValidUntil
	}
	if req.UsageLimit != nil {
		coupon.UsageLimit = *req.UsageLimit
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}
	coupon.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, s.db, coupon); err != nil {
		return nil, err
	}

	return coupon, nil
}

func (s *Service) Validate(ctx context.Context, code string, totalCents int64, at time.Time) (*domain.Discount, error) {
	coupon, err := s.repo.FindByCode(ctx, s.db, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, domain.ErrCouponNotFound
	}
	if !coupon.Active {
		return nil, domain.ErrCouponInactive
	}
	if at.Before(coupon.ValidFrom) {
		return nil, domain.ErrCouponNotStarted
	}
	if coupon.ValidUntil != nil && !at.Before(*coupon.ValidUntil) {
		return nil, domain.ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, domain.ErrCouponExhausted
	}

	return &domain.Discount{
		Coupon:        coupon,
		DiscountCents: discountFor(coupon, totalCents),
	}, nil
}

func (s *Service) Redeem(ctx context.Context, code string, totalCents int64, at time.Time) (*domain.Discount, error) {
	discount, err := s.Validate(ctx, code, totalCents, at)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementUsage(ctx, s.db, discount.Coupon.ID); err != nil {
		return nil, err
	}

	s.log.Info("coupon redeemed",
		zap.String("coupon_id", discount.Coupon.ID.String()),
		zap.Int64("discount_cents", discount.DiscountCents),
	)

	return discount, nil
}

func discountFor(coupon *domain.Coupon, totalCents int64) int64 {
	var discount int64
	switch coupon.DiscountType {
	case domain.PercentageDiscount:
		discount = money.Percent(totalCents, coupon.DiscountValue)
	case domain.FlatDiscount:
		discount = money.RoundHalfUp(coupon.DiscountValue * 100)
	}
	if coupon.MaxDiscountCents > 0 && discount > coupon.MaxDiscountCents {
		discount = coupon.MaxDiscountCents
	}
	if discount > totalCents {
		discount = totalCents
	}
	return discount
}
