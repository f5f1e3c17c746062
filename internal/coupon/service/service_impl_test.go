package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/clock"
	"github.com/fodetoorg/yoyo/internal/coupon/domain"
	couponrepository "github.com/fodetoorg/yoyo/internal/coupon/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCouponService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, gdb.AutoMigrate(&domain.Coupon{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	svc := New(Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  couponrepository.Provide(),
	})
	return svc, clk
}

func TestCouponCreate_Validation(t *testing.T) {
	svc, clk := newCouponService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{
		Code:          "  ",
		DiscountType:  domain.PercentageDiscount,
		DiscountValue: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCouponCode)

	_, err = svc.Create(ctx, domain.CreateRequest{
		Code:          "BOGUS",
		DiscountType:  domain.DiscountType("bogo"),
		DiscountValue: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCouponType)

	_, err = svc.Create(ctx, domain.CreateRequest{
		Code:          "ZERO",
		DiscountType:  domain.FlatDiscount,
		DiscountValue: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCouponValue)

	_, err = svc.Create(ctx, domain.CreateRequest{
		Code:          "TOOBIG",
		DiscountType:  domain.PercentageDiscount,
		DiscountValue: 150,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCouponValue)

	until := clk.Now().Add(-time.Hour)
	_, err = svc.Create(ctx, domain.CreateRequest{
		Code:          "BACKWARDS",
		DiscountType:  domain.PercentageDiscount,
		DiscountValue: 10,
		ValidFrom:     clk.Now(),
		ValidUntil:    &until,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}

func TestCouponCreate_UppercasesCode(t *testing.T) {
	svc, _ := newCouponService(t)

	coupon, err := svc.Create(context.Background(), domain.CreateRequest{
		Code:          " save10 ",
		DiscountType:  domain.PercentageDiscount,
		DiscountValue: 10,
	})
	assert.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)

	// Duplicate codes are refused by the unique index.
	_, err = svc.Create(context.Background(), domain.CreateRequest{
		Code:          "SAVE10",
		DiscountType:  domain.FlatDiscount,
		DiscountValue: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCouponCode)
}

func TestCouponValidate_WindowAndStatus(t *testing.T) {
	svc, clk := newCouponService(t)
	ctx := context.Background()

	_, err := svc.Validate(ctx, "MISSING", 100_000, clk.Now())
	assert.ErrorIs(t, err, domain.ErrCouponNotFound)

	until := clk.Now().Add(48 * time.Hour)
	coupon, err := svc.Create(ctx, domain.CreateRequest{
		Code:          "WINDOWED",
		DiscountType:  domain.PercentageDiscount,
		DiscountValue: 10,
		ValidFrom:     clk.Now().Add(24 * time.Hour),
		ValidUntil:    &until,
	})
	assert.NoError(t, err)

	_, err = svc.Validate(ctx, "WINDOWED", 100_000, clk.Now())
	assert.ErrorIs(t, err, domain.ErrCouponNotStarted)

	// Expiry boundary is exclusive.
	_, err = svc.Validate(ctx, "WINDOWED", 100_000, until)
	assert.ErrorIs(t, err, domain.ErrCouponExpired)

	discount, err := svc.Validate(ctx, "WINDOWED", 100_000, clk.Now().Add(30*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(10_000), discount.DiscountCents)

	inactive := false
	_, err = svc.Update(ctx, coupon.ID.String(), domain.UpdateRequest{Active: &inactive})
	assert.NoError(t, err)

	_, err = svc.Validate(ctx, "WINDOWED", 100_000, clk.Now().Add(30*time.Hour))
	assert.ErrorIs(t, err, domain.ErrCouponInactive)
}

func TestCouponDiscount_Caps(t *testing.T) {
	svc, clk := newCouponService(t)
	ctx := context.Background()

	// Percentage discount capped by max_discount_cents.
	_, err := svc.Create(ctx, domain.CreateRequest{
		Code:             "CAPPED",
		DiscountType:     domain.PercentageDiscount,
		DiscountValue:    50,
		MaxDiscountCents: 20_000,
		ValidFrom:        clk.Now().Add(-time.Hour),
	})
	assert.NoError(t, err)

	discount, err := svc.Validate(ctx, "CAPPED", 100_000, clk.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(20_000), discount.DiscountCents)

	// Flat discount never exceeds the total.
	_, err = svc.Create(ctx, domain.CreateRequest{
		Code:          "FLAT500",
		DiscountType:  domain.FlatDiscount,
		DiscountValue: 500,
		ValidFrom:     clk.Now().Add(-time.Hour),
	})
	assert.NoError(t, err)

	discount, err = svc.Validate(ctx, "FLAT500", 30_000, clk.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(30_000), discount.DiscountCents)
}

func TestCouponRedeem_ConsumesUsage(t *testing.T) {
	svc, clk := newCouponService(t)
	ctx := context.Background()

	coupon, err := svc.Create(ctx, domain.CreateRequest{
		Code:          "ONCE",
		DiscountType:  domain.FlatDiscount,
		DiscountValue: 100,
		ValidFrom:     clk.Now().Add(-time.Hour),
		UsageLimit:    1,
	})
	assert.NoError(t, err)

	_, err = svc.Redeem(ctx, "ONCE", 100_000, clk.Now())
	assert.NoError(t, err)

	reloaded, err := svc.Get(ctx, coupon.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, int32(1), reloaded.UsedCount)

	_, err = svc.Redeem(ctx, "ONCE", 100_000, clk.Now())
	assert.ErrorIs(t, err, domain.ErrCouponExhausted)
}
