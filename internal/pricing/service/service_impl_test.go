package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fodetoorg/yoyo/internal/clock"
	hoteldomain "github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/internal/pricing/domain"
	pricingrepository "github.com/fodetoorg/yoyo/internal/pricing/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextLookupStub struct {
	roomCtx hoteldomain.RoomContext
	room    *hoteldomain.Room
}

func (s *contextLookupStub) RoomContext(ctx context.Context, roomID snowflake.ID) (hoteldomain.RoomContext, *hoteldomain.Room, error) {
	if s.room == nil || s.room.ID != roomID {
		return hoteldomain.RoomContext{}, nil, hoteldomain.ErrRoomNotFound
	}
	return s.roomCtx, s.room, nil
}

type pricingFixture struct {
	svc    domain.Service
	hotels *contextLookupStub
	clk    *clock.FakeClock
	node   *snowflake.Node
}

func newPricingFixture(t *testing.T) *pricingFixture {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, gdb.AutoMigrate(&domain.PriceAdjustmentRule{}))

	node, err := snowflake.NewNode(1)
	assert.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	cityID := node.Generate()
	hotelID := node.Generate()
	roomTypeID := node.Generate()
	room := &hoteldomain.Room{
		ID:             node.Generate(),
		HotelID:        hotelID,
		RoomTypeID:     roomTypeID,
		Name:           "Deluxe King",
		BasePriceCents: 100_000,
		Currency:       "INR",
		Active:         true,
	}
	hotels := &contextLookupStub{
		roomCtx: hoteldomain.RoomContext{CityID: cityID, HotelID: hotelID, RoomTypeID: roomTypeID},
		room:    room,
	}

	svc := New(Params{
		DB:     gdb,
		Log:    zap.NewNop(),
		GenID:  node,
		Clock:  clk,
		Repo:   pricingrepository.Provide(),
		Hotels: hotels,
	})

	return &pricingFixture{svc: svc, hotels: hotels, clk: clk, node: node}
}

func TestCreateRule_Validation(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		AdjustmentType:  domain.AdjustmentType("multiplier"),
		AdjustmentValue: 2,
		EffectiveDate:   f.clk.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustmentType)

	_, err = f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		AdjustmentType:  domain.Percentage,
		AdjustmentValue: -100,
		EffectiveDate:   f.clk.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustmentValue)

	_, err = f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		AdjustmentType:  domain.Percentage,
		AdjustmentValue: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	expiry := f.clk.Now().Add(-time.Hour)
	_, err = f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		AdjustmentType:  domain.Percentage,
		AdjustmentValue: 10,
		EffectiveDate:   f.clk.Now(),
		ExpiryDate:      &expiry,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	_, err = f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		CityIDs:         []string{"not-an-id"},
		AdjustmentType:  domain.Percentage,
		AdjustmentValue: 10,
		EffectiveDate:   f.clk.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidScope)
}

func TestUpdateRule_RetiresInsteadOfDeleting(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	rule, err := f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		AdjustmentType:  domain.Percentage,
		AdjustmentValue: 10,
		EffectiveDate:   f.clk.Now().Add(-time.Hour),
		Reason:          "festival season",
	})
	assert.NoError(t, err)
	assert.True(t, rule.Active)

	inactive := false
	updated, err := f.svc.UpdateRule(ctx, rule.ID.String(), domain.UpdateRuleRequest{Active: &inactive})
	assert.NoError(t, err)
	assert.False(t, updated.Active)

	// The row is still listed, only retired.
	rules, err := f.svc.ListRules(ctx)
	assert.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestQuote_AppliesActiveRules(t *testing.T) {
	f := newPricingFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		CityIDs:         []string{f.hotels.roomCtx.CityID.String()},
		AdjustmentType:  domain.Percentage,
		AdjustmentValue: 10,
		EffectiveDate:   f.clk.Now().Add(-24 * time.Hour),
		Reason:          "city surge",
	})
	assert.NoError(t, err)

	retired, err := f.svc.CreateRule(ctx, domain.CreateRuleRequest{
		AdjustmentType:  domain.Fixed,
		AdjustmentValue: 500,
		EffectiveDate:   f.clk.Now().Add(-24 * time.Hour),
	})
	assert.NoError(t, err)
	inactive := false
	_, err = f.svc.UpdateRule(ctx, retired.ID.String(), domain.UpdateRuleRequest{Active: &inactive})
	assert.NoError(t, err)

	quote, err := f.svc.Quote(ctx, domain.QuoteRequest{RoomID: f.hotels.room.ID.String()})
	assert.NoError(t, err)
	assert.Equal(t, int64(100_000), quote.BasePriceCents)
	assert.Equal(t, int64(110_000), quote.FinalPriceCents)
	assert.Len(t, quote.AppliedRules, 1)
}

func TestQuote_UnknownRoom(t *testing.T) {
	f := newPricingFixture(t)

	_, err := f.svc.Quote(context.Background(), domain.QuoteRequest{RoomID: f.node.Generate().String()})
	assert.ErrorIs(t, err, hoteldomain.ErrRoomNotFound)
}
