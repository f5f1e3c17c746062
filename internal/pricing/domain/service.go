package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrRuleNotFound           = errors.New("rule_not_found")
	ErrInvalidAdjustment      = errors.New("invalid_adjustment")
	ErrInvalidAdjustmentType  = errors.New("invalid_adjustment_type")
	ErrInvalidAdjustmentValue = errors.New("invalid_adjustment_value")
	ErrInvalidWindow          = errors.New("invalid_validity_window")
	ErrInvalidScope           = errors.New("invalid_scope")
	ErrInvalidQuoteDate       = errors.New("invalid_quote_date")
)

type Service interface {
	CreateRule(ctx context.Context, req CreateRuleRequest) (*PriceAdjustmentRule, error)
	GetRule(ctx context.Context, id string) (*PriceAdjustmentRule, error)
	ListRules(ctx context.Context) ([]PriceAdjustmentRule, error)
	UpdateRule(ctx context.Context, id string, req UpdateRuleRequest) (*PriceAdjustmentRule, error)
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
}

type CreateRuleRequest struct {
	CityIDs         []string       `json:"city_ids"`
	HotelIDs        []string       `json:"hotel_ids"`
	RoomTypeIDs     []string       `json:"room_type_ids"`
	AdjustmentType  AdjustmentType `json:"adjustment_type"`
	AdjustmentValue float64        `json:"adjustment_value"`
	EffectiveDate   time.Time      `json:"effective_date"`
	ExpiryDate      *time.Time     `json:"expiry_date"`
	Reason          string         `json:"reason"`
}

type UpdateRuleRequest struct {
	CityIDs         *[]string       `json:"city_ids"`
	HotelIDs        *[]string       `json:"hotel_ids"`
	RoomTypeIDs     *[]string       `json:"room_type_ids"`
	AdjustmentType  *AdjustmentType `json:"adjustment_type"`
	AdjustmentValue *float64        `json:"adjustment_value"`
	EffectiveDate   *time.Time      `json:"effective_date"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
	Reason          *string         `json:"reason"`
	Active          *bool           `json:"active"`
}

type QuoteRequest struct {
	RoomID string     `json:"room_id"`
	AsOf   *time.Time `json:"as_of"`
}

type QuoteResponse struct {
	RoomID          snowflake.ID   `json:"room_id"`
	Currency        string         `json:"currency"`
	BasePriceCents  int64          `json:"base_price_cents"`
	FinalPriceCents int64          `json:"final_price_cents"`
	AppliedRules    []snowflake.ID `json:"applied_rules"`
	AsOf            time.Time      `json:"as_of"`
}
