package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	hoteldomain "github.com/fodetoorg/yoyo/internal/hotel/domain"
	"github.com/fodetoorg/yoyo/pkg/money"
)

// Resolution is the outcome of folding the matching adjustment rules over a
// base price. AppliedRules preserves application order.
type Resolution struct {
	FinalPriceCents int64
	AppliedRules    []snowflake.ID
}

// Resolve computes the effective price for a room at asOf. Pure: callers fetch
// candidate rules and persist nothing here.
//
// A rule survives when its validity window contains asOf (effective date
// inclusive, expiry exclusive, nil expiry open-ended) and every non-empty
// scope dimension contains the room's id for that dimension. Surviving rules
// apply in effective-date order, ties broken by id. Percentage rules multiply
// the running price, fixed rules add their value in major currency units.
// The fold runs in float and rounds half-up once at the end.
func Resolve(basePriceCents int64, room hoteldomain.RoomContext, rules []PriceAdjustmentRule, asOf time.Time) (Resolution, error) {
	matched := make([]PriceAdjustmentRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		if asOf.Before(rule.EffectiveDate) {
			continue
		}
		if rule.ExpiryDate != nil && !asOf.Before(*rule.ExpiryDate) {
			continue
		}
		if !scopeMatches(rule.CityIDs, room.CityID) ||
			!scopeMatches(rule.HotelIDs, room.HotelID) ||
			!scopeMatches(rule.RoomTypeIDs, room.RoomTypeID) {
			continue
		}
		matched = append(matched, rule)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].EffectiveDate.Equal(matched[j].EffectiveDate) {
			return matched[i].EffectiveDate.Before(matched[j].EffectiveDate)
		}
		return matched[i].ID < matched[j].ID
	})

	running := float64(basePriceCents)
	applied := make([]snowflake.ID, 0, len(matched))
	for _, rule := range matched {
		switch rule.AdjustmentType {
		case Percentage:
			if rule.AdjustmentValue <= -100 {
				return Resolution{}, fmt.Errorf("%w: rule %s", ErrInvalidAdjustment, rule.ID)
			}
			running *= 1 + rule.AdjustmentValue/100
		case Fixed:
			running += rule.AdjustmentValue * 100
		default:
			return Resolution{}, fmt.Errorf("%w: rule %s", ErrInvalidAdjustment, rule.ID)
		}
		applied = append(applied, rule.ID)
	}

	if running < 0 {
		running = 0
	}

	return Resolution{
		FinalPriceCents: money.RoundHalfUp(running),
		AppliedRules:    applied,
	}, nil
}

func scopeMatches(scope []snowflake.ID, id snowflake.ID) bool {
	if len(scope) == 0 {
		return true
	}
	for _, v := range scope {
		if v == id {
			return true
		}
	}
	return false
}
