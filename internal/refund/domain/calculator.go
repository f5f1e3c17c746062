package domain

import (
	"time"

	"github.com/fodetoorg/yoyo/pkg/money"
)

// FeeTier maps a minimum number of hours before check-in to the cancellation
// fee percentage charged inside that band. Tables are ordered by MinHours
// descending with a terminal MinHours of 0.
type FeeTier struct {
	MinHours   int
	FeePercent float64
}

// BookingSnapshot carries the two booking fields the calculator reads.
type BookingSnapshot struct {
	CheckInDate time.Time
	TotalCents  int64
}

type Computation struct {
	FeeCents          int64
	RefundCents       int64
	FeePercent        float64
	HoursUntilCheckIn float64
}

// Calculate splits a booking's captured amount into cancellation fee and
// refund. Pure: the fee schedule is injected, nothing is read or written here.
//
// No-shows and cancellations after check-in forfeit the full amount. Otherwise
// the first tier whose MinHours the remaining time still clears sets the fee
// percentage. Fee and refund always sum to the original amount.
func Calculate(booking BookingSnapshot, now time.Time, refundType Type, tiers []FeeTier) (Computation, error) {
	if booking.TotalCents <= 0 || booking.CheckInDate.IsZero() {
		return Computation{}, ErrInvalidBookingState
	}

	hours := booking.CheckInDate.Sub(now).Hours()

	var pct float64
	switch {
	case refundType == NoShow || hours < 0:
		pct = 100
	default:
		matched := false
		for _, tier := range tiers {
			if hours >= float64(tier.MinHours) {
				pct = tier.FeePercent
				matched = true
				break
			}
		}
		if !matched {
			return Computation{}, ErrInvalidFeePolicy
		}
	}

	fee := money.Percent(booking.TotalCents, pct)
	return Computation{
		FeeCents:          fee,
		RefundCents:       booking.TotalCents - fee,
		FeePercent:        pct,
		HoursUntilCheckIn: hours,
	}, nil
}
