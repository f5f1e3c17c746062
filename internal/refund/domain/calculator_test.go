package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardTiers() []FeeTier {
	return []FeeTier{
		{MinHours: 72, FeePercent: 0},
		{MinHours: 24, FeePercent: 25},
		{MinHours: 0, FeePercent: 50},
	}
}

func snapshotHoursBefore(hours float64, totalCents int64, now time.Time) BookingSnapshot {
	return BookingSnapshot{
		CheckInDate: now.Add(time.Duration(hours * float64(time.Hour))),
		TotalCents:  totalCents,
	}
}

func TestCalculate_EarlyCancellationFreeOfCharge(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 5000.00 cancelled 80h out, >= 72h tier charges nothing.
	res, err := Calculate(snapshotHoursBefore(80, 500000, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.FeeCents)
	assert.Equal(t, int64(500000), res.RefundCents)
	assert.Equal(t, float64(0), res.FeePercent)
	assert.InDelta(t, 80, res.HoursUntilCheckIn, 1e-9)
}

func TestCalculate_LateCancellationHalfFee(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 5000.00 cancelled 10h out falls in the <24h band at 50%.
	res, err := Calculate(snapshotHoursBefore(10, 500000, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, int64(250000), res.FeeCents)
	assert.Equal(t, int64(250000), res.RefundCents)
	assert.Equal(t, float64(50), res.FeePercent)
}

func TestCalculate_NoShowForfeitsEverything(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, hours := range []float64{100, 10, -5} {
		res, err := Calculate(snapshotHoursBefore(hours, 300000, now), now, NoShow, standardTiers())
		require.NoError(t, err)
		assert.Equal(t, int64(300000), res.FeeCents)
		assert.Equal(t, int64(0), res.RefundCents)
		assert.Equal(t, float64(100), res.FeePercent)
	}
}

func TestCalculate_PastCheckInForfeitsEverything(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	res, err := Calculate(snapshotHoursBefore(-1, 200000, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, float64(100), res.FeePercent)
	assert.Equal(t, int64(200000), res.FeeCents)
	assert.Equal(t, int64(0), res.RefundCents)
	assert.Less(t, res.HoursUntilCheckIn, float64(0))
}

func TestCalculate_ZeroHoursUsesTerminalTier(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	res, err := Calculate(snapshotHoursBefore(0, 100000, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, float64(50), res.FeePercent)
}

func TestCalculate_TierBoundariesInclusive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Exactly 72h clears the free tier, exactly 24h clears the 25% tier.
	res, err := Calculate(snapshotHoursBefore(72, 100000, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, float64(0), res.FeePercent)

	res, err = Calculate(snapshotHoursBefore(24, 100000, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, float64(25), res.FeePercent)

	res, err = Calculate(snapshotHoursBefore(23.99, 100000, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, float64(50), res.FeePercent)
}

func TestCalculate_ConservationLaw(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	totals := []int64{1, 99, 100001, 333333, 500000}
	hours := []float64{-10, 0, 5, 23.5, 24, 48, 72, 100}

	for _, total := range totals {
		for _, h := range hours {
			res, err := Calculate(snapshotHoursBefore(h, total, now), now, Cancellation, standardTiers())
			require.NoError(t, err)
			assert.Equal(t, total, res.FeeCents+res.RefundCents)
			assert.GreaterOrEqual(t, res.RefundCents, int64(0))
			assert.LessOrEqual(t, res.RefundCents, total)
		}
	}
}

func TestCalculate_FeeMonotonicAsCheckInApproaches(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	prev := float64(-1)
	for _, h := range []float64{100, 72, 48, 24, 12, 0, -1} {
		res, err := Calculate(snapshotHoursBefore(h, 100000, now), now, Cancellation, standardTiers())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.FeePercent, prev)
		prev = res.FeePercent
	}
}

func TestCalculate_InvalidBookingState(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := Calculate(snapshotHoursBefore(48, 0, now), now, Cancellation, standardTiers())
	assert.ErrorIs(t, err, ErrInvalidBookingState)

	_, err = Calculate(snapshotHoursBefore(48, -100, now), now, Cancellation, standardTiers())
	assert.ErrorIs(t, err, ErrInvalidBookingState)

	_, err = Calculate(BookingSnapshot{TotalCents: 100000}, now, Cancellation, standardTiers())
	assert.ErrorIs(t, err, ErrInvalidBookingState)
}

func TestCalculate_EmptyTierTableRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := Calculate(snapshotHoursBefore(48, 100000, now), now, Cancellation, nil)
	assert.ErrorIs(t, err, ErrInvalidFeePolicy)
}

func TestCalculate_FeeRoundsHalfUp(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// 25% of 333.33 = 83.3325, fee rounds to 83.33 and the refund absorbs
	// the remainder so the split still conserves the total.
	res, err := Calculate(snapshotHoursBefore(48, 33333, now), now, Cancellation, standardTiers())
	require.NoError(t, err)
	assert.Equal(t, int64(8333), res.FeeCents)
	assert.Equal(t, int64(25000), res.RefundCents)
}
