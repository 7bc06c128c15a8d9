package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthub-backend/internal/domain"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestUnitsBetween(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		days int
		unit domain.PricingUnit
		want int64
	}{
		{"single day", 1, domain.PricingUnitDay, 1},
		{"three days", 3, domain.PricingUnitDay, 3},
		{"zero-length range still bills one unit", 0, domain.PricingUnitDay, 1},
		{"exact week", 7, domain.PricingUnitWeek, 1},
		{"partial second week rounds up", 10, domain.PricingUnitWeek, 2},
		{"exact month", 30, domain.PricingUnitMonth, 1},
		{"partial second month rounds up", 45, domain.PricingUnitMonth, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := start.AddDate(0, 0, tt.days)
			assert.Equal(t, tt.want, UnitsBetween(start, end, tt.unit))
		})
	}
}

func TestComputeDelta_Refund(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// 50/day, 3 days: base 150, commission 15, fixed 2 -> total 167.
	// Shortened to 2 days: base 100, commission 10, fixed 2 -> total 112.
	d := calc.ComputeDelta(
		dec("50"), domain.PricingUnitDay, dec("167"),
		date(t, "2026-06-01"), date(t, "2026-06-04"),
		date(t, "2026-06-01"), date(t, "2026-06-03"))

	assert.Equal(t, ChangeRefund, d.Classification)
	assert.True(t, dec("-55").Equal(d.PriceDifference), "got %s", d.PriceDifference)
	assert.True(t, dec("55").Equal(d.Amount))
	assert.True(t, dec("112").Equal(d.NewTotal))
	assert.Equal(t, int64(3), d.OriginalUnits)
	assert.Equal(t, int64(2), d.NewUnits)
}

func TestComputeDelta_Supplement(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// Extended from 3 to 5 days: base 150 -> 250, commission 15 -> 25.
	d := calc.ComputeDelta(
		dec("50"), domain.PricingUnitDay, dec("167"),
		date(t, "2026-06-01"), date(t, "2026-06-04"),
		date(t, "2026-06-01"), date(t, "2026-06-06"))

	assert.Equal(t, ChangeSupplement, d.Classification)
	assert.True(t, dec("110").Equal(d.PriceDifference), "got %s", d.PriceDifference)
	assert.True(t, dec("277").Equal(d.NewTotal))
}

func TestComputeDelta_SameDurationIsNoop(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	d := calc.ComputeDelta(
		dec("50"), domain.PricingUnitDay, dec("167"),
		date(t, "2026-06-01"), date(t, "2026-06-04"),
		date(t, "2026-07-10"), date(t, "2026-07-13"))

	assert.Equal(t, ChangeNone, d.Classification)
	assert.True(t, d.PriceDifference.IsZero())
	assert.True(t, dec("167").Equal(d.NewTotal), "unchanged duration keeps the original total")
}

// A cheap listing crossing the fixed-fee breakpoint pays the fee jump as part
// of the supplement.
func TestComputeDelta_FixedFeeStep(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// 2/day: 3 days base 6 (low tier), 5 days base 10 (high tier).
	// Delta = 4 base + 0.40 commission + 1.50 fixed-fee jump = 5.90.
	d := calc.ComputeDelta(
		dec("2"), domain.PricingUnitDay, dec("7.10"),
		date(t, "2026-06-01"), date(t, "2026-06-04"),
		date(t, "2026-06-01"), date(t, "2026-06-06"))

	assert.Equal(t, ChangeSupplement, d.Classification)
	assert.True(t, dec("5.90").Equal(d.PriceDifference), "got %s", d.PriceDifference)
}

func TestComputeDelta_WeeklyUnit(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	// 70/settimana: 7 days = 1 unit, 10 days = 2 units. Base delta 70,
	// commission delta 7, fixed fee already in the high tier on both sides.
	d := calc.ComputeDelta(
		dec("70"), domain.PricingUnitWeek, dec("79"),
		date(t, "2026-06-01"), date(t, "2026-06-08"),
		date(t, "2026-06-01"), date(t, "2026-06-11"))

	assert.Equal(t, ChangeSupplement, d.Classification)
	assert.True(t, dec("77").Equal(d.PriceDifference), "got %s", d.PriceDifference)
}

// Shortening and then restoring the original duration must cancel out
// exactly.
func TestComputeDelta_Symmetry(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	shorten := calc.ComputeDelta(
		dec("50"), domain.PricingUnitDay, dec("167"),
		date(t, "2026-06-01"), date(t, "2026-06-04"),
		date(t, "2026-06-01"), date(t, "2026-06-03"))
	require.Equal(t, ChangeRefund, shorten.Classification)

	restore := calc.ComputeDelta(
		dec("50"), domain.PricingUnitDay, shorten.NewTotal,
		date(t, "2026-06-01"), date(t, "2026-06-03"),
		date(t, "2026-06-01"), date(t, "2026-06-04"))
	require.Equal(t, ChangeSupplement, restore.Classification)

	assert.True(t, shorten.PriceDifference.Add(restore.PriceDifference).IsZero())
	assert.True(t, dec("167").Equal(restore.NewTotal))
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2026-06-01")
	assert.NoError(t, err)

	_, err = ParseDate("01/06/2026")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
