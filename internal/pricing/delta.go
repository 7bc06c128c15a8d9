package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"renthub-backend/internal/domain"
)

// Classification is the outcome of comparing the old and new date ranges.
type Classification string

const (
	ChangeNone       Classification = "none"
	ChangeRefund     Classification = "refund"
	ChangeSupplement Classification = "supplement"
)

// tolerance absorbs sub-cent noise from the fee arithmetic. Without it a date
// change of identical duration can oscillate between spurious refund and
// supplement classifications.
var tolerance = decimal.NewFromFloat(0.01)

// Delta is the signed price outcome of a requested date change.
type Delta struct {
	Classification  Classification
	Amount          decimal.Decimal // absolute value of the difference
	PriceDifference decimal.Decimal // signed; negative means refund owed
	NewTotal        decimal.Decimal
	OriginalUnits   int64
	NewUnits        int64
}

const dateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd calendar date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", s)
	}
	return t, nil
}

// UnitsBetween counts whole billing units between two dates, rounding up and
// never below one. The same rule is applied to the original and the requested
// range so the comparison stays apples-to-apples with how the listing was
// priced.
func UnitsBetween(start, end time.Time, unit domain.PricingUnit) int64 {
	days := int64(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	switch unit {
	case domain.PricingUnitWeek:
		return ceilDiv(days, 7)
	case domain.PricingUnitMonth:
		return ceilDiv(days, 30)
	default:
		return days
	}
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// ComputeDelta reprices both date ranges from the listing snapshot and
// classifies the difference. The fixed-fee delta is taken on the full old and
// new base amounts because the fixed fee is a step function of total spend,
// not a linear one.
func (c *Calculator) ComputeDelta(
	pricePerUnit decimal.Decimal,
	unit domain.PricingUnit,
	originalTotal decimal.Decimal,
	origStart, origEnd, newStart, newEnd time.Time,
) Delta {
	originalUnits := UnitsBetween(origStart, origEnd, unit)
	newUnits := UnitsBetween(newStart, newEnd, unit)

	originalBase := pricePerUnit.Mul(decimal.NewFromInt(originalUnits))
	newBase := pricePerUnit.Mul(decimal.NewFromInt(newUnits))

	basePriceDelta := newBase.Sub(originalBase)
	commissionDelta := c.VariableFee(newBase).Sub(c.VariableFee(originalBase))
	fixedFeeDelta := c.FixedFee(RoleRenter, newBase).Sub(c.FixedFee(RoleRenter, originalBase))

	priceDifference := basePriceDelta.Add(commissionDelta).Add(fixedFeeDelta)

	d := Delta{
		OriginalUnits: originalUnits,
		NewUnits:      newUnits,
	}
	switch {
	case priceDifference.GreaterThan(tolerance):
		d.Classification = ChangeSupplement
		d.PriceDifference = priceDifference
		d.Amount = priceDifference
		d.NewTotal = originalTotal.Add(priceDifference)
	case priceDifference.LessThan(tolerance.Neg()):
		d.Classification = ChangeRefund
		d.PriceDifference = priceDifference
		d.Amount = priceDifference.Abs()
		d.NewTotal = originalTotal.Add(priceDifference)
	default:
		d.Classification = ChangeNone
		d.PriceDifference = decimal.Zero
		d.Amount = decimal.Zero
		d.NewTotal = originalTotal
	}
	return d
}
