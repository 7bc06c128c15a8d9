package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculator_VariableFee(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	assert.True(t, dec("15").Equal(calc.VariableFee(dec("150"))))
	assert.True(t, dec("0.1").Equal(calc.VariableFee(dec("1"))))
	assert.True(t, decimal.Zero.Equal(calc.VariableFee(decimal.Zero)))
}

func TestCalculator_FixedFee(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	t.Run("Renter breakpoint", func(t *testing.T) {
		assert.True(t, dec("0.5").Equal(calc.FixedFee(RoleRenter, dec("7.99"))))
		assert.True(t, dec("0.5").Equal(calc.FixedFee(RoleRenter, dec("8"))), "threshold itself stays in the low tier")
		assert.True(t, dec("2").Equal(calc.FixedFee(RoleRenter, dec("8.01"))))
	})

	t.Run("Hubber breakpoint", func(t *testing.T) {
		assert.True(t, dec("0.5").Equal(calc.FixedFee(RoleHubber, dec("10"))))
		assert.True(t, dec("2").Equal(calc.FixedFee(RoleHubber, dec("10.01"))))
	})
}

func TestCalculator_Fees(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	b := calc.Fees(RoleRenter, dec("150"))
	assert.True(t, dec("15").Equal(b.VariableFee))
	assert.True(t, dec("2").Equal(b.FixedFee))
	assert.True(t, dec("17").Equal(b.TotalFee))
}

// The total fee must never decrease when the base amount grows, even across
// the fixed-fee breakpoint.
func TestCalculator_FeesMonotonic(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	prev := decimal.Zero
	for cents := int64(0); cents <= 2000; cents += 25 {
		amount := FromCents(cents)
		total := calc.Fees(RoleRenter, amount).TotalFee
		assert.True(t, total.GreaterThanOrEqual(prev),
			"fee decreased at amount %s: %s -> %s", amount, prev, total)
		prev = total
	}
}
