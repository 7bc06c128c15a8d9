package pricing

import "github.com/shopspring/decimal"

// Role selects which side of the marketplace a fee applies to.
type Role string

const (
	RoleRenter Role = "renter"
	RoleHubber Role = "hubber"
)

// Config carries the platform fee constants. Values are injected from
// configuration so a rate change never touches settlement logic.
type Config struct {
	VariableFeePercent      decimal.Decimal
	RenterFixedFeeThreshold decimal.Decimal
	RenterFixedFeeBelow     decimal.Decimal
	RenterFixedFeeAbove     decimal.Decimal
	HubberFixedFeeThreshold decimal.Decimal
	HubberFixedFeeBelow     decimal.Decimal
	HubberFixedFeeAbove     decimal.Decimal
}

// DefaultConfig returns the production fee schedule: 10% variable fee and a
// single-breakpoint fixed fee per role.
func DefaultConfig() Config {
	return Config{
		VariableFeePercent:      decimal.NewFromInt(10),
		RenterFixedFeeThreshold: decimal.NewFromInt(8),
		RenterFixedFeeBelow:     decimal.NewFromFloat(0.50),
		RenterFixedFeeAbove:     decimal.NewFromInt(2),
		HubberFixedFeeThreshold: decimal.NewFromInt(10),
		HubberFixedFeeBelow:     decimal.NewFromFloat(0.50),
		HubberFixedFeeAbove:     decimal.NewFromInt(2),
	}
}

// FeeBreakdown is the per-party fee decomposition of a base amount.
type FeeBreakdown struct {
	VariableFee decimal.Decimal
	FixedFee    decimal.Decimal
	TotalFee    decimal.Decimal
}

// Calculator computes platform fees and price deltas. It is pure and safe for
// concurrent use.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// VariableFee returns the percentage fee on amount. The result is left
// unrounded; rounding to cents happens only at persistence boundaries.
func (c *Calculator) VariableFee(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.cfg.VariableFeePercent).Div(decimal.NewFromInt(100))
}

// FixedFee returns the tiered fixed fee for the role. It is a step function of
// the full base amount with exactly one breakpoint per role.
func (c *Calculator) FixedFee(role Role, amount decimal.Decimal) decimal.Decimal {
	switch role {
	case RoleHubber:
		if amount.LessThanOrEqual(c.cfg.HubberFixedFeeThreshold) {
			return c.cfg.HubberFixedFeeBelow
		}
		return c.cfg.HubberFixedFeeAbove
	default:
		if amount.LessThanOrEqual(c.cfg.RenterFixedFeeThreshold) {
			return c.cfg.RenterFixedFeeBelow
		}
		return c.cfg.RenterFixedFeeAbove
	}
}

// Fees returns the full fee breakdown for a role and base amount.
func (c *Calculator) Fees(role Role, amount decimal.Decimal) FeeBreakdown {
	variable := c.VariableFee(amount)
	fixed := c.FixedFee(role, amount)
	return FeeBreakdown{
		VariableFee: variable,
		FixedFee:    fixed,
		TotalFee:    variable.Add(fixed),
	}
}
