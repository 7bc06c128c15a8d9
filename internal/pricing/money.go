package pricing

import "github.com/shopspring/decimal"

// ToCents converts a major-unit amount to integer minor units, rounding half
// away from zero at the cent. This is the only place decimal amounts cross
// into the cents domain.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Round(2).Shift(2).IntPart()
}

// FromCents converts integer minor units back to a major-unit decimal.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Shift(-2)
}

// SplitRefund allocates a refund proportionally across the wallet and card
// instruments based on how the booking was originally paid. The wallet share
// is rounded to the cent and capped at what the wallet actually paid; the card
// takes the exact remainder so the two parts always sum to the refund.
// A fully-comped booking (nothing paid on either instrument) yields zero on
// both sides.
func SplitRefund(refund, walletPaid, cardPaid decimal.Decimal) (walletRefund, cardRefund decimal.Decimal) {
	totalPaid := walletPaid.Add(cardPaid)
	if totalPaid.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	refund = refund.Round(2)
	walletRefund = refund.Mul(walletPaid).Div(totalPaid).Round(2)
	if walletRefund.GreaterThan(walletPaid) {
		walletRefund = walletPaid
	}
	cardRefund = refund.Sub(walletRefund)
	return walletRefund, cardRefund
}
