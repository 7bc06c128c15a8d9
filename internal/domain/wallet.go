package domain

import "time"

type WalletTransactionType string

const (
	WalletTransactionCredit WalletTransactionType = "credit"
	WalletTransactionDebit  WalletTransactionType = "debit"
)

type WalletTransactionSource string

const (
	SourceBookingModificationRefund WalletTransactionSource = "booking_modification_refund"
	SourceBookingModificationCharge WalletTransactionSource = "booking_modification_charge"
	SourceBookingModificationIncome WalletTransactionSource = "booking_modification_income"
)

// Wallet holds the three internal credit balances of a user. Settlement only
// reads and writes BalanceCents; the refund and referral buckets are managed
// elsewhere.
type Wallet struct {
	UserID               int64 `json:"user_id"`
	BalanceCents         int64 `json:"balance_cents"`
	RefundBalanceCents   int64 `json:"refund_balance_cents"`
	ReferralBalanceCents int64 `json:"referral_balance_cents"`
}

// WalletTransaction is an append-only ledger entry. Every balance mutation
// performed by settlement is paired with exactly one of these.
type WalletTransaction struct {
	ID          int64                   `json:"id"`
	UserID      int64                   `json:"user_id"`
	AmountCents int64                   `json:"amount_cents"` // positive for credit, negative for debit
	Type        WalletTransactionType   `json:"type"`
	Source      WalletTransactionSource `json:"source"`
	Description string                  `json:"description"`
	BookingID   *int64                  `json:"booking_id,omitempty"`
	CreatedOn   time.Time               `json:"created_on"`
}
