package domain

import "github.com/shopspring/decimal"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
)

type PricingUnit string

const (
	PricingUnitDay   PricingUnit = "giorno"
	PricingUnitWeek  PricingUnit = "settimana"
	PricingUnitMonth PricingUnit = "mese"
)

type Booking struct {
	ID        int64  `json:"id"`
	ListingID int64  `json:"listing_id"`
	RenterID  int64  `json:"renter_id"`
	HubberID  int64  `json:"hubber_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	// AmountTotal is in major currency units; the instrument splits and the
	// cumulative refunds are tracked in integer cents.
	AmountTotal         decimal.Decimal `json:"amount_total"`
	WalletUsedCents     int64           `json:"wallet_used_cents"`
	CardPaidCents       int64           `json:"card_paid_cents"`
	RefundedWalletCents int64           `json:"refunded_wallet_cents"`
	RefundedCardCents   int64           `json:"refunded_card_cents"`
	ProcessorChargeRef  *string         `json:"processor_charge_ref,omitempty"`
	ProcessorRefundRef  *string         `json:"processor_refund_ref,omitempty"`
	Status              BookingStatus   `json:"status"`
	// Version guards the final persist of every settlement branch against
	// concurrent writers.
	Version int32 `json:"version"`
	// Price snapshot fields — joined from the listing; settlement recomputes
	// prices from these, never from a live quote.
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	PricingUnit  PricingUnit     `json:"pricing_unit"`
	CreatedOn    string          `json:"created_on"`
	UpdatedOn    string          `json:"updated_on"`
}

// BookingModification is the full set of booking fields a settlement branch
// persists in its final write. Monetary fields are absolute values, not
// increments.
type BookingModification struct {
	BookingID           int64
	StartDate           string
	EndDate             string
	AmountTotal         decimal.Decimal
	WalletUsedCents     int64
	CardPaidCents       int64
	RefundedWalletCents int64
	RefundedCardCents   int64
	ProcessorRefundRef  *string
}
