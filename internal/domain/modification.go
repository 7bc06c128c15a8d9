package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PendingModificationStatus string

const (
	PendingModificationPending PendingModificationStatus = "pending"
	PendingModificationApplied PendingModificationStatus = "applied"
	PendingModificationExpired PendingModificationStatus = "expired"
)

// PendingModification is the persisted phase-1 state of a card-paid booking
// modification. It is keyed by the processor charge-intent reference, which
// doubles as the idempotency key for the asynchronous phase 2: the ingestor
// claims the row (pending -> applied) and a redelivered event finds nothing
// left to claim.
type PendingModification struct {
	IntentRef       string                    `json:"intent_ref"`
	BookingID       int64                     `json:"booking_id"`
	StartDate       string                    `json:"start_date"`
	EndDate         string                    `json:"end_date"`
	PriceDifference decimal.Decimal           `json:"price_difference"`
	NewTotal        decimal.Decimal           `json:"new_total"`
	Status          PendingModificationStatus `json:"status"`
	CreatedOn       time.Time                 `json:"created_on"`
	AppliedOn       *time.Time                `json:"applied_on,omitempty"`
}
