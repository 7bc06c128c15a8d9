// Package processor wraps the external payment gateway behind a narrow
// interface: create a charge intent, create a refund. Everything else about
// the gateway (confirmation UX, settlement, disputes) is its own contract.
package processor

import "context"

// EventTypeBookingModification tags charge intents created for a booking
// date change; the webhook ingestor only acts on events carrying it.
const EventTypeBookingModification = "booking_modification"

// ChargeIntent is the phase-1 handle of an off-band card charge. The client
// secret is handed to the browser to drive the gateway's confirmation step.
type ChargeIntent struct {
	Ref          string
	ClientSecret string
}

// Event is the asynchronous success notification delivered to the webhook
// endpoint. Amounts are integer minor units, as everywhere on the processor
// boundary.
type Event struct {
	ID          string            `json:"id"`
	Type        string            `json:"type"`
	ChargeRef   string            `json:"chargeRef"`
	AmountCents int64             `json:"amountCents"`
	Metadata    map[string]string `json:"metadata"`
}

type Processor interface {
	CreateChargeIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*ChargeIntent, error)
	CreateRefund(ctx context.Context, chargeRef string, amountCents int64) (string, error)
}
