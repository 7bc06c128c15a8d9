// Package service implements the business operations: booking modification
// settlement, payment event ingestion, wallet reads and authentication.
// Services depend on repository interfaces and on each other through the
// interfaces below, never on concrete types.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/processor"
)

// Payment methods a renter can choose for a supplement.
const (
	PaymentMethodWallet = "wallet"
	PaymentMethodCard   = "card"
)

// ModifyBookingRequest is a renter's request to move a booking to new dates.
// PaymentMethod is only consulted when the new dates cost more.
type ModifyBookingRequest struct {
	BookingID     int64
	RenterID      int64
	StartDate     string
	EndDate       string
	PaymentMethod string
}

// ModificationResult reports the settlement outcome of a modification.
// Monetary fields are in major currency units and only the fields relevant to
// the branch taken are set.
type ModificationResult struct {
	Success         bool            `json:"success"`
	PriceDifference decimal.Decimal `json:"price_difference"`
	NewTotal        decimal.Decimal `json:"new_total"`
	RefundedWallet  decimal.Decimal `json:"refunded_wallet"`
	RefundedCard    decimal.Decimal `json:"refunded_card"`
	PaidWithWallet  decimal.Decimal `json:"paid_with_wallet"`
	ChargedExtra    decimal.Decimal `json:"charged_extra"`
	RequiresPayment bool            `json:"requires_payment"`
	ClientSecret    string          `json:"client_secret,omitempty"`
}

// ModificationPreview is the read-only repricing of a requested date change.
type ModificationPreview struct {
	Classification  string          `json:"classification"`
	PriceDifference decimal.Decimal `json:"price_difference"`
	NewTotal        decimal.Decimal `json:"new_total"`
}

type BookingService interface {
	ModifyBooking(ctx context.Context, req *ModifyBookingRequest) (*ModificationResult, error)
	PreviewModification(ctx context.Context, req *ModifyBookingRequest) (*ModificationPreview, error)
	GetBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Booking, int32, error)
}

type PaymentEventService interface {
	// HandleChargeSucceeded settles the second phase of a card supplement. A
	// nil return means the event is consumed and must be acknowledged, which
	// includes duplicates and events for vanished bookings.
	HandleChargeSucceeded(ctx context.Context, event *processor.Event) error
}

type WalletService interface {
	GetWallet(ctx context.Context, userID int64) (*domain.Wallet, error)
	ListTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// NotifierService posts system-authored messages into a booking's
// conversation thread.
type NotifierService interface {
	SendBookingSystemMessage(ctx context.Context, booking *domain.Booking, body string) error
}

type EmailService interface {
	SendRefundNotification(to string, bookingID int64, amount decimal.Decimal) error
	SendChargeNotification(to string, bookingID int64, amount decimal.Decimal) error
	SendAdminAlert(subject, body string) error
}
