package repository

import (
	"context"
	"errors"
	"time"

	"renthub-backend/internal/domain"
)

var (
	// ErrNotFound is returned for any row-level miss.
	ErrNotFound = errors.New("not found")
	// ErrVersionConflict is returned when a booking changed between the read
	// at branch start and the final persist.
	ErrVersionConflict = errors.New("booking modified concurrently")
	// ErrInsufficientBalance is returned when a debit would drive a wallet
	// balance negative. The balance is never mutated in that case.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
)

type BookingRepository interface {
	// GetByID loads a booking together with its listing price snapshot.
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// ApplyModification performs the final persist of a settlement branch. It
	// fails with ErrVersionConflict if the row's version no longer matches.
	ApplyModification(ctx context.Context, m *domain.BookingModification, expectedVersion int32) error
	ListByRenter(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListFailedCardRefunds returns bookings that recorded a card refund for
	// which no processor refund reference was ever obtained.
	ListFailedCardRefunds(ctx context.Context) ([]domain.Booking, error)
}

type WalletRepository interface {
	Get(ctx context.Context, userID int64) (*domain.Wallet, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	Credit(ctx context.Context, userID int64, amountCents int64) error
	// Debit refuses with ErrInsufficientBalance rather than going negative.
	Debit(ctx context.Context, userID int64, amountCents int64) error
	CreateTransaction(ctx context.Context, tx *domain.WalletTransaction) error
	ListTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error)
}

type PendingModificationRepository interface {
	Create(ctx context.Context, pm *domain.PendingModification) error
	// Claim atomically flips a pending row to applied and returns it. A row
	// that is absent or already claimed yields ErrNotFound.
	Claim(ctx context.Context, intentRef string) (*domain.PendingModification, error)
	// Release puts a claimed row back to pending so a redelivered event can
	// claim it again.
	Release(ctx context.Context, intentRef string) error
	ListStale(ctx context.Context, olderThan time.Time) ([]domain.PendingModification, error)
	MarkExpired(ctx context.Context, intentRef string) error
}

type ConversationRepository interface {
	GetOrCreate(ctx context.Context, bookingID, renterID, hubberID int64) (*domain.Conversation, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
