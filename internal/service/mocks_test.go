package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/processor"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ApplyModification(ctx context.Context, mod *domain.BookingModification, expectedVersion int32) error {
	args := m.Called(ctx, mod, expectedVersion)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByRenter(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, renterID, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListFailedCardRefunds(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockWalletRepo
type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) Get(ctx context.Context, userID int64) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletRepo) GetBalance(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockWalletRepo) Credit(ctx context.Context, userID int64, amountCents int64) error {
	args := m.Called(ctx, userID, amountCents)
	return args.Error(0)
}
func (m *MockWalletRepo) Debit(ctx context.Context, userID int64, amountCents int64) error {
	args := m.Called(ctx, userID, amountCents)
	return args.Error(0)
}
func (m *MockWalletRepo) CreateTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockWalletRepo) ListTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.WalletTransaction), args.Get(1).(int32), args.Error(2)
}

// MockPendingModificationRepo
type MockPendingModificationRepo struct {
	mock.Mock
}

func (m *MockPendingModificationRepo) Create(ctx context.Context, pm *domain.PendingModification) error {
	args := m.Called(ctx, pm)
	return args.Error(0)
}
func (m *MockPendingModificationRepo) Claim(ctx context.Context, intentRef string) (*domain.PendingModification, error) {
	args := m.Called(ctx, intentRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingModification), args.Error(1)
}
func (m *MockPendingModificationRepo) Release(ctx context.Context, intentRef string) error {
	args := m.Called(ctx, intentRef)
	return args.Error(0)
}
func (m *MockPendingModificationRepo) ListStale(ctx context.Context, olderThan time.Time) ([]domain.PendingModification, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.PendingModification), args.Error(1)
}
func (m *MockPendingModificationRepo) MarkExpired(ctx context.Context, intentRef string) error {
	args := m.Called(ctx, intentRef)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockProcessor
type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) CreateChargeIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*processor.ChargeIntent, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*processor.ChargeIntent), args.Error(1)
}
func (m *MockProcessor) CreateRefund(ctx context.Context, chargeRef string, amountCents int64) (string, error) {
	args := m.Called(ctx, chargeRef, amountCents)
	return args.String(0), args.Error(1)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendBookingSystemMessage(ctx context.Context, booking *domain.Booking, body string) error {
	args := m.Called(ctx, booking, body)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRefundNotification(to string, bookingID int64, amount decimal.Decimal) error {
	args := m.Called(to, bookingID, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendChargeNotification(to string, bookingID int64, amount decimal.Decimal) error {
	args := m.Called(to, bookingID, amount)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminAlert(subject, body string) error {
	args := m.Called(subject, body)
	return args.Error(0)
}
