package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/pricing"
	"renthub-backend/internal/processor"
	"renthub-backend/internal/repository"
)

type bookingService struct {
	bookings repository.BookingRepository
	wallets  repository.WalletRepository
	pending  repository.PendingModificationRepository
	users    repository.UserRepository
	proc     processor.Processor
	calc     *pricing.Calculator
	notifier NotifierService
	email    EmailService
	currency string
}

func NewBookingService(
	bookings repository.BookingRepository,
	wallets repository.WalletRepository,
	pending repository.PendingModificationRepository,
	users repository.UserRepository,
	proc processor.Processor,
	calc *pricing.Calculator,
	notifier NotifierService,
	email EmailService,
	currency string,
) BookingService {
	return &bookingService{
		bookings: bookings,
		wallets:  wallets,
		pending:  pending,
		users:    users,
		proc:     proc,
		calc:     calc,
		notifier: notifier,
		email:    email,
		currency: currency,
	}
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if booking.RenterID != userID && booking.HubberID != userID {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Booking, int32, error) {
	return s.bookings.ListByRenter(ctx, renterID, page, pageSize)
}

func (s *bookingService) PreviewModification(ctx context.Context, req *ModifyBookingRequest) (*ModificationPreview, error) {
	_, delta, err := s.loadAndReprice(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ModificationPreview{
		Classification:  string(delta.Classification),
		PriceDifference: delta.PriceDifference,
		NewTotal:        delta.NewTotal,
	}, nil
}

// ModifyBooking settles a date change end to end. The branch taken is decided
// once, from the repriced delta; every branch finishes with a single
// version-guarded write of the booking row.
func (s *bookingService) ModifyBooking(ctx context.Context, req *ModifyBookingRequest) (*ModificationResult, error) {
	booking, delta, err := s.loadAndReprice(ctx, req)
	if err != nil {
		return nil, err
	}

	switch delta.Classification {
	case pricing.ChangeNone:
		return s.applyDateOnlyChange(ctx, booking, req, delta)
	case pricing.ChangeRefund:
		return s.applyRefund(ctx, booking, req, delta)
	default:
		switch req.PaymentMethod {
		case PaymentMethodWallet:
			return s.applyWalletSupplement(ctx, booking, req, delta)
		case PaymentMethodCard:
			return s.applyCardSupplement(ctx, booking, req, delta)
		case "":
			return nil, ErrPaymentMethodRequired
		default:
			return nil, ErrUnsupportedPaymentMethod
		}
	}
}

// loadAndReprice runs the shared preconditions: the booking exists, belongs to
// the caller, is still modifiable, and the requested range is well formed.
func (s *bookingService) loadAndReprice(ctx context.Context, req *ModifyBookingRequest) (*domain.Booking, pricing.Delta, error) {
	newStart, err := pricing.ParseDate(req.StartDate)
	if err != nil {
		return nil, pricing.Delta{}, ErrInvalidDateRange
	}
	newEnd, err := pricing.ParseDate(req.EndDate)
	if err != nil {
		return nil, pricing.Delta{}, ErrInvalidDateRange
	}
	if !newEnd.After(newStart) {
		return nil, pricing.Delta{}, ErrInvalidDateRange
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, pricing.Delta{}, ErrBookingNotFound
	}
	if err != nil {
		return nil, pricing.Delta{}, err
	}
	if booking.RenterID != req.RenterID {
		return nil, pricing.Delta{}, ErrNotBookingOwner
	}
	// Only confirmed bookings have a settled payment to reconcile against.
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, pricing.Delta{}, ErrBookingNotModifiable
	}

	origStart, err := pricing.ParseDate(booking.StartDate)
	if err != nil {
		return nil, pricing.Delta{}, fmt.Errorf("booking %d has corrupt start date: %w", booking.ID, err)
	}
	origEnd, err := pricing.ParseDate(booking.EndDate)
	if err != nil {
		return nil, pricing.Delta{}, fmt.Errorf("booking %d has corrupt end date: %w", booking.ID, err)
	}

	delta := s.calc.ComputeDelta(
		booking.PricePerUnit, booking.PricingUnit, booking.AmountTotal,
		origStart, origEnd, newStart, newEnd)
	return booking, delta, nil
}

func (s *bookingService) applyDateOnlyChange(ctx context.Context, booking *domain.Booking, req *ModifyBookingRequest, delta pricing.Delta) (*ModificationResult, error) {
	m := &domain.BookingModification{
		BookingID:           booking.ID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		AmountTotal:         booking.AmountTotal,
		WalletUsedCents:     booking.WalletUsedCents,
		CardPaidCents:       booking.CardPaidCents,
		RefundedWalletCents: booking.RefundedWalletCents,
		RefundedCardCents:   booking.RefundedCardCents,
		ProcessorRefundRef:  nil,
	}
	if err := s.bookings.ApplyModification(ctx, m, booking.Version); err != nil {
		return nil, err
	}

	_ = s.notifier.SendBookingSystemMessage(ctx, booking, fmt.Sprintf(
		"Le date della prenotazione #%d sono state modificate: %s - %s.",
		booking.ID, req.StartDate, req.EndDate))

	logger.InfoContext(ctx, "booking dates changed with no price impact",
		"booking_id", booking.ID, "start", req.StartDate, "end", req.EndDate)
	return &ModificationResult{
		Success:         true,
		PriceDifference: decimal.Zero,
		NewTotal:        booking.AmountTotal,
	}, nil
}

// applyRefund credits the renter's wallet first and only then attempts the
// card refund. The wallet credit is the user-favorable half; a failed card
// refund is recorded as owed and reported, never rolled back.
func (s *bookingService) applyRefund(ctx context.Context, booking *domain.Booking, req *ModifyBookingRequest, delta pricing.Delta) (*ModificationResult, error) {
	walletPaid := pricing.FromCents(booking.WalletUsedCents)
	cardPaid := pricing.FromCents(booking.CardPaidCents)
	walletRefund, cardRefund := pricing.SplitRefund(delta.Amount, walletPaid, cardPaid)

	if walletRefund.IsZero() && cardRefund.IsZero() && delta.Amount.IsPositive() {
		// Fully comped booking. Nothing to return, the dates and total still
		// move.
		logger.WarnContext(ctx, "refund due on booking with no recorded payments",
			"booking_id", booking.ID, "refund", delta.Amount.StringFixed(2))
	}

	if walletRefund.IsPositive() {
		cents := pricing.ToCents(walletRefund)
		if err := s.wallets.Credit(ctx, booking.RenterID, cents); err != nil {
			return nil, fmt.Errorf("crediting wallet refund for booking %d: %w", booking.ID, err)
		}
		s.appendLedger(ctx, &domain.WalletTransaction{
			UserID:      booking.RenterID,
			AmountCents: cents,
			Type:        domain.WalletTransactionCredit,
			Source:      domain.SourceBookingModificationRefund,
			Description: fmt.Sprintf("Rimborso per modifica prenotazione #%d", booking.ID),
			BookingID:   &booking.ID,
		})
	}

	var refundRef *string
	if cardRefund.IsPositive() {
		if booking.ProcessorChargeRef == nil {
			logger.ErrorContext(ctx, "card refund owed but booking has no charge reference",
				"booking_id", booking.ID, "amount", cardRefund.StringFixed(2))
			_ = s.email.SendAdminAlert("Rimborso carta non eseguibile",
				fmt.Sprintf("La prenotazione #%d deve %s di rimborso carta ma non ha un riferimento di addebito.",
					booking.ID, cardRefund.StringFixed(2)))
		} else {
			ref, err := s.proc.CreateRefund(ctx, *booking.ProcessorChargeRef, pricing.ToCents(cardRefund))
			if err != nil {
				// The wallet half is already settled. Record the card half as
				// owed and let the daily report chase it.
				logger.ErrorContext(ctx, "card refund failed, recorded as owed",
					"booking_id", booking.ID, "amount", cardRefund.StringFixed(2), "error", err)
				_ = s.email.SendAdminAlert("Rimborso carta fallito",
					fmt.Sprintf("Rimborso di %s per la prenotazione #%d non riuscito: %v",
						cardRefund.StringFixed(2), booking.ID, err))
			} else {
				refundRef = &ref
			}
		}
	}

	m := &domain.BookingModification{
		BookingID:           booking.ID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		AmountTotal:         delta.NewTotal,
		WalletUsedCents:     booking.WalletUsedCents,
		CardPaidCents:       booking.CardPaidCents,
		RefundedWalletCents: booking.RefundedWalletCents + pricing.ToCents(walletRefund),
		RefundedCardCents:   booking.RefundedCardCents + pricing.ToCents(cardRefund),
		ProcessorRefundRef:  refundRef,
	}
	if err := s.bookings.ApplyModification(ctx, m, booking.Version); err != nil {
		return nil, err
	}

	_ = s.notifier.SendBookingSystemMessage(ctx, booking, fmt.Sprintf(
		"Le date della prenotazione #%d sono state modificate: %s - %s. Rimborso di %s in corso.",
		booking.ID, req.StartDate, req.EndDate, delta.Amount.StringFixed(2)))
	s.notifyRenterByEmail(ctx, booking, delta.Amount, true)

	logger.InfoContext(ctx, "booking modification refunded",
		"booking_id", booking.ID,
		"wallet_refund", walletRefund.StringFixed(2),
		"card_refund", cardRefund.StringFixed(2))
	return &ModificationResult{
		Success:         true,
		PriceDifference: delta.PriceDifference,
		NewTotal:        delta.NewTotal,
		RefundedWallet:  walletRefund,
		RefundedCard:    cardRefund,
	}, nil
}

func (s *bookingService) applyWalletSupplement(ctx context.Context, booking *domain.Booking, req *ModifyBookingRequest, delta pricing.Delta) (*ModificationResult, error) {
	cents := pricing.ToCents(delta.Amount)

	balance, err := s.wallets.GetBalance(ctx, booking.RenterID)
	if err != nil {
		return nil, err
	}
	if balance < cents {
		return nil, ErrInsufficientFunds
	}

	if err := s.wallets.Debit(ctx, booking.RenterID, cents); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, ErrInsufficientFunds
		}
		return nil, fmt.Errorf("debiting wallet supplement for booking %d: %w", booking.ID, err)
	}
	s.appendLedger(ctx, &domain.WalletTransaction{
		UserID:      booking.RenterID,
		AmountCents: -cents,
		Type:        domain.WalletTransactionDebit,
		Source:      domain.SourceBookingModificationCharge,
		Description: fmt.Sprintf("Addebito per modifica prenotazione #%d", booking.ID),
		BookingID:   &booking.ID,
	})

	// The hubber is credited the same amount the renter was debited. Card
	// supplements reach the hubber through the processor payout instead, so
	// only the wallet path moves money internally.
	if err := s.wallets.Credit(ctx, booking.HubberID, cents); err != nil {
		logger.ErrorContext(ctx, "hubber credit failed after renter debit",
			"booking_id", booking.ID, "hubber_id", booking.HubberID, "error", err)
		_ = s.email.SendAdminAlert("Accredito hubber fallito",
			fmt.Sprintf("Accredito di %s all'hubber %d per la prenotazione #%d non riuscito: %v",
				delta.Amount.StringFixed(2), booking.HubberID, booking.ID, err))
		return nil, fmt.Errorf("crediting hubber for booking %d: %w", booking.ID, err)
	}
	s.appendLedger(ctx, &domain.WalletTransaction{
		UserID:      booking.HubberID,
		AmountCents: cents,
		Type:        domain.WalletTransactionCredit,
		Source:      domain.SourceBookingModificationIncome,
		Description: fmt.Sprintf("Integrazione per modifica prenotazione #%d", booking.ID),
		BookingID:   &booking.ID,
	})

	m := &domain.BookingModification{
		BookingID:           booking.ID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		AmountTotal:         delta.NewTotal,
		WalletUsedCents:     booking.WalletUsedCents + cents,
		CardPaidCents:       booking.CardPaidCents,
		RefundedWalletCents: booking.RefundedWalletCents,
		RefundedCardCents:   booking.RefundedCardCents,
	}
	if err := s.bookings.ApplyModification(ctx, m, booking.Version); err != nil {
		return nil, err
	}

	_ = s.notifier.SendBookingSystemMessage(ctx, booking, fmt.Sprintf(
		"Le date della prenotazione #%d sono state modificate: %s - %s. Addebitato %s dal portafoglio.",
		booking.ID, req.StartDate, req.EndDate, delta.Amount.StringFixed(2)))
	s.notifyRenterByEmail(ctx, booking, delta.Amount, false)

	logger.InfoContext(ctx, "booking modification paid from wallet",
		"booking_id", booking.ID, "amount", delta.Amount.StringFixed(2))
	return &ModificationResult{
		Success:         true,
		PriceDifference: delta.PriceDifference,
		NewTotal:        delta.NewTotal,
		PaidWithWallet:  delta.Amount,
	}, nil
}

// applyCardSupplement opens the two-phase card flow: create the charge intent,
// persist the pending state keyed by the intent reference, and hand the client
// secret back. Nothing on the booking itself changes until the processor
// confirms the charge.
func (s *bookingService) applyCardSupplement(ctx context.Context, booking *domain.Booking, req *ModifyBookingRequest, delta pricing.Delta) (*ModificationResult, error) {
	cents := pricing.ToCents(delta.Amount)
	intent, err := s.proc.CreateChargeIntent(ctx, cents, s.currency, map[string]string{
		"type":       processor.EventTypeBookingModification,
		"booking_id": strconv.FormatInt(booking.ID, 10),
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
	})
	if err != nil {
		return nil, fmt.Errorf("creating charge intent for booking %d: %w", booking.ID, err)
	}

	pm := &domain.PendingModification{
		IntentRef:       intent.Ref,
		BookingID:       booking.ID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		PriceDifference: delta.PriceDifference,
		NewTotal:        delta.NewTotal,
		Status:          domain.PendingModificationPending,
	}
	if err := s.pending.Create(ctx, pm); err != nil {
		return nil, fmt.Errorf("persisting pending modification for booking %d: %w", booking.ID, err)
	}

	logger.InfoContext(ctx, "booking modification awaiting card payment",
		"booking_id", booking.ID, "intent_ref", intent.Ref, "amount", delta.Amount.StringFixed(2))
	return &ModificationResult{
		Success:         true,
		PriceDifference: delta.PriceDifference,
		NewTotal:        delta.NewTotal,
		ChargedExtra:    delta.Amount,
		RequiresPayment: true,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

// appendLedger records a wallet mutation that has already happened. The
// mutation is irreversible at this point so a ledger failure is alerted, not
// propagated.
func (s *bookingService) appendLedger(ctx context.Context, tx *domain.WalletTransaction) {
	if err := s.wallets.CreateTransaction(ctx, tx); err != nil {
		logger.ErrorContext(ctx, "wallet ledger append failed",
			"user_id", tx.UserID, "amount_cents", tx.AmountCents, "error", err)
		_ = s.email.SendAdminAlert("Registrazione movimento portafoglio fallita",
			fmt.Sprintf("Movimento di %d centesimi per l'utente %d non registrato: %v",
				tx.AmountCents, tx.UserID, err))
	}
}

func (s *bookingService) notifyRenterByEmail(ctx context.Context, booking *domain.Booking, amount decimal.Decimal, refund bool) {
	renter, err := s.users.GetByID(ctx, booking.RenterID)
	if err != nil {
		logger.WarnContext(ctx, "could not load renter for email notification",
			"booking_id", booking.ID, "renter_id", booking.RenterID, "error", err)
		return
	}
	if refund {
		_ = s.email.SendRefundNotification(renter.Email, booking.ID, amount)
	} else {
		_ = s.email.SendChargeNotification(renter.Email, booking.ID, amount)
	}
}
