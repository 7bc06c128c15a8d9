package service

import (
	"context"
	"errors"
	"fmt"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/logger"
	"renthub-backend/internal/pricing"
	"renthub-backend/internal/processor"
	"renthub-backend/internal/repository"
)

type paymentEventService struct {
	bookings repository.BookingRepository
	pending  repository.PendingModificationRepository
	notifier NotifierService
	email    EmailService
}

func NewPaymentEventService(
	bookings repository.BookingRepository,
	pending repository.PendingModificationRepository,
	notifier NotifierService,
	email EmailService,
) PaymentEventService {
	return &paymentEventService{
		bookings: bookings,
		pending:  pending,
		notifier: notifier,
		email:    email,
	}
}

// HandleChargeSucceeded completes a card-paid modification. Idempotency hangs
// on the pending row claim: the charge-intent reference identifies the
// modification, and only the first delivery gets the row.
func (s *paymentEventService) HandleChargeSucceeded(ctx context.Context, event *processor.Event) error {
	if event.Type != processor.EventTypeBookingModification {
		logger.DebugContext(ctx, "ignoring payment event of unrelated type",
			"event_id", event.ID, "type", event.Type)
		return nil
	}

	pm, err := s.pending.Claim(ctx, event.ChargeRef)
	if errors.Is(err, repository.ErrNotFound) {
		// Duplicate delivery, or an intent that was expired before the charge
		// landed. Either way there is nothing left to apply.
		logger.InfoContext(ctx, "no pending modification to claim, acknowledging",
			"event_id", event.ID, "charge_ref", event.ChargeRef)
		return nil
	}
	if err != nil {
		return fmt.Errorf("claiming pending modification %s: %w", event.ChargeRef, err)
	}

	booking, err := s.bookings.GetByID(ctx, pm.BookingID)
	if errors.Is(err, repository.ErrNotFound) {
		// The money moved but the booking is gone. This needs a human; the
		// event itself must still be acknowledged or the processor will retry
		// forever against a claimed row.
		logger.ErrorContext(ctx, "charge succeeded for missing booking",
			"booking_id", pm.BookingID, "charge_ref", event.ChargeRef)
		_ = s.email.SendAdminAlert("Pagamento ricevuto per prenotazione inesistente",
			fmt.Sprintf("Addebito %s confermato ma la prenotazione #%d non esiste.",
				event.ChargeRef, pm.BookingID))
		return nil
	}
	if err != nil {
		// Transient failure after the claim: put the row back so the
		// redelivery can claim it again, otherwise the paid modification is
		// lost for good.
		s.releaseClaim(ctx, pm.IntentRef)
		return err
	}

	m := &domain.BookingModification{
		BookingID:           booking.ID,
		StartDate:           pm.StartDate,
		EndDate:             pm.EndDate,
		AmountTotal:         pm.NewTotal,
		WalletUsedCents:     booking.WalletUsedCents,
		CardPaidCents:       booking.CardPaidCents + pricing.ToCents(pm.PriceDifference),
		RefundedWalletCents: booking.RefundedWalletCents,
		RefundedCardCents:   booking.RefundedCardCents,
	}
	if err := s.bookings.ApplyModification(ctx, m, booking.Version); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			// The booking moved underneath us between read and write. Reload
			// once and retry; a second conflict goes back to the processor as
			// a retryable failure.
			booking, err = s.bookings.GetByID(ctx, pm.BookingID)
			if err != nil {
				s.releaseClaim(ctx, pm.IntentRef)
				return err
			}
			m.WalletUsedCents = booking.WalletUsedCents
			m.CardPaidCents = booking.CardPaidCents + pricing.ToCents(pm.PriceDifference)
			m.RefundedWalletCents = booking.RefundedWalletCents
			m.RefundedCardCents = booking.RefundedCardCents
			if err := s.bookings.ApplyModification(ctx, m, booking.Version); err != nil {
				s.releaseClaim(ctx, pm.IntentRef)
				return fmt.Errorf("applying paid modification to booking %d: %w", booking.ID, err)
			}
		} else {
			s.releaseClaim(ctx, pm.IntentRef)
			return fmt.Errorf("applying paid modification to booking %d: %w", booking.ID, err)
		}
	}

	_ = s.notifier.SendBookingSystemMessage(ctx, booking, fmt.Sprintf(
		"Pagamento ricevuto. Le date della prenotazione #%d sono state aggiornate: %s - %s.",
		booking.ID, pm.StartDate, pm.EndDate))

	logger.InfoContext(ctx, "card-paid booking modification applied",
		"booking_id", booking.ID, "charge_ref", event.ChargeRef,
		"amount", pm.PriceDifference.StringFixed(2))
	return nil
}

// releaseClaim undoes a claim whose mutation never landed. If even the
// release fails the row stays applied and the redelivery will be acked
// empty-handed, so that case is alerted for manual follow-up.
func (s *paymentEventService) releaseClaim(ctx context.Context, intentRef string) {
	if err := s.pending.Release(ctx, intentRef); err != nil {
		logger.ErrorContext(ctx, "could not release claimed modification",
			"intent_ref", intentRef, "error", err)
		_ = s.email.SendAdminAlert("Modifica prenotazione bloccata",
			fmt.Sprintf("L'addebito %s è stato confermato ma la modifica non è stata applicata e non può essere riconsegnata.", intentRef))
	}
}
