package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"renthub-backend/internal/logger"
)

// pendingModificationTTL is how long a card supplement may sit unpaid before
// its pending row is retired. An event arriving after expiry finds nothing to
// claim and is acknowledged without effect.
const pendingModificationTTL = 24 * time.Hour

// ExpireStalePendingModifications retires pending card supplements whose
// charge never completed.
func (jr *JobRunner) ExpireStalePendingModifications() {
	jr.runWithRecovery("ExpireStalePendingModifications", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-pendingModificationTTL)

		stale, err := jr.store.PendingModificationRepository.ListStale(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list stale pending modifications", "error", err)
			return
		}
		if len(stale) == 0 {
			logger.Info("No stale pending modifications")
			return
		}

		expired := 0
		for _, pm := range stale {
			if err := jr.store.PendingModificationRepository.MarkExpired(ctx, pm.IntentRef); err != nil {
				logger.Error("Failed to expire pending modification",
					"intent_ref", pm.IntentRef, "booking_id", pm.BookingID, "error", err)
				continue
			}
			expired++
		}
		logger.Info("Expired stale pending modifications", "count", expired)
	})
}

// ReportFailedCardRefunds mails the operations inbox the bookings that still
// owe a card refund with no processor reference to show for it.
func (jr *JobRunner) ReportFailedCardRefunds() {
	jr.runWithRecovery("ReportFailedCardRefunds", func() {
		ctx := context.Background()

		bookings, err := jr.store.BookingRepository.ListFailedCardRefunds(ctx)
		if err != nil {
			logger.Error("Failed to list bookings with failed card refunds", "error", err)
			return
		}
		if len(bookings) == 0 {
			logger.Info("No failed card refunds to report")
			return
		}

		var sb strings.Builder
		sb.WriteString("Le seguenti prenotazioni hanno un rimborso carta registrato ma nessun riferimento dal processore:\n\n")
		for _, b := range bookings {
			sb.WriteString(fmt.Sprintf("- Prenotazione #%d: %d centesimi dovuti al renter %d\n",
				b.ID, b.RefundedCardCents, b.RenterID))
		}

		if err := jr.services.Email.SendAdminAlert("Rimborsi carta da verificare", sb.String()); err != nil {
			logger.Error("Failed to send failed-refund report", "error", err)
			return
		}
		logger.Info("Reported failed card refunds", "count", len(bookings))
	})
}
