package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `b.id, b.listing_id, b.renter_id, b.hubber_id, b.start_date, b.end_date,
	b.amount_total, b.wallet_used_cents, b.card_paid_cents, b.refunded_wallet_cents, b.refunded_card_cents,
	b.processor_charge_ref, b.processor_refund_ref, b.status, b.version,
	l.price_per_unit, l.pricing_unit, b.created_on, b.updated_on`

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	          FROM bookings b JOIN listings l ON l.id = b.listing_id
	          WHERE b.id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	return b, err
}

func (r *bookingRepository) ApplyModification(ctx context.Context, m *domain.BookingModification, expectedVersion int32) error {
	query := `UPDATE bookings
	          SET start_date = $2, end_date = $3, amount_total = $4,
	              wallet_used_cents = $5, card_paid_cents = $6,
	              refunded_wallet_cents = $7, refunded_card_cents = $8,
	              processor_refund_ref = COALESCE($9, processor_refund_ref),
	              version = version + 1, updated_on = now()
	          WHERE id = $1 AND version = $10`
	res, err := r.db.ExecContext(ctx, query,
		m.BookingID, m.StartDate, m.EndDate, m.AmountTotal.StringFixed(2),
		m.WalletUsedCents, m.CardPaidCents,
		m.RefundedWalletCents, m.RefundedCardCents,
		m.ProcessorRefundRef, expectedVersion)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrVersionConflict
	}
	return nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterID int64, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + `
	          FROM bookings b JOIN listings l ON l.id = b.listing_id
	          WHERE b.renter_id = $1 ORDER BY b.start_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, renterID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings WHERE renter_id = $1`, renterID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListFailedCardRefunds(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	          FROM bookings b JOIN listings l ON l.id = b.listing_id
	          WHERE b.refunded_card_cents > 0 AND b.processor_refund_ref IS NULL
	          ORDER BY b.updated_on`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var startDate, endDate, createdOn, updatedOn time.Time
	var amountTotal, pricePerUnit string
	err := row.Scan(&b.ID, &b.ListingID, &b.RenterID, &b.HubberID, &startDate, &endDate,
		&amountTotal, &b.WalletUsedCents, &b.CardPaidCents, &b.RefundedWalletCents, &b.RefundedCardCents,
		&b.ProcessorChargeRef, &b.ProcessorRefundRef, &b.Status, &b.Version,
		&pricePerUnit, &b.PricingUnit, &createdOn, &updatedOn)
	if err != nil {
		return nil, err
	}
	b.StartDate = startDate.Format("2006-01-02")
	b.EndDate = endDate.Format("2006-01-02")
	b.CreatedOn = createdOn.Format("2006-01-02")
	b.UpdatedOn = updatedOn.Format("2006-01-02")
	if b.AmountTotal, err = decimal.NewFromString(amountTotal); err != nil {
		return nil, err
	}
	if b.PricePerUnit, err = decimal.NewFromString(pricePerUnit); err != nil {
		return nil, err
	}
	return &b, nil
}
