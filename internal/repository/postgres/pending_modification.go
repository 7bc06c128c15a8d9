package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type pendingModificationRepository struct {
	db *sql.DB
}

func NewPendingModificationRepository(db *sql.DB) repository.PendingModificationRepository {
	return &pendingModificationRepository{db: db}
}

func (r *pendingModificationRepository) Create(ctx context.Context, pm *domain.PendingModification) error {
	query := `INSERT INTO pending_modifications
	          (intent_ref, booking_id, start_date, end_date, price_difference, new_total, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, now()) RETURNING created_on`
	return r.db.QueryRowContext(ctx, query,
		pm.IntentRef, pm.BookingID, pm.StartDate, pm.EndDate,
		pm.PriceDifference.StringFixed(2), pm.NewTotal.StringFixed(2), pm.Status).
		Scan(&pm.CreatedOn)
}

func (r *pendingModificationRepository) Claim(ctx context.Context, intentRef string) (*domain.PendingModification, error) {
	// Flipping the status and reading the row in one statement makes the
	// claim atomic: duplicate deliveries race on the WHERE clause and all
	// but one come back empty.
	query := `UPDATE pending_modifications
	          SET status = 'applied', applied_on = now()
	          WHERE intent_ref = $1 AND status = 'pending'
	          RETURNING intent_ref, booking_id, start_date, end_date, price_difference, new_total, status, created_on, applied_on`
	var pm domain.PendingModification
	var startDate, endDate time.Time
	var priceDifference, newTotal string
	err := r.db.QueryRowContext(ctx, query, intentRef).Scan(
		&pm.IntentRef, &pm.BookingID, &startDate, &endDate,
		&priceDifference, &newTotal, &pm.Status, &pm.CreatedOn, &pm.AppliedOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	pm.StartDate = startDate.Format("2006-01-02")
	pm.EndDate = endDate.Format("2006-01-02")
	if pm.PriceDifference, err = decimal.NewFromString(priceDifference); err != nil {
		return nil, err
	}
	if pm.NewTotal, err = decimal.NewFromString(newTotal); err != nil {
		return nil, err
	}
	return &pm, nil
}

func (r *pendingModificationRepository) Release(ctx context.Context, intentRef string) error {
	query := `UPDATE pending_modifications SET status = 'pending', applied_on = NULL
	          WHERE intent_ref = $1 AND status = 'applied'`
	_, err := r.db.ExecContext(ctx, query, intentRef)
	return err
}

func (r *pendingModificationRepository) ListStale(ctx context.Context, olderThan time.Time) ([]domain.PendingModification, error) {
	query := `SELECT intent_ref, booking_id, start_date, end_date, price_difference, new_total, status, created_on, applied_on
	          FROM pending_modifications WHERE status = 'pending' AND created_on < $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pms []domain.PendingModification
	for rows.Next() {
		var pm domain.PendingModification
		var startDate, endDate time.Time
		var priceDifference, newTotal string
		if err := rows.Scan(&pm.IntentRef, &pm.BookingID, &startDate, &endDate,
			&priceDifference, &newTotal, &pm.Status, &pm.CreatedOn, &pm.AppliedOn); err != nil {
			return nil, err
		}
		pm.StartDate = startDate.Format("2006-01-02")
		pm.EndDate = endDate.Format("2006-01-02")
		if pm.PriceDifference, err = decimal.NewFromString(priceDifference); err != nil {
			return nil, err
		}
		if pm.NewTotal, err = decimal.NewFromString(newTotal); err != nil {
			return nil, err
		}
		pms = append(pms, pm)
	}
	return pms, rows.Err()
}

func (r *pendingModificationRepository) MarkExpired(ctx context.Context, intentRef string) error {
	query := `UPDATE pending_modifications SET status = 'expired' WHERE intent_ref = $1 AND status = 'pending'`
	_, err := r.db.ExecContext(ctx, query, intentRef)
	return err
}
