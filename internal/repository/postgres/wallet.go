package postgres

import (
	"context"
	"database/sql"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type walletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) repository.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Get(ctx context.Context, userID int64) (*domain.Wallet, error) {
	w := &domain.Wallet{UserID: userID}
	query := `SELECT balance_cents, refund_balance_cents, referral_balance_cents FROM wallets WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&w.BalanceCents, &w.RefundBalanceCents, &w.ReferralBalanceCents)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *walletRepository) GetBalance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	query := `SELECT COALESCE(balance_cents, 0) FROM wallets WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, repository.ErrNotFound
	}
	return balance, err
}

func (r *walletRepository) Credit(ctx context.Context, userID int64, amountCents int64) error {
	query := `UPDATE wallets SET balance_cents = balance_cents + $2, updated_on = now() WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, amountCents)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *walletRepository) Debit(ctx context.Context, userID int64, amountCents int64) error {
	// The balance guard is part of the statement so the check and the
	// mutation cannot be split by a concurrent writer.
	query := `UPDATE wallets SET balance_cents = balance_cents - $2, updated_on = now()
	          WHERE user_id = $1 AND balance_cents >= $2`
	res, err := r.db.ExecContext(ctx, query, userID, amountCents)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// The guard rejects both a short balance and an absent wallet row.
		// Tell them apart so callers and logs don't report a missing wallet
		// as insufficient funds.
		var exists bool
		err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM wallets WHERE user_id = $1)`, userID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return repository.ErrNotFound
		}
		return repository.ErrInsufficientBalance
	}
	return nil
}

func (r *walletRepository) CreateTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	query := `INSERT INTO wallet_transactions (user_id, amount_cents, type, source, description, booking_id, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, now()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, tx.UserID, tx.AmountCents, tx.Type, tx.Source, tx.Description, tx.BookingID).
		Scan(&tx.ID, &tx.CreatedOn)
}

func (r *walletRepository) ListTransactions(ctx context.Context, userID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, user_id, amount_cents, type, source, COALESCE(description, ''), booking_id, created_on
	          FROM wallet_transactions WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.WalletTransaction
	for rows.Next() {
		var tx domain.WalletTransaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AmountCents, &tx.Type, &tx.Source, &tx.Description, &tx.BookingID, &tx.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM wallet_transactions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}
