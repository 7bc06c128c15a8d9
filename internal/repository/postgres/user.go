package postgres

import (
	"context"
	"database/sql"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, name, password_hash, role, created_on FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, name, password_hash, role, created_on FROM users WHERE email = $1`, email)
}

func (r *userRepository) get(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &createdOn)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	return &u, nil
}
