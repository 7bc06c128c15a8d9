package postgres

import (
	"database/sql"

	"renthub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.WalletRepository
	repository.PendingModificationRepository
	repository.ConversationRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                            db,
		BookingRepository:             NewBookingRepository(db),
		WalletRepository:              NewWalletRepository(db),
		PendingModificationRepository: NewPendingModificationRepository(db),
		ConversationRepository:        NewConversationRepository(db),
		UserRepository:                NewUserRepository(db),
	}
}
