package postgres

import (
	"context"
	"database/sql"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type conversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) GetOrCreate(ctx context.Context, bookingID, renterID, hubberID int64) (*domain.Conversation, error) {
	conv := &domain.Conversation{BookingID: bookingID, RenterID: renterID, HubberID: hubberID}
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM conversations WHERE booking_id = $1`, bookingID).Scan(&conv.ID)
	if err == nil {
		return conv, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO conversations (booking_id, renter_id, hubber_id) VALUES ($1, $2, $3) RETURNING id`,
		bookingID, renterID, hubberID).Scan(&conv.ID)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (r *conversationRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `INSERT INTO messages (conversation_id, sender_id, body, created_on)
	          VALUES ($1, $2, $3, now()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, msg.ConversationID, msg.SenderID, msg.Body).
		Scan(&msg.ID, &msg.CreatedOn)
}
