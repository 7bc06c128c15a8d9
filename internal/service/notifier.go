package service

import (
	"context"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type notifierService struct {
	conversations repository.ConversationRepository
}

func NewNotifierService(conversations repository.ConversationRepository) NotifierService {
	return &notifierService{conversations: conversations}
}

// SendBookingSystemMessage drops a system-authored message into the booking's
// conversation, creating the thread on first use.
func (s *notifierService) SendBookingSystemMessage(ctx context.Context, booking *domain.Booking, body string) error {
	conv, err := s.conversations.GetOrCreate(ctx, booking.ID, booking.RenterID, booking.HubberID)
	if err != nil {
		return err
	}
	return s.conversations.CreateMessage(ctx, &domain.Message{
		ConversationID: conv.ID,
		SenderID:       domain.SystemSenderID,
		Body:           body,
	})
}
