package domain

import "time"

// SystemSenderID marks a message authored by the platform rather than a user.
const SystemSenderID int64 = 0

type Conversation struct {
	ID        int64 `json:"id"`
	BookingID int64 `json:"booking_id"`
	RenterID  int64 `json:"renter_id"`
	HubberID  int64 `json:"hubber_id"`
}

type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversation_id"`
	SenderID       int64     `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedOn      time.Time `json:"created_on"`
}
