package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"renthub-backend/internal/logger"
	"renthub-backend/internal/processor"
	"renthub-backend/internal/service"
)

// maxWebhookBody bounds what the endpoint will read from the processor.
const maxWebhookBody = 1 << 16

type WebhookHandler struct {
	events service.PaymentEventService
	secret []byte
}

func NewWebhookHandler(events service.PaymentEventService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{events: events, secret: []byte(webhookSecret)}
}

// HandlePaymentEvent verifies the signature over the raw body before parsing
// anything, then dispatches the event. A handled or duplicate event gets a 200
// so the processor stops redelivering; transient failures get a 500 and a
// retry.
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if !h.verifySignature(body, r.Header.Get("X-Signature")) {
		logger.WarnContext(r.Context(), "payment webhook signature mismatch")
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var event processor.Event
	if err := json.Unmarshal(body, &event); err != nil {
		writeError(w, http.StatusBadRequest, "malformed event")
		return
	}

	if err := h.events.HandleChargeSucceeded(r.Context(), &event); err != nil {
		logger.ErrorContext(r.Context(), "payment event handling failed",
			"event_id", event.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "event not processed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// RegisterWebhookRoutes registers the unauthenticated processor callback
func RegisterWebhookRoutes(router *mux.Router, events service.PaymentEventService, webhookSecret string) {
	handler := NewWebhookHandler(events, webhookSecret)
	router.HandleFunc("/api/v1/webhooks/payment", handler.HandlePaymentEvent).Methods("POST")
}
