package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"renthub-backend/internal/processor"
)

type mockPaymentEventService struct {
	mock.Mock
}

func (m *mockPaymentEventService) HandleChargeSucceeded(ctx context.Context, event *processor.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

const webhookSecret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(webhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postEvent(handler *WebhookHandler, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("X-Signature", signature)
	}
	rec := httptest.NewRecorder()
	handler.HandlePaymentEvent(rec, req)
	return rec
}

func TestWebhookHandler_ValidEvent(t *testing.T) {
	events := new(mockPaymentEventService)
	handler := NewWebhookHandler(events, webhookSecret)

	body := []byte(`{"id":"evt_1","type":"booking_modification","chargeRef":"pi_1","amountCents":11000}`)
	events.On("HandleChargeSucceeded", mock.Anything, mock.MatchedBy(func(e *processor.Event) bool {
		return e.ID == "evt_1" && e.ChargeRef == "pi_1" && e.AmountCents == 11000
	})).Return(nil)

	rec := postEvent(handler, body, sign(body))

	assert.Equal(t, http.StatusOK, rec.Code)
	events.AssertExpectations(t)
}

func TestWebhookHandler_BadSignature(t *testing.T) {
	events := new(mockPaymentEventService)
	handler := NewWebhookHandler(events, webhookSecret)

	body := []byte(`{"id":"evt_1","type":"booking_modification"}`)

	t.Run("wrong signature", func(t *testing.T) {
		rec := postEvent(handler, body, "deadbeef")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing signature", func(t *testing.T) {
		rec := postEvent(handler, body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	events.AssertNotCalled(t, "HandleChargeSucceeded", mock.Anything, mock.Anything)
}

func TestWebhookHandler_TamperedBody(t *testing.T) {
	events := new(mockPaymentEventService)
	handler := NewWebhookHandler(events, webhookSecret)

	body := []byte(`{"id":"evt_1","type":"booking_modification"}`)
	signature := sign(body)
	tampered := []byte(`{"id":"evt_1","type":"booking_modification","amountCents":1}`)

	rec := postEvent(handler, tampered, signature)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	events.AssertNotCalled(t, "HandleChargeSucceeded", mock.Anything, mock.Anything)
}

func TestWebhookHandler_ServiceFailureGetsRetried(t *testing.T) {
	events := new(mockPaymentEventService)
	handler := NewWebhookHandler(events, webhookSecret)

	body := []byte(`{"id":"evt_1","type":"booking_modification","chargeRef":"pi_1"}`)
	events.On("HandleChargeSucceeded", mock.Anything, mock.Anything).Return(errors.New("db down"))

	rec := postEvent(handler, body, sign(body))

	assert.Equal(t, http.StatusInternalServerError, rec.Code,
		"transient failures must return 5xx so the processor redelivers")
}
