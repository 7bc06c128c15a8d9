package processor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateChargeIntent(t *testing.T) {
	var gotAuth, gotIdem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotIdem = r.Header.Get("Idempotency-Key")

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "11000", r.PostForm.Get("amount"))
		assert.Equal(t, "eur", r.PostForm.Get("currency"))
		assert.Equal(t, "booking_modification", r.PostForm.Get("metadata[type]"))
		assert.Equal(t, "7", r.PostForm.Get("metadata[booking_id]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_1","client_secret":"secret_1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	intent, err := client.CreateChargeIntent(context.Background(), 11000, "eur", map[string]string{
		"type":       EventTypeBookingModification,
		"booking_id": "7",
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.Ref)
	assert.Equal(t, "secret_1", intent.ClientSecret)
	assert.Equal(t, "Bearer sk_test", gotAuth)
	assert.NotEmpty(t, gotIdem, "every mutating call must carry an idempotency key")
}

func TestClient_CreateRefund(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/refunds", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "ch_123", r.PostForm.Get("charge"))
		assert.Equal(t, "2750", r.PostForm.Get("amount"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"re_1"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	ref, err := client.CreateRefund(context.Background(), "ch_123", 2750)

	require.NoError(t, err)
	assert.Equal(t, "re_1", ref)
}

func TestClient_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"card_declined"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.CreateChargeIntent(context.Background(), 100, "eur", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
	assert.Contains(t, err.Error(), "card_declined")
}
