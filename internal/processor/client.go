package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"renthub-backend/internal/logger"
)

// Client talks to the payment gateway over HTTP with bearer-token auth and
// form-encoded bodies. Every mutating request carries a fresh idempotency key
// so a retried HTTP call cannot double-charge.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) CreateChargeIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (*ChargeIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
	}
	logger.ExternalServiceCall("processor", "CreateChargeIntent", "amount_cents", amountCents)
	err := c.post(ctx, "/v1/payment_intents", form, &out)
	logger.ExternalServiceResult("processor", "CreateChargeIntent", err)
	if err != nil {
		return nil, err
	}
	return &ChargeIntent{Ref: out.ID, ClientSecret: out.ClientSecret}, nil
}

func (c *Client) CreateRefund(ctx context.Context, chargeRef string, amountCents int64) (string, error) {
	form := url.Values{}
	form.Set("charge", chargeRef)
	form.Set("amount", strconv.FormatInt(amountCents, 10))

	var out struct {
		ID string `json:"id"`
	}
	logger.ExternalServiceCall("processor", "CreateRefund", "charge", chargeRef, "amount_cents", amountCents)
	err := c.post(ctx, "/v1/refunds", form, &out)
	logger.ExternalServiceResult("processor", "CreateRefund", err)
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("processor request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("processor returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}
