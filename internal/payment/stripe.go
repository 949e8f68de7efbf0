// Package payment talks to the card-payment gateway. The gateway is an
// opaque external collaborator: this client creates payment intents and
// maps failures onto a small error set, nothing more.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrNotConfigured means no secret key was provided; callers surface
	// this as a client error rather than retrying.
	ErrNotConfigured = errors.New("payment gateway not configured")

	ErrUnavailable = errors.New("payment gateway unavailable")
	ErrDeclined    = errors.New("payment gateway rejected request")
)

const defaultBaseURL = "https://api.stripe.com"

type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type Client struct {
	BaseURL   string
	SecretKey string
	Client    *http.Client
}

// NewClient returns a gateway client, or nil when secretKey is empty.
// Handlers treat a nil client as "payments disabled".
func NewClient(secretKey string) *Client {
	if secretKey == "" {
		return nil
	}
	return &Client{
		BaseURL:   defaultBaseURL,
		SecretKey: secretKey,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreateIntent creates a payment intent for amountCents in the given
// currency. Metadata ends up on the intent for later reconciliation.
func (c *Client) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (Intent, error) {
	if c == nil || c.SecretKey == "" {
		return Intent{}, ErrNotConfigured
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set("metadata["+k+"]", v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.BaseURL, "/")+"/v1/payment_intents",
		strings.NewReader(form.Encode()))
	if err != nil {
		return Intent{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Intent{}, fmt.Errorf("%w: status=%d", ErrDeclined, resp.StatusCode)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Intent{}, fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	var in Intent
	if err := json.NewDecoder(resp.Body).Decode(&in); err != nil {
		return Intent{}, err
	}
	return in, nil
}
