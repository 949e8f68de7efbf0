package payment_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Storefront/internal/payment"
)

func TestCreateIntent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Errorf("path=%s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_123" {
			t.Errorf("authorization=%q", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("amount"); got != "48597" {
			t.Errorf("amount=%q", got)
		}
		if got := r.PostForm.Get("currency"); got != "usd" {
			t.Errorf("currency=%q", got)
		}
		if got := r.PostForm.Get("metadata[userId]"); got != "7" {
			t.Errorf("metadata[userId]=%q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"pi_1_secret"}`))
	}))
	t.Cleanup(ts.Close)

	c := payment.NewClient("sk_test_123")
	c.BaseURL = ts.URL

	intent, err := c.CreateIntent(context.Background(), 48597, "usd", map[string]string{"userId": "7"})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	if intent.ID != "pi_1" || intent.ClientSecret != "pi_1_secret" {
		t.Fatalf("intent=%+v", intent)
	}
}

func TestCreateIntent_GatewayRejects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	t.Cleanup(ts.Close)

	c := payment.NewClient("sk_test_123")
	c.BaseURL = ts.URL

	_, err := c.CreateIntent(context.Background(), 100, "usd", nil)
	if !errors.Is(err, payment.ErrDeclined) {
		t.Fatalf("err=%v want ErrDeclined", err)
	}
}

func TestCreateIntent_GatewayDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	c := payment.NewClient("sk_test_123")
	c.BaseURL = ts.URL

	_, err := c.CreateIntent(context.Background(), 100, "usd", nil)
	if !errors.Is(err, payment.ErrUnavailable) {
		t.Fatalf("err=%v want ErrUnavailable", err)
	}
}

func TestCreateIntent_NotConfigured(t *testing.T) {
	var c *payment.Client // NewClient("") returns nil

	_, err := c.CreateIntent(context.Background(), 100, "usd", nil)
	if !errors.Is(err, payment.ErrNotConfigured) {
		t.Fatalf("err=%v want ErrNotConfigured", err)
	}

	if payment.NewClient("") != nil {
		t.Fatalf("NewClient with empty key should be nil")
	}
}
