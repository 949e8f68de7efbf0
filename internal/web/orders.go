package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"Storefront/internal/checkout"
	"Storefront/internal/payment"
	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

// minChargeDollars is the smallest amount the gateway will accept.
var minChargeDollars = decimal.RequireFromString("0.50")

type paymentIntentReq struct {
	Amount   json.Number `json:"amount"`
	Currency string      `json:"currency"`
}

func (a *App) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	var req paymentIntentReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil || amount.LessThan(minChargeDollars) {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid amount", nil)
		return
	}
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	if a.Payments == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Payment processing is not configured. Please contact support.", nil)
		return
	}

	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	intent, err := a.Payments.CreateIntent(r.Context(), cents, currency, map[string]string{
		"userId": strconv.Itoa(uid),
	})
	if err != nil {
		if a.Log != nil {
			a.Log.Error("create payment intent failed", zap.Error(err), zap.Int("user_id", uid))
		}
		if errors.Is(err, payment.ErrDeclined) {
			kit.WriteError(w, r, http.StatusBadRequest, "Error creating payment intent", nil)
			return
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "Error creating payment intent", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, map[string]string{"clientSecret": intent.ClientSecret})
}

type createOrderReq struct {
	Total           string                `json:"total"`
	Status          string                `json:"status"`
	ShippingAddress store.ShippingAddress `json:"shippingAddress"`
	PaymentIntentID string                `json:"stripePaymentIntentId"`
}

func (a *App) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	var req createOrderReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = store.StatusPending
	}

	ord, err := a.Checkout.PlaceOrder(r.Context(), uid, checkout.PlaceOrderInput{
		Total:           req.Total,
		Status:          req.Status,
		ShippingAddress: req.ShippingAddress,
		PaymentIntentID: req.PaymentIntentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			kit.WriteError(w, r, http.StatusBadRequest, "Cart is empty", nil)
		case errors.Is(err, checkout.ErrBadTotal), errors.Is(err, checkout.ErrBadStatus):
			kit.WriteError(w, r, http.StatusBadRequest, err.Error(), nil)
		default:
			a.serverError(w, r, "place order", err)
		}
		return
	}

	kit.WriteJSON(w, http.StatusOK, ord)
}

func (a *App) handleOrders(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	orders, err := a.Store.UserOrders(r.Context(), uid)
	if err != nil {
		a.serverError(w, r, "list orders", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, orders)
}

func (a *App) handleOrder(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", nil)
		return
	}

	ord, ok, err := a.Store.OrderByID(r.Context(), id)
	if err != nil {
		a.serverError(w, r, "get order", err)
		return
	}
	// Not owned reads the same as absent; order ids are not probeable.
	if !ok || ord.UserID != uid {
		kit.WriteError(w, r, http.StatusNotFound, "Order not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, ord)
}
