package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

func (a *App) handleCart(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	lines, err := a.Store.CartItems(r.Context(), uid)
	if err != nil {
		// ErrMissingProduct included: a dangling cart row is data
		// corruption, not something to paper over.
		a.serverError(w, r, "list cart items", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, lines)
}

type addToCartReq struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (a *App) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	var req addToCartReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "productId and positive quantity required", nil)
		return
	}

	if _, ok, err := a.Store.ProductByID(r.Context(), req.ProductID); err != nil {
		a.serverError(w, r, "get product", err)
		return
	} else if !ok {
		kit.WriteError(w, r, http.StatusBadRequest, "Product not found", map[string]any{"productId": req.ProductID})
		return
	}

	item, err := a.Store.AddToCart(r.Context(), uid, req.ProductID, req.Quantity)
	if err != nil {
		a.serverError(w, r, "add to cart", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, item)
}

type updateCartReq struct {
	Quantity int `json:"quantity"`
}

func (a *App) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid cart item id", nil)
		return
	}

	var req updateCartReq
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	// Quantity zero is not a silent clamp: removing the item is a
	// different request.
	if req.Quantity < 1 {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid quantity", nil)
		return
	}

	item, err := a.Store.UpdateCartItem(r.Context(), id, req.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			kit.WriteError(w, r, http.StatusBadRequest, "Cart item not found", nil)
			return
		}
		a.serverError(w, r, "update cart item", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, item)
}

func (a *App) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid cart item id", nil)
		return
	}

	if err := a.Store.RemoveFromCart(r.Context(), id); err != nil {
		a.serverError(w, r, "remove from cart", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}

func (a *App) handleClearCart(w http.ResponseWriter, r *http.Request) {
	uid, _ := userFromContext(r.Context())

	if err := a.Store.ClearCart(r.Context(), uid); err != nil {
		a.serverError(w, r, "clear cart", err)
		return
	}
	kit.WriteJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}
