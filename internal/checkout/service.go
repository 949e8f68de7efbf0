// Package checkout turns a user's cart into an immutable order.
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"Storefront/internal/store"
)

var (
	// ErrEmptyCart: an order with no items is meaningless and is never
	// created.
	ErrEmptyCart = errors.New("cart is empty")

	ErrBadTotal  = errors.New("invalid total")
	ErrBadStatus = errors.New("invalid status")
)

// TaxRate is the flat rate the client applies on top of the cart subtotal.
var TaxRate = decimal.NewFromFloat(0.08)

type Service struct {
	Store store.Store
	Log   *zap.Logger
}

// PlaceOrderInput is what the checkout form submits. Total comes from the
// client; the service recomputes it from the cart for comparison but does
// not reject a mismatch.
type PlaceOrderInput struct {
	Total           string
	Status          string
	ShippingAddress store.ShippingAddress
	PaymentIntentID string
}

// PlaceOrder converts the user's current cart into an order. Each order
// item snapshots the product's price at this instant, and the cart is
// cleared in the same store operation that creates the order, so the cart
// ends up empty exactly when the order exists.
func (s *Service) PlaceOrder(ctx context.Context, userID int, in PlaceOrderInput) (store.OrderWithItems, error) {
	total, err := decimal.NewFromString(in.Total)
	if err != nil || total.IsNegative() {
		return store.OrderWithItems{}, ErrBadTotal
	}
	if !validStatus(in.Status) {
		return store.OrderWithItems{}, fmt.Errorf("%w: %q", ErrBadStatus, in.Status)
	}

	lines, err := s.Store.CartItems(ctx, userID)
	if err != nil {
		return store.OrderWithItems{}, err
	}
	if len(lines) == 0 {
		return store.OrderWithItems{}, ErrEmptyCart
	}

	items := make([]store.NewOrderItem, 0, len(lines))
	subtotal := decimal.Zero
	for _, line := range lines {
		price, err := decimal.NewFromString(line.Product.Price)
		if err != nil {
			return store.OrderWithItems{}, fmt.Errorf("product %d price %q: %w", line.Product.ID, line.Product.Price, err)
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		items = append(items, store.NewOrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
	}

	// The client-supplied total is trusted as-is, but a drift from the
	// server-side figure is worth a log line.
	expected := subtotal.Add(subtotal.Mul(TaxRate)).Round(2)
	if s.Log != nil && !total.Equal(expected) {
		s.Log.Warn("client total differs from cart total",
			zap.Int("user_id", userID),
			zap.String("client_total", total.String()),
			zap.String("expected_total", expected.String()),
		)
	}

	ord, created, err := s.Store.CreateOrderWithItems(ctx, store.NewOrder{
		UserID:          userID,
		Total:           in.Total,
		Status:          in.Status,
		ShippingAddress: in.ShippingAddress,
		PaymentIntentID: in.PaymentIntentID,
	}, items)
	if err != nil {
		return store.OrderWithItems{}, err
	}

	out := store.OrderWithItems{Order: ord, Items: make([]store.OrderLine, 0, len(created))}
	for i, it := range created {
		out.Items = append(out.Items, store.OrderLine{OrderItem: it, Product: lines[i].Product})
	}
	return out, nil
}

func validStatus(status string) bool {
	switch status {
	case store.StatusPending, store.StatusCompleted, store.StatusShipped, store.StatusCancelled:
		return true
	}
	return false
}
