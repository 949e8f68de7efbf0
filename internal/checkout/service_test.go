package checkout_test

import (
	"context"
	"errors"
	"testing"

	"Storefront/internal/checkout"
	"Storefront/internal/store"
)

func newService(t *testing.T) (*checkout.Service, *store.MemStore) {
	t.Helper()

	s := store.NewMemStore()
	if err := store.Seed(context.Background(), s); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return &checkout.Service{Store: s}, s
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)

	_, err := svc.PlaceOrder(ctx, 1, checkout.PlaceOrderInput{
		Total:  "10.00",
		Status: store.StatusCompleted,
	})
	if !errors.Is(err, checkout.ErrEmptyCart) {
		t.Fatalf("err=%v want ErrEmptyCart", err)
	}

	orders, err := s.UserOrders(ctx, 1)
	if err != nil {
		t.Fatalf("user orders: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("orders=%d want=0, no order may exist for an empty cart", len(orders))
	}
}

func TestPlaceOrder_ItemsMatchCartAndCartEndsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)

	if _, err := s.AddToCart(ctx, 1, 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddToCart(ctx, 1, 1, 2); err != nil {
		t.Fatalf("add again: %v", err)
	}
	if _, err := s.AddToCart(ctx, 1, 3, 1); err != nil {
		t.Fatalf("add second product: %v", err)
	}

	addr := store.ShippingAddress{
		FirstName: "Jo",
		LastName:  "Smith",
		Address:   "1 Main St",
		City:      "Springfield",
		State:     "IL",
		Zip:       "62701",
	}
	ord, err := svc.PlaceOrder(ctx, 1, checkout.PlaceOrderInput{
		// 3x149.99 + 1x89.99 = 539.96, +8% tax = 583.16
		Total:           "583.16",
		Status:          store.StatusCompleted,
		ShippingAddress: addr,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if ord.Total != "583.16" {
		t.Fatalf("total=%q", ord.Total)
	}
	if ord.Status != store.StatusCompleted {
		t.Fatalf("status=%q", ord.Status)
	}
	if ord.ShippingAddress != addr {
		t.Fatalf("shipping address=%+v", ord.ShippingAddress)
	}
	if len(ord.Items) != 2 {
		t.Fatalf("items=%d want=2", len(ord.Items))
	}
	if ord.Items[0].ProductID != 1 || ord.Items[0].Quantity != 3 || ord.Items[0].Price != "149.99" {
		t.Fatalf("item 0=%+v", ord.Items[0].OrderItem)
	}
	if ord.Items[1].ProductID != 3 || ord.Items[1].Quantity != 1 || ord.Items[1].Price != "89.99" {
		t.Fatalf("item 1=%+v", ord.Items[1].OrderItem)
	}

	lines, err := s.CartItems(ctx, 1)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart rows=%d want=0", len(lines))
	}
}

func TestPlaceOrder_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)

	if _, err := s.AddToCart(ctx, 1, 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	ord, err := svc.PlaceOrder(ctx, 1, checkout.PlaceOrderInput{
		Total:  "323.98",
		Status: store.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if ord.Items[0].Price != "149.99" {
		t.Fatalf("snapshot=%q want 149.99", ord.Items[0].Price)
	}

	if _, err := s.UpdateProductPrice(ctx, 1, "999.99"); err != nil {
		t.Fatalf("update price: %v", err)
	}

	got, ok, err := s.OrderByID(ctx, ord.ID)
	if err != nil || !ok {
		t.Fatalf("order by id: ok=%v err=%v", ok, err)
	}
	if got.Items[0].Price != "149.99" {
		t.Fatalf("snapshot after price change=%q want 149.99", got.Items[0].Price)
	}
	// The joined product shows the new price; the line item does not.
	if got.Items[0].Product.Price != "999.99" {
		t.Fatalf("joined product price=%q want 999.99", got.Items[0].Product.Price)
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)

	if _, err := s.AddToCart(ctx, 1, 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := svc.PlaceOrder(ctx, 1, checkout.PlaceOrderInput{Total: "nope", Status: store.StatusCompleted})
	if !errors.Is(err, checkout.ErrBadTotal) {
		t.Fatalf("err=%v want ErrBadTotal", err)
	}

	_, err = svc.PlaceOrder(ctx, 1, checkout.PlaceOrderInput{Total: "-1", Status: store.StatusCompleted})
	if !errors.Is(err, checkout.ErrBadTotal) {
		t.Fatalf("err=%v want ErrBadTotal for negative", err)
	}

	_, err = svc.PlaceOrder(ctx, 1, checkout.PlaceOrderInput{Total: "10.00", Status: "paid"})
	if !errors.Is(err, checkout.ErrBadStatus) {
		t.Fatalf("err=%v want ErrBadStatus", err)
	}

	// Failed validation must not have touched the cart.
	lines, err := s.CartItems(ctx, 1)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("cart rows=%d want=1", len(lines))
	}
}
