package store_test

import (
	"context"
	"errors"
	"testing"

	"Storefront/internal/store"
)

func newSeededStore(t *testing.T) *store.MemStore {
	t.Helper()

	s := store.NewMemStore()
	if err := store.Seed(context.Background(), s); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestAddToCart_MergesDuplicateLines(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	first, err := s.AddToCart(ctx, 1, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := s.AddToCart(ctx, 1, 1, 2)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected merge into row %d, got new row %d", first.ID, second.ID)
	}
	if second.Quantity != 3 {
		t.Fatalf("quantity=%d want=3", second.Quantity)
	}

	lines, err := s.CartItems(ctx, 1)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("rows=%d want=1", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("joined quantity=%d want=3", lines[0].Quantity)
	}
}

func TestAddToCart_SeparateRowsPerUserAndProduct(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	if _, err := s.AddToCart(ctx, 1, 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddToCart(ctx, 1, 2, 1); err != nil {
		t.Fatalf("add other product: %v", err)
	}
	if _, err := s.AddToCart(ctx, 2, 1, 1); err != nil {
		t.Fatalf("add other user: %v", err)
	}

	lines, err := s.CartItems(ctx, 1)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("user 1 rows=%d want=2", len(lines))
	}

	lines, err = s.CartItems(ctx, 2)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("user 2 rows=%d want=1", len(lines))
	}
}

func TestCartItems_MissingProductIsHardError(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	// The store does not validate references; a dangling row surfaces on
	// the join, loudly.
	if _, err := s.AddToCart(ctx, 1, 42, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err := s.CartItems(ctx, 1)
	if !errors.Is(err, store.ErrMissingProduct) {
		t.Fatalf("err=%v want ErrMissingProduct", err)
	}
}

func TestRemoveAndClearCart_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	if err := s.RemoveFromCart(ctx, 999); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	if err := s.ClearCart(ctx, 999); err != nil {
		t.Fatalf("clear absent: %v", err)
	}

	it, err := s.AddToCart(ctx, 1, 1, 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.RemoveFromCart(ctx, it.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveFromCart(ctx, it.ID); err != nil {
		t.Fatalf("remove twice: %v", err)
	}
}

func TestProducts_Filtering(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	all, err := s.Products(ctx, 0, "")
	if err != nil {
		t.Fatalf("all products: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("all=%d want=8", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].ID < all[i-1].ID {
			t.Fatalf("products not in insertion order: %d before %d", all[i-1].ID, all[i].ID)
		}
	}

	electronics, err := s.Products(ctx, 1, "")
	if err != nil {
		t.Fatalf("category filter: %v", err)
	}
	if len(electronics) != 3 {
		t.Fatalf("electronics=%d want=3", len(electronics))
	}
	for _, p := range electronics {
		if p.CategoryID != 1 {
			t.Fatalf("product %d has categoryId=%d", p.ID, p.CategoryID)
		}
	}

	watches, err := s.Products(ctx, 0, "WATCH")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(watches) != 1 || watches[0].Name != "Smart Fitness Watch" {
		t.Fatalf("search=%v want only the fitness watch", watches)
	}

	// Tag match.
	audio, err := s.Products(ctx, 0, "audio")
	if err != nil {
		t.Fatalf("tag search: %v", err)
	}
	if len(audio) != 1 || audio[0].ID != 1 {
		t.Fatalf("tag search=%v want headphones", audio)
	}

	// Category AND search.
	none, err := s.Products(ctx, 6, "watch")
	if err != nil {
		t.Fatalf("combined filter: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("combined=%d want=0", len(none))
	}
}

func TestFeaturedProducts(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	featured, err := s.FeaturedProducts(ctx)
	if err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(featured) != 4 {
		t.Fatalf("featured=%d want=4", len(featured))
	}
	for _, p := range featured {
		if !p.Featured {
			t.Fatalf("product %d not featured", p.ID)
		}
	}
}

func TestCreateOrderWithItems_ClearsCartAtomically(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	if _, err := s.AddToCart(ctx, 1, 1, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddToCart(ctx, 2, 1, 1); err != nil {
		t.Fatalf("add other user: %v", err)
	}

	ord, items, err := s.CreateOrderWithItems(ctx, store.NewOrder{
		UserID: 1,
		Total:  "485.97",
		Status: store.StatusCompleted,
	}, []store.NewOrderItem{
		{ProductID: 1, Quantity: 3, Price: "149.99"},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if len(items) != 1 || items[0].OrderID != ord.ID {
		t.Fatalf("items=%v", items)
	}

	lines, err := s.CartItems(ctx, 1)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart rows=%d want=0 after checkout", len(lines))
	}

	// Another user's cart is untouched.
	lines, err = s.CartItems(ctx, 2)
	if err != nil {
		t.Fatalf("cart items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("user 2 rows=%d want=1", len(lines))
	}
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	u, err := s.CreateUser(ctx, store.NewUser{
		Email:     "jo@example.com",
		Password:  "hash",
		FirstName: "Jo",
		LastName:  "Smith",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	city := "Springfield"
	got, err := s.UpdateUser(ctx, u.ID, store.UserUpdate{City: &city})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if got.City != "Springfield" {
		t.Fatalf("city=%q", got.City)
	}
	if got.FirstName != "Jo" || got.LastName != "Smith" {
		t.Fatalf("name clobbered: %q %q", got.FirstName, got.LastName)
	}

	_, err = s.UpdateUser(ctx, 404, store.UserUpdate{City: &city})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	s := newSeededStore(t)

	ord, err := s.CreateOrder(ctx, store.NewOrder{UserID: 1, Total: "10.00", Status: store.StatusPending})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	got, err := s.UpdateOrderStatus(ctx, ord.ID, store.StatusShipped)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if got.Status != store.StatusShipped {
		t.Fatalf("status=%q", got.Status)
	}
	if got.Total != "10.00" {
		t.Fatalf("total changed: %q", got.Total)
	}
}
