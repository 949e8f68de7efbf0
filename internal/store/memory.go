package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemStore keeps everything in keyed maps guarded by one RWMutex. Ids are
// monotonically increasing per entity type, so sorting by id reproduces
// insertion order.
type MemStore struct {
	mu sync.RWMutex

	users      map[int]User
	products   map[int]Product
	categories map[int]Category
	cartItems  map[int]CartItem
	orders     map[int]Order
	orderItems map[int]OrderItem

	nextUserID      int
	nextProductID   int
	nextCategoryID  int
	nextCartItemID  int
	nextOrderID     int
	nextOrderItemID int
}

func NewMemStore() *MemStore {
	return &MemStore{
		users:           map[int]User{},
		products:        map[int]Product{},
		categories:      map[int]Category{},
		cartItems:       map[int]CartItem{},
		orders:          map[int]Order{},
		orderItems:      map[int]OrderItem{},
		nextUserID:      1,
		nextProductID:   1,
		nextCategoryID:  1,
		nextCartItemID:  1,
		nextOrderID:     1,
		nextOrderItemID: 1,
	}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) CreateUser(ctx context.Context, in NewUser) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{
		ID:        s.nextUserID,
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		CreatedAt: time.Now().UTC(),
	}
	s.nextUserID++
	s.users[u.ID] = u
	return u, nil
}

func (s *MemStore) GetUserByEmail(ctx context.Context, email string) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Linear scan; fine at this scale, a real store needs an email index.
	for _, u := range s.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return User{}, false, nil
}

func (s *MemStore) GetUserByID(ctx context.Context, id int) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemStore) UpdateUser(ctx context.Context, id int, upd UserUpdate) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Address != nil {
		u.Address = *upd.Address
	}
	if upd.City != nil {
		u.City = *upd.City
	}
	if upd.ZipCode != nil {
		u.ZipCode = *upd.ZipCode
	}
	s.users[id] = u
	return u, nil
}

func (s *MemStore) Products(ctx context.Context, categoryID int, search string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if categoryID != 0 && p.CategoryID != categoryID {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func matchesSearch(p Product, search string) bool {
	q := strings.ToLower(search)
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func (s *MemStore) ProductByID(ctx context.Context, id int) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	return p, ok, nil
}

func (s *MemStore) FeaturedProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Featured {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CreateProduct(ctx context.Context, in NewProduct) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Product{
		ID:            s.nextProductID,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         in.Image,
		CategoryID:    in.CategoryID,
		Stock:         in.Stock,
		Featured:      in.Featured,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		Tags:          in.Tags,
		CreatedAt:     time.Now().UTC(),
	}
	s.nextProductID++
	s.products[p.ID] = p
	return p, nil
}

func (s *MemStore) UpdateProductPrice(ctx context.Context, id int, price string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	p.Price = price
	s.products[id] = p
	return p, nil
}

func (s *MemStore) Categories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CategoryByID(ctx context.Context, id int) (Category, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	return c, ok, nil
}

func (s *MemStore) CreateCategory(ctx context.Context, name, slug string) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := Category{ID: s.nextCategoryID, Name: name, Slug: slug}
	s.nextCategoryID++
	s.categories[c.ID] = c
	return c, nil
}

func (s *MemStore) CartItems(ctx context.Context, userID int) ([]CartLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cartLinesLocked(userID)
}

// cartLinesLocked requires at least a read lock.
func (s *MemStore) cartLinesLocked(userID int) ([]CartLine, error) {
	items := make([]CartItem, 0, 8)
	for _, it := range s.cartItems {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	out := make([]CartLine, 0, len(items))
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("cart item %d, product %d: %w", it.ID, it.ProductID, ErrMissingProduct)
		}
		out = append(out, CartLine{CartItem: it, Product: p})
	}
	return out, nil
}

func (s *MemStore) AddToCart(ctx context.Context, userID, productID, quantity int) (CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, it := range s.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			it.Quantity += quantity
			s.cartItems[id] = it
			return it, nil
		}
	}

	it := CartItem{
		ID:        s.nextCartItemID,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	s.nextCartItemID++
	s.cartItems[it.ID] = it
	return it, nil
}

func (s *MemStore) UpdateCartItem(ctx context.Context, id, quantity int) (CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.cartItems[id]
	if !ok {
		return CartItem{}, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	it.Quantity = quantity
	s.cartItems[id] = it
	return it, nil
}

func (s *MemStore) RemoveFromCart(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.cartItems, id)
	return nil
}

func (s *MemStore) ClearCart(ctx context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearCartLocked(userID)
	return nil
}

func (s *MemStore) clearCartLocked(userID int) {
	for id, it := range s.cartItems {
		if it.UserID == userID {
			delete(s.cartItems, id)
		}
	}
}

func (s *MemStore) CreateOrder(ctx context.Context, in NewOrder) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createOrderLocked(in), nil
}

func (s *MemStore) createOrderLocked(in NewOrder) Order {
	o := Order{
		ID:              s.nextOrderID,
		UserID:          in.UserID,
		Total:           in.Total,
		Status:          in.Status,
		ShippingAddress: in.ShippingAddress,
		PaymentIntentID: in.PaymentIntentID,
		CreatedAt:       time.Now().UTC(),
	}
	s.nextOrderID++
	s.orders[o.ID] = o
	return o
}

func (s *MemStore) AddOrderItem(ctx context.Context, orderID int, in NewOrderItem) (OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addOrderItemLocked(orderID, in), nil
}

func (s *MemStore) addOrderItemLocked(orderID int, in NewOrderItem) OrderItem {
	it := OrderItem{
		ID:        s.nextOrderItemID,
		OrderID:   orderID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Price:     in.Price,
	}
	s.nextOrderItemID++
	s.orderItems[it.ID] = it
	return it
}

func (s *MemStore) CreateOrderWithItems(ctx context.Context, in NewOrder, items []NewOrderItem) (Order, []OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := s.createOrderLocked(in)
	created := make([]OrderItem, 0, len(items))
	for _, it := range items {
		created = append(created, s.addOrderItemLocked(o.ID, it))
	}
	s.clearCartLocked(in.UserID)
	return o, created, nil
}

func (s *MemStore) UserOrders(ctx context.Context, userID int) ([]OrderWithItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make([]Order, 0, 8)
	for _, o := range s.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	out := make([]OrderWithItems, 0, len(orders))
	for _, o := range orders {
		lines, err := s.orderLinesLocked(o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderWithItems{Order: o, Items: lines})
	}
	return out, nil
}

func (s *MemStore) OrderByID(ctx context.Context, id int) (OrderWithItems, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return OrderWithItems{}, false, nil
	}
	lines, err := s.orderLinesLocked(id)
	if err != nil {
		return OrderWithItems{}, false, err
	}
	return OrderWithItems{Order: o, Items: lines}, true, nil
}

func (s *MemStore) orderLinesLocked(orderID int) ([]OrderLine, error) {
	items := make([]OrderItem, 0, 8)
	for _, it := range s.orderItems {
		if it.OrderID == orderID {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })

	out := make([]OrderLine, 0, len(items))
	for _, it := range items {
		p, ok := s.products[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("order item %d, product %d: %w", it.ID, it.ProductID, ErrMissingProduct)
		}
		out = append(out, OrderLine{OrderItem: it, Product: p})
	}
	return out, nil
}

func (s *MemStore) UpdateOrderStatus(ctx context.Context, id int, status string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	o.Status = status
	s.orders[id] = o
	return o, nil
}
