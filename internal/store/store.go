// Package store holds the storefront's entities and the repository they
// live in. The default backend keeps everything in process-local maps with
// sequential ids; a Postgres backend implements the same interface for
// deployments that need state to survive a restart.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrMissingProduct means a cart or order line references a product
	// that is no longer in the store. Price-bearing rows without their
	// product cannot be displayed, so joins fail loudly instead of
	// skipping the row.
	ErrMissingProduct = errors.New("referenced product missing")
)

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	ZipCode   string    `json:"zipCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser carries the fields a registration provides. Password must already
// be hashed; the repository never sees plaintext.
type NewUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserUpdate is a partial profile update. Nil fields are left unchanged.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Address   *string
	City      *string
	ZipCode   *string
}

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	OriginalPrice string    `json:"originalPrice,omitempty"`
	Image         string    `json:"image"`
	CategoryID    int       `json:"categoryId"`
	Stock         int       `json:"stock"`
	Featured      bool      `json:"featured"`
	Rating        string    `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type NewProduct struct {
	Name          string
	Description   string
	Price         string
	OriginalPrice string
	Image         string
	CategoryID    int
	Stock         int
	Featured      bool
	Rating        string
	ReviewCount   int
	Tags          []string
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	ProductID int       `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartLine is a cart item joined with the product it references, the shape
// the cart endpoints and the checkout service work with.
type CartLine struct {
	CartItem
	Product Product `json:"product"`
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// Order statuses. Orders are immutable once created except for moving
// between these.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusShipped   = "shipped"
	StatusCancelled = "cancelled"
)

type Order struct {
	ID              int             `json:"id"`
	UserID          int             `json:"userId"`
	Total           string          `json:"total"`
	Status          string          `json:"status"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentIntentID string          `json:"stripePaymentIntentId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type NewOrder struct {
	UserID          int
	Total           string
	Status          string
	ShippingAddress ShippingAddress
	PaymentIntentID string
}

// OrderItem records one product's quantity within a placed order. Price is
// a snapshot of the product price at order time and never changes
// afterwards, no matter what happens to the product.
type OrderItem struct {
	ID        int    `json:"id"`
	OrderID   int    `json:"orderId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

type NewOrderItem struct {
	ProductID int
	Quantity  int
	Price     string
}

// OrderLine is an order item joined with its product for display.
type OrderLine struct {
	OrderItem
	Product Product `json:"product"`
}

type OrderWithItems struct {
	Order
	Items []OrderLine `json:"items"`
}

// Store is the repository over the six entity types. Both backends keep the
// same semantics: sequential per-entity ids, insertion-order listings, and
// hard errors on dangling product references.
type Store interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, in NewUser) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, bool, error)
	GetUserByID(ctx context.Context, id int) (User, bool, error)
	UpdateUser(ctx context.Context, id int, upd UserUpdate) (User, error)

	// Products returns all products when both filters are zero. A non-zero
	// categoryID restricts to an exact match; a non-empty search matches
	// case-insensitively against name, description and tags. Results come
	// back in insertion (id) order.
	Products(ctx context.Context, categoryID int, search string) ([]Product, error)
	ProductByID(ctx context.Context, id int) (Product, bool, error)
	FeaturedProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, in NewProduct) (Product, error)
	UpdateProductPrice(ctx context.Context, id int, price string) (Product, error)

	Categories(ctx context.Context) ([]Category, error)
	CategoryByID(ctx context.Context, id int) (Category, bool, error)
	CreateCategory(ctx context.Context, name, slug string) (Category, error)

	// CartItems joins each of the user's cart rows with its product and
	// fails with ErrMissingProduct if any reference dangles.
	CartItems(ctx context.Context, userID int) ([]CartLine, error)
	// AddToCart merges: if a row for (userID, productID) exists its
	// quantity is incremented by the requested amount, otherwise a new row
	// is inserted. At most one row per pair ever exists.
	AddToCart(ctx context.Context, userID, productID, quantity int) (CartItem, error)
	UpdateCartItem(ctx context.Context, id, quantity int) (CartItem, error)
	RemoveFromCart(ctx context.Context, id int) error
	ClearCart(ctx context.Context, userID int) error

	CreateOrder(ctx context.Context, in NewOrder) (Order, error)
	AddOrderItem(ctx context.Context, orderID int, in NewOrderItem) (OrderItem, error)
	// CreateOrderWithItems writes the order header and its items and clears
	// the user's cart as one all-or-nothing operation: the cart ends up
	// empty if and only if the order exists.
	CreateOrderWithItems(ctx context.Context, in NewOrder, items []NewOrderItem) (Order, []OrderItem, error)
	UserOrders(ctx context.Context, userID int) ([]OrderWithItems, error)
	OrderByID(ctx context.Context, id int) (OrderWithItems, bool, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) (Order, error)
}
