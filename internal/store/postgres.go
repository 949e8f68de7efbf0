package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	txTimeout    = 5 * time.Second
)

// PostgresStore is the persistence-backed variant of the repository. The
// schema mirrors the entity set exactly, with order item prices snapshotted
// the same way the memory store does it.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

// InitSchema creates the tables if they do not exist yet.
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL,
			pass_hash TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price TEXT NOT NULL,
			original_price TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			category_id INT NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0,
			featured BOOLEAN NOT NULL DEFAULT false,
			rating TEXT NOT NULL DEFAULT '0',
			review_count INT NOT NULL DEFAULT 0,
			tags JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			total TEXT NOT NULL,
			status TEXT NOT NULL,
			shipping_address JSONB NOT NULL DEFAULT '{}',
			payment_intent_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL,
			product_id INT NOT NULL,
			quantity INT NOT NULL,
			price TEXT NOT NULL
		)`,
	}

	return withTimeout(ctx, txTimeout, func(ctx context.Context) error {
		for _, q := range stmts {
			if _, err := s.db.ExecContext(ctx, q); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) CreateUser(ctx context.Context, in NewUser) (User, error) {
	var u User
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO users (email, pass_hash, first_name, last_name)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`, in.Email, in.Password, in.FirstName, in.LastName).Scan(&u.ID, &u.CreatedAt)
	})
	if err != nil {
		return User{}, err
	}
	u.Email = in.Email
	u.Password = in.Password
	u.FirstName = in.FirstName
	u.LastName = in.LastName
	return u, nil
}

const userCols = `id, email, pass_hash, first_name, last_name, address, city, zip_code, created_at`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Address, &u.City, &u.ZipCode, &u.CreatedAt)
	return u, err
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (User, bool, error) {
	var (
		u   User
		err error
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		u, err = scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE email = $1`, email))
		return err
	})
	if err == sql.ErrNoRows {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int) (User, bool, error) {
	var (
		u   User
		err error
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		u, err = scanUser(s.db.QueryRowContext(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
		return err
	})
	if err == sql.ErrNoRows {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id int, upd UserUpdate) (User, error) {
	var (
		u   User
		err error
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		u, err = scanUser(s.db.QueryRowContext(ctx, `
			UPDATE users SET
				first_name = COALESCE($2, first_name),
				last_name  = COALESCE($3, last_name),
				address    = COALESCE($4, address),
				city       = COALESCE($5, city),
				zip_code   = COALESCE($6, zip_code)
			WHERE id = $1
			RETURNING `+userCols,
			id, upd.FirstName, upd.LastName, upd.Address, upd.City, upd.ZipCode))
		return err
	})
	if err == sql.ErrNoRows {
		return User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

const productCols = `id, name, description, price, original_price, image, category_id, stock, featured, rating, review_count, tags, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p    Product
		tags []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OriginalPrice, &p.Image,
		&p.CategoryID, &p.Stock, &p.Featured, &p.Rating, &p.ReviewCount, &tags, &p.CreatedAt)
	if err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *PostgresStore) queryProducts(ctx context.Context, where string, args ...any) ([]Product, error) {
	var out []Product
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `SELECT `+productCols+` FROM products `+where+` ORDER BY id ASC`, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			p, err := scanProduct(rows)
			if err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Products(ctx context.Context, categoryID int, search string) ([]Product, error) {
	where := `WHERE ($1 = 0 OR category_id = $1)
		AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%'
			OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) tag WHERE tag ILIKE '%' || $2 || '%'))`
	return s.queryProducts(ctx, where, categoryID, search)
}

func (s *PostgresStore) ProductByID(ctx context.Context, id int) (Product, bool, error) {
	var (
		p   Product
		err error
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		p, err = scanProduct(s.db.QueryRowContext(ctx, `SELECT `+productCols+` FROM products WHERE id = $1`, id))
		return err
	})
	if err == sql.ErrNoRows {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) FeaturedProducts(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx, `WHERE featured`)
}

func (s *PostgresStore) CreateProduct(ctx context.Context, in NewProduct) (Product, error) {
	tags, err := json.Marshal(orEmptyTags(in.Tags))
	if err != nil {
		return Product{}, err
	}

	var (
		id        int
		createdAt time.Time
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO products (name, description, price, original_price, image, category_id, stock, featured, rating, review_count, tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at
		`, in.Name, in.Description, in.Price, in.OriginalPrice, in.Image,
			in.CategoryID, in.Stock, in.Featured, in.Rating, in.ReviewCount, tags).Scan(&id, &createdAt)
	})
	if err != nil {
		return Product{}, err
	}

	return Product{
		ID:            id,
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
		CreatedAt:     createdAt,
	}, nil
}

func orEmptyTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func (s *PostgresStore) UpdateProductPrice(ctx context.Context, id int, price string) (Product, error) {
	var (
		p   Product
		err error
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		p, err = scanProduct(s.db.QueryRowContext(ctx, `
			UPDATE products SET price = $2 WHERE id = $1
			RETURNING `+productCols, id, price))
		return err
	})
	if err == sql.ErrNoRows {
		return Product{}, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *PostgresStore) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Category, 0, 8)
		for rows.Next() {
			var c Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
				return err
			}
			out = append(out, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) CategoryByID(ctx context.Context, id int) (Category, bool, error) {
	var c Category
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `SELECT id, name, slug FROM categories WHERE id = $1`, id).
			Scan(&c.ID, &c.Name, &c.Slug)
	})
	if err == sql.ErrNoRows {
		return Category{}, false, nil
	}
	if err != nil {
		return Category{}, false, err
	}
	return c, true, nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, name, slug string) (Category, error) {
	var id int
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id
		`, name, slug).Scan(&id)
	})
	if err != nil {
		return Category{}, err
	}
	return Category{ID: id, Name: name, Slug: slug}, nil
}

func (s *PostgresStore) CartItems(ctx context.Context, userID int) ([]CartLine, error) {
	var out []CartLine
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT c.id, c.user_id, c.product_id, c.quantity, c.created_at, `+prefixedProductCols("p")+`
			FROM cart_items c
			LEFT JOIN products p ON p.id = c.product_id
			WHERE c.user_id = $1
			ORDER BY c.id ASC
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]CartLine, 0, 8)
		for rows.Next() {
			var (
				line CartLine
				pid  sql.NullInt64
				p    nullableProduct
			)
			if err := rows.Scan(append([]any{&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt}, p.dest(&pid)...)...); err != nil {
				return err
			}
			if !pid.Valid {
				return fmt.Errorf("cart item %d, product %d: %w", line.ID, line.ProductID, ErrMissingProduct)
			}
			prod, err := p.product(pid)
			if err != nil {
				return err
			}
			line.Product = prod
			out = append(out, line)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) AddToCart(ctx context.Context, userID, productID, quantity int) (CartItem, error) {
	var it CartItem
	err := withTimeout(ctx, txTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		err = tx.QueryRowContext(ctx, `
			SELECT id, user_id, product_id, quantity, created_at
			FROM cart_items
			WHERE user_id = $1 AND product_id = $2
			FOR UPDATE
		`, userID, productID).Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt)

		switch err {
		case nil:
			it.Quantity += quantity
			if _, err := tx.ExecContext(ctx, `UPDATE cart_items SET quantity = $2 WHERE id = $1`, it.ID, it.Quantity); err != nil {
				return err
			}
		case sql.ErrNoRows:
			if err := tx.QueryRowContext(ctx, `
				INSERT INTO cart_items (user_id, product_id, quantity)
				VALUES ($1, $2, $3)
				RETURNING id, user_id, product_id, quantity, created_at
			`, userID, productID, quantity).Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt); err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return CartItem{}, err
	}
	return it, nil
}

func (s *PostgresStore) UpdateCartItem(ctx context.Context, id, quantity int) (CartItem, error) {
	var it CartItem
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			UPDATE cart_items SET quantity = $2 WHERE id = $1
			RETURNING id, user_id, product_id, quantity, created_at
		`, id, quantity).Scan(&it.ID, &it.UserID, &it.ProductID, &it.Quantity, &it.CreatedAt)
	})
	if err == sql.ErrNoRows {
		return CartItem{}, fmt.Errorf("cart item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return CartItem{}, err
	}
	return it, nil
}

func (s *PostgresStore) RemoveFromCart(ctx context.Context, id int) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
		return err
	})
}

func (s *PostgresStore) ClearCart(ctx context.Context, userID int) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
		return err
	})
}

func (s *PostgresStore) CreateOrder(ctx context.Context, in NewOrder) (Order, error) {
	addr, err := json.Marshal(in.ShippingAddress)
	if err != nil {
		return Order{}, err
	}

	o := Order{
		UserID:          in.UserID,
		Total:           in.Total,
		Status:          in.Status,
		ShippingAddress: in.ShippingAddress,
		PaymentIntentID: in.PaymentIntentID,
	}
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, total, status, shipping_address, payment_intent_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, in.UserID, in.Total, in.Status, addr, in.PaymentIntentID).Scan(&o.ID, &o.CreatedAt)
	})
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *PostgresStore) AddOrderItem(ctx context.Context, orderID int, in NewOrderItem) (OrderItem, error) {
	it := OrderItem{
		OrderID:   orderID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Price:     in.Price,
	}
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, orderID, in.ProductID, in.Quantity, in.Price).Scan(&it.ID)
	})
	if err != nil {
		return OrderItem{}, err
	}
	return it, nil
}

func (s *PostgresStore) CreateOrderWithItems(ctx context.Context, in NewOrder, items []NewOrderItem) (Order, []OrderItem, error) {
	addr, err := json.Marshal(in.ShippingAddress)
	if err != nil {
		return Order{}, nil, err
	}

	o := Order{
		UserID:          in.UserID,
		Total:           in.Total,
		Status:          in.Status,
		ShippingAddress: in.ShippingAddress,
		PaymentIntentID: in.PaymentIntentID,
	}
	created := make([]OrderItem, 0, len(items))

	err = withTimeout(ctx, txTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		err = tx.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, total, status, shipping_address, payment_intent_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, in.UserID, in.Total, in.Status, addr, in.PaymentIntentID).Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, in := range items {
			it := OrderItem{OrderID: o.ID, ProductID: in.ProductID, Quantity: in.Quantity, Price: in.Price}
			if err := stmt.QueryRowContext(ctx, o.ID, in.ProductID, in.Quantity, in.Price).Scan(&it.ID); err != nil {
				return err
			}
			created = append(created, it)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, in.UserID); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return Order{}, nil, err
	}
	return o, created, nil
}

func (s *PostgresStore) UserOrders(ctx context.Context, userID int) ([]OrderWithItems, error) {
	var orders []Order
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, user_id, total, status, shipping_address, payment_intent_id, created_at
			FROM orders
			WHERE user_id = $1
			ORDER BY id ASC
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		orders = make([]Order, 0, 8)
		for rows.Next() {
			o, err := scanOrder(rows)
			if err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	out := make([]OrderWithItems, 0, len(orders))
	for _, o := range orders {
		lines, err := s.orderLines(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, OrderWithItems{Order: o, Items: lines})
	}
	return out, nil
}

func (s *PostgresStore) OrderByID(ctx context.Context, id int) (OrderWithItems, bool, error) {
	var (
		o   Order
		err error
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		row := s.db.QueryRowContext(ctx, `
			SELECT id, user_id, total, status, shipping_address, payment_intent_id, created_at
			FROM orders
			WHERE id = $1
		`, id)
		o, err = scanOrder(row)
		return err
	})
	if err == sql.ErrNoRows {
		return OrderWithItems{}, false, nil
	}
	if err != nil {
		return OrderWithItems{}, false, err
	}

	lines, err := s.orderLines(ctx, id)
	if err != nil {
		return OrderWithItems{}, false, err
	}
	return OrderWithItems{Order: o, Items: lines}, true, nil
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o    Order
		addr []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &addr, &o.PaymentIntentID, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(addr, &o.ShippingAddress); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *PostgresStore) orderLines(ctx context.Context, orderID int) ([]OrderLine, error) {
	var out []OrderLine
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT i.id, i.order_id, i.product_id, i.quantity, i.price, `+prefixedProductCols("p")+`
			FROM order_items i
			LEFT JOIN products p ON p.id = i.product_id
			WHERE i.order_id = $1
			ORDER BY i.id ASC
		`, orderID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]OrderLine, 0, 8)
		for rows.Next() {
			var (
				line OrderLine
				pid  sql.NullInt64
				p    nullableProduct
			)
			if err := rows.Scan(append([]any{&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.Price}, p.dest(&pid)...)...); err != nil {
				return err
			}
			if !pid.Valid {
				return fmt.Errorf("order item %d, product %d: %w", line.ID, line.ProductID, ErrMissingProduct)
			}
			prod, err := p.product(pid)
			if err != nil {
				return err
			}
			line.Product = prod
			out = append(out, line)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id int, status string) (Order, error) {
	var (
		o   Order
		err error
	)
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		row := s.db.QueryRowContext(ctx, `
			UPDATE orders SET status = $2 WHERE id = $1
			RETURNING id, user_id, total, status, shipping_address, payment_intent_id, created_at
		`, id, status)
		o, err = scanOrder(row)
		return err
	})
	if err == sql.ErrNoRows {
		return Order{}, fmt.Errorf("order %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

// nullableProduct scans product columns from the nullable side of a LEFT
// JOIN. The join side decides whether a NULL product is an error.
type nullableProduct struct {
	name, description, price, originalPrice, image, rating sql.NullString
	categoryID, stock, reviewCount                         sql.NullInt64
	featured                                               sql.NullBool
	tags                                                   []byte
	createdAt                                              sql.NullTime
}

func prefixedProductCols(alias string) string {
	return alias + `.id, ` + alias + `.name, ` + alias + `.description, ` + alias + `.price, ` +
		alias + `.original_price, ` + alias + `.image, ` + alias + `.category_id, ` + alias + `.stock, ` +
		alias + `.featured, ` + alias + `.rating, ` + alias + `.review_count, ` + alias + `.tags, ` + alias + `.created_at`
}

func (n *nullableProduct) dest(id *sql.NullInt64) []any {
	return []any{id, &n.name, &n.description, &n.price, &n.originalPrice, &n.image,
		&n.categoryID, &n.stock, &n.featured, &n.rating, &n.reviewCount, &n.tags, &n.createdAt}
}

func (n *nullableProduct) product(id sql.NullInt64) (Product, error) {
	p := Product{
		ID:            int(id.Int64),
		Name:          n.name.String,
		Description:   n.description.String,
		Price:         n.price.String,
		OriginalPrice: n.originalPrice.String,
		Image:         n.image.String,
		CategoryID:    int(n.categoryID.Int64),
		Stock:         int(n.stock.Int64),
		Featured:      n.featured.Bool,
		Rating:        n.rating.String,
		ReviewCount:   int(n.reviewCount.Int64),
		CreatedAt:     n.createdAt.Time,
	}
	if len(n.tags) > 0 {
		if err := json.Unmarshal(n.tags, &p.Tags); err != nil {
			return Product{}, err
		}
	}
	return p, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
