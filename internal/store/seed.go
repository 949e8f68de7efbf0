package store

import "context"

// Seed loads the demo catalog: six categories and eight products. The
// catalog is static reference data; nothing in the storefront mutates it
// apart from the admin price path.
func Seed(ctx context.Context, s Store) error {
	categories := []struct {
		name, slug string
	}{
		{"Electronics", "electronics"},
		{"Clothing", "clothing"},
		{"Home & Garden", "home-garden"},
		{"Sports", "sports"},
		{"Books", "books"},
		{"Beauty", "beauty"},
	}
	for _, c := range categories {
		if _, err := s.CreateCategory(ctx, c.name, c.slug); err != nil {
			return err
		}
	}

	products := []NewProduct{
		{
			Name:          "Premium Wireless Headphones",
			Description:   "High-quality wireless headphones with noise cancellation",
			Price:         "149.99",
			OriginalPrice: "199.99",
			Image:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:    1,
			Stock:         50,
			Featured:      true,
			Rating:        "4.5",
			ReviewCount:   124,
			Tags:          []string{"wireless", "audio", "noise-cancelling"},
		},
		{
			Name:        "Smart Fitness Watch",
			Description: "Advanced fitness tracker with heart rate monitoring",
			Price:       "299.99",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:  1,
			Stock:       30,
			Featured:    true,
			Rating:      "5.0",
			ReviewCount: 89,
			Tags:        []string{"fitness", "smart", "health"},
		},
		{
			Name:        "Urban Travel Backpack",
			Description: "Durable and stylish backpack for urban adventures",
			Price:       "89.99",
			Image:       "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:  3,
			Stock:       75,
			Rating:      "4.0",
			ReviewCount: 67,
			Tags:        []string{"travel", "backpack", "urban"},
		},
		{
			Name:        "Professional DSLR Camera",
			Description: "Professional camera for photography enthusiasts",
			Price:       "899.99",
			Image:       "https://images.unsplash.com/photo-1516035069371-29a1b244cc32?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:  1,
			Stock:       20,
			Featured:    true,
			Rating:      "5.0",
			ReviewCount: 156,
			Tags:        []string{"camera", "photography", "professional"},
		},
		{
			Name:        "Premium Skincare Set",
			Description: "Luxury skincare products for daily routine",
			Price:       "129.99",
			Image:       "https://images.unsplash.com/photo-1556228720-195a672e8a03?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:  6,
			Stock:       40,
			Featured:    true,
			Rating:      "4.5",
			ReviewCount: 203,
			Tags:        []string{"skincare", "beauty", "premium"},
		},
		{
			Name:        "Athletic Running Shoes",
			Description: "Comfortable running shoes for everyday wear",
			Price:       "159.99",
			Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:  4,
			Stock:       60,
			Rating:      "5.0",
			ReviewCount: 312,
			Tags:        []string{"shoes", "running", "athletic"},
		},
		{
			Name:        "Ergonomic Office Desk",
			Description: "Modern office desk with storage solutions",
			Price:       "449.99",
			Image:       "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:  3,
			Stock:       15,
			Rating:      "4.0",
			ReviewCount: 78,
			Tags:        []string{"desk", "office", "ergonomic"},
		},
		{
			Name:          "Home Decor Collection",
			Description:   "Beautiful home decor items for interior styling",
			Price:         "79.99",
			OriginalPrice: "99.99",
			Image:         "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?ixlib=rb-4.0.3&w=400&h=300&fit=crop",
			CategoryID:    3,
			Stock:         25,
			Rating:        "4.5",
			ReviewCount:   145,
			Tags:          []string{"decor", "home", "styling"},
		},
	}
	for _, p := range products {
		if _, err := s.CreateProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
