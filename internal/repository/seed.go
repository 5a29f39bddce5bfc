package repository

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"storefront/internal/domain"
)

// Seed loads the demo catalog and the default admin account
// (admin/admin123) into empty repositories.
func Seed(users domain.UserRepository, categories domain.CategoryRepository, products domain.ProductRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}

	if _, err := users.CreateUser(&domain.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Email:        "admin@example.com",
		FirstName:    "Admin",
		LastName:     "User",
		IsAdmin:      true,
	}); err != nil {
		return fmt.Errorf("seed: create admin user: %w", err)
	}

	slugs := make(map[string]int)
	for _, c := range []domain.Category{
		{Name: "Electronics", Slug: "electronics"},
		{Name: "Clothing", Slug: "clothing"},
		{Name: "Home & Furniture", Slug: "home-furniture"},
		{Name: "Beauty", Slug: "beauty"},
		{Name: "Sports & Outdoors", Slug: "sports"},
		{Name: "Books", Slug: "books"},
	} {
		created, err := categories.CreateCategory(&c)
		if err != nil {
			return fmt.Errorf("seed: create category '%s': %w", c.Slug, err)
		}
		slugs[created.Slug] = created.ID
	}

	for _, p := range []domain.Product{
		{
			Name:             "Nike Air Max",
			Description:      "Premium men's running shoes with Air cushioning technology for maximum comfort and support. Perfect for running, training, or casual wear.",
			ShortDescription: "Men's Running Shoe",
			Price:            129.99,
			ImageURL:         "https://images.unsplash.com/photo-1542291026-7eec264c27ff",
			CategoryID:       slugs["clothing"],
			Rating:           4.5,
			InStock:          true,
			IsNew:            true,
			Brand:            "Nike",
		},
		{
			Name:             "Smart Watch Pro",
			Description:      "Advanced smartwatch with health monitoring, GPS tracking, and notification features. Water-resistant and compatible with iOS and Android.",
			ShortDescription: "Fitness Tracker",
			Price:            199.99,
			ImageURL:         "https://images.unsplash.com/photo-1523275335684-37898b6baf30",
			CategoryID:       slugs["electronics"],
			Rating:           4.0,
			InStock:          true,
			IsSale:           true,
			Brand:            "SmartGear",
		},
		{
			Name:             "Wireless Headphones",
			Description:      "Experience immersive sound with these wireless noise-cancelling headphones. 30-hour battery life and comfortable over-ear design.",
			ShortDescription: "Noise Cancelling",
			Price:            149.99,
			ImageURL:         "https://images.unsplash.com/photo-1505740420928-5e560c06d30e",
			CategoryID:       slugs["electronics"],
			Rating:           5.0,
			InStock:          true,
			Brand:            "SoundPro",
		},
		{
			Name:             "Smartphone X",
			Description:      "High-performance smartphone with an amazing camera, all-day battery life, and premium design. Features the latest mobile technology.",
			ShortDescription: "128GB, Midnight Black",
			Price:            899.99,
			ImageURL:         "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9",
			CategoryID:       slugs["electronics"],
			Rating:           4.0,
			InStock:          true,
			Brand:            "TechMaster",
		},
		{
			Name:             "Minimalist Chair",
			Description:      "Elegant minimalist chair made from high-quality materials. Adds a touch of modern style to any room. Comfortable and durable.",
			ShortDescription: "Wooden, White",
			Price:            89.99,
			ImageURL:         "https://images.unsplash.com/photo-1503602642458-232111445657",
			CategoryID:       slugs["home-furniture"],
			Rating:           3.5,
			InStock:          true,
			Brand:            "ModernHome",
		},
		{
			Name:             "Digital Camera",
			Description:      "Professional-grade digital camera with 24MP sensor and 4K video capabilities. Ideal for photography enthusiasts and content creators.",
			ShortDescription: "24MP, 4K Video",
			Price:            499.99,
			ImageURL:         "https://images.unsplash.com/photo-1526170375885-4d8ecf77b99f",
			CategoryID:       slugs["electronics"],
			Rating:           4.0,
			InStock:          true,
			IsSale:           true,
			Brand:            "CapturePro",
		},
		{
			Name:             "Wireless Earbuds",
			Description:      "Compact, high-quality wireless earbuds with crystal-clear sound and long battery life. Includes charging case and multiple ear tip sizes.",
			ShortDescription: "Bluetooth 5.0",
			Price:            79.99,
			ImageURL:         "https://images.unsplash.com/photo-1505751171710-1f6d0ace5a85",
			CategoryID:       slugs["electronics"],
			Rating:           4.0,
			InStock:          true,
			Brand:            "SoundPro",
		},
		{
			Name:             "Headphone Stand",
			Description:      "Elegant aluminum headphone stand to display and store your headphones. Keeps your desk organized while looking stylish.",
			ShortDescription: "Aluminum",
			Price:            29.99,
			ImageURL:         "https://images.unsplash.com/photo-1546435770-a3e426bf472b",
			CategoryID:       slugs["home-furniture"],
			Rating:           4.5,
			InStock:          true,
			Brand:            "DeskOrganizer",
		},
	} {
		if _, err := products.CreateProduct(&p); err != nil {
			return fmt.Errorf("seed: create product '%s': %w", p.Name, err)
		}
	}

	return nil
}
