package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{db: db, log: logger}
}

const productColumns = `id, name, description, short_description, price, image_url, category_id, rating, in_stock, is_new, is_sale, brand`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	p := &domain.Product{}
	var shortDescription, brand sql.NullString
	var rating sql.NullFloat64

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &shortDescription, &p.Price, &p.ImageURL,
		&p.CategoryID, &rating, &p.InStock, &p.IsNew, &p.IsSale, &brand,
	)
	if err != nil {
		return nil, err
	}

	p.ShortDescription = shortDescription.String
	p.Brand = brand.String
	p.Rating = rating.Float64
	return p, nil
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (name, description, short_description, price, image_url, category_id, rating, in_stock, is_new, is_sale, brand)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id`

	err := r.db.QueryRow(query,
		product.Name, product.Description, nullString(product.ShortDescription),
		product.Price, product.ImageURL, product.CategoryID,
		nullFloat(product.Rating), product.InStock, product.IsNew, product.IsSale,
		nullString(product.Brand),
	).Scan(&product.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Repository: attempted to create product with non-existent category ID: %d", product.CategoryID)
			return nil, fmt.Errorf("category with id %d does not exist: %w", product.CategoryID, domain.ErrValidation)
		}
		r.log.Errorf("Repository: failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}

	r.log.Infof("Repository: product created with ID %d, name %s", product.ID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id int) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for key, value := range updates {
		switch key {
		case "name", "description", "short_description", "price", "image_url",
			"category_id", "rating", "in_stock", "is_new", "is_sale", "brand":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, value)
			argCounter++
		default:
			r.log.Warnf("Repository: skipping unknown field '%s' in product update for ID %d", key, id)
		}
	}

	if len(setClauses) == 0 {
		return r.GetProductByID(id)
	}

	query := "UPDATE products SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", argCounter)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return nil, fmt.Errorf("referenced category does not exist: %w", domain.ErrValidation)
		}
		r.log.Errorf("Repository: failed to update product ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: failed to get rows affected after update for ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: product with ID %d not found for update", id)
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}

	r.log.Infof("Repository: product updated for ID %d", id)
	return r.GetProductByID(id)
}

func (r *postgresProductRepository) DeleteProduct(id int) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Errorf("Repository: failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete product: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: product with ID %d not found for delete", id)
		return fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}

	r.log.Infof("Repository: product deleted for ID %d", id)
	return nil
}

func (r *postgresProductRepository) ListProducts() ([]domain.Product, error) {
	return r.queryProducts(`SELECT `+productColumns+` FROM products ORDER BY id`, nil)
}

func (r *postgresProductRepository) ListProductsByCategory(categoryID int) ([]domain.Product, error) {
	return r.queryProducts(`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY id`, []interface{}{categoryID})
}

func (r *postgresProductRepository) SearchProducts(query string) ([]domain.Product, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	return r.queryProducts(`
        SELECT `+productColumns+` FROM products
        WHERE LOWER(name) LIKE $1 OR LOWER(description) LIKE $1 OR LOWER(COALESCE(brand, '')) LIKE $1
        ORDER BY id`, []interface{}{pattern})
}

func (r *postgresProductRepository) queryProducts(query string, args []interface{}) ([]domain.Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Errorf("Repository: failed to query products: %v", err)
		return nil, fmt.Errorf("could not query products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			r.log.Errorf("Repository: failed to scan product row: %v", err)
			return nil, fmt.Errorf("could not scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate products: %w", err)
	}
	return products, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: f != 0}
}
