package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type memoryProductRepository struct {
	mu     sync.RWMutex
	items  map[int]domain.Product
	nextID int
	log    *logrus.Logger
}

func NewMemoryProductRepository(logger *logrus.Logger) domain.ProductRepository {
	return &memoryProductRepository{
		items:  make(map[int]domain.Product),
		nextID: 1,
		log:    logger,
	}
}

func (r *memoryProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *product
	created.ID = r.nextID
	r.nextID++
	r.items[created.ID] = created

	r.log.Infof("Repository: product created with ID %d, name %s", created.ID, created.Name)
	return &created, nil
}

func (r *memoryProductRepository) GetProductByID(id int) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	return &product, nil
}

func (r *memoryProductRepository) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		r.log.Warnf("Repository: product with ID %d not found for update", id)
		return nil, fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}

	for key, value := range updates {
		switch key {
		case "name":
			product.Name = value.(string)
		case "description":
			product.Description = value.(string)
		case "short_description":
			product.ShortDescription = value.(string)
		case "price":
			product.Price = value.(float64)
		case "image_url":
			product.ImageURL = value.(string)
		case "category_id":
			product.CategoryID = value.(int)
		case "rating":
			product.Rating = value.(float64)
		case "in_stock":
			product.InStock = value.(bool)
		case "is_new":
			product.IsNew = value.(bool)
		case "is_sale":
			product.IsSale = value.(bool)
		case "brand":
			product.Brand = value.(string)
		default:
			r.log.Warnf("Repository: skipping unknown field '%s' in product update for ID %d", key, id)
		}
	}

	r.items[id] = product
	r.log.Infof("Repository: product updated for ID %d", id)
	return &product, nil
}

func (r *memoryProductRepository) DeleteProduct(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		r.log.Warnf("Repository: product with ID %d not found for delete", id)
		return fmt.Errorf("product with id %d: %w", id, domain.ErrNotFound)
	}
	delete(r.items, id)

	r.log.Infof("Repository: product deleted for ID %d", id)
	return nil
}

func (r *memoryProductRepository) ListProducts() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(domain.Product) bool { return true }), nil
}

func (r *memoryProductRepository) ListProductsByCategory(categoryID int) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p domain.Product) bool { return p.CategoryID == categoryID }), nil
}

func (r *memoryProductRepository) SearchProducts(query string) ([]domain.Product, error) {
	lower := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.Description), lower) ||
			strings.Contains(strings.ToLower(p.Brand), lower)
	}), nil
}

// collect copies matching products sorted by ID. Callers hold the lock.
func (r *memoryProductRepository) collect(match func(domain.Product) bool) []domain.Product {
	products := make([]domain.Product, 0)
	for _, p := range r.items {
		if match(p) {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
