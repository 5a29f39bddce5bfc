package usecase

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type CatalogUseCase interface {
	ListProducts() ([]domain.Product, error)
	GetProductByID(id int) (*domain.Product, error)
	ListProductsByCategory(categoryID int) ([]domain.Product, error)
	SearchProducts(query string) ([]domain.Product, error)
	CreateProduct(product *domain.Product) (*domain.Product, error)
	UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error)
	DeleteProduct(id int) error

	ListCategories() ([]domain.Category, error)
	GetCategoryByID(id int) (*domain.Category, error)
	GetCategoryBySlug(slug string) (*domain.Category, error)
	CreateCategory(category *domain.Category) (*domain.Category, error)
}

type catalogUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewCatalogUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) CatalogUseCase {
	return &catalogUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

func (uc *catalogUseCase) ListProducts() ([]domain.Product, error) {
	return uc.productRepo.ListProducts()
}

func (uc *catalogUseCase) GetProductByID(id int) (*domain.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrValidation)
	}
	return uc.productRepo.GetProductByID(id)
}

func (uc *catalogUseCase) ListProductsByCategory(categoryID int) ([]domain.Product, error) {
	if categoryID <= 0 {
		return nil, fmt.Errorf("invalid category id: %w", domain.ErrValidation)
	}
	return uc.productRepo.ListProductsByCategory(categoryID)
}

func (uc *catalogUseCase) SearchProducts(query string) ([]domain.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query cannot be empty: %w", domain.ErrValidation)
	}
	return uc.productRepo.SearchProducts(query)
}

func (uc *catalogUseCase) CreateProduct(product *domain.Product) (*domain.Product, error) {
	if err := validateProduct(product); err != nil {
		uc.log.Warnf("Use Case: product validation failed: %v", err)
		return nil, err
	}
	if _, err := uc.categoryRepo.GetCategoryByID(product.CategoryID); err != nil {
		uc.log.Warnf("Use Case: category ID %d not found during product creation", product.CategoryID)
		return nil, fmt.Errorf("category with id %d does not exist: %w", product.CategoryID, domain.ErrValidation)
	}

	created, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: product '%s' created with ID %d", created.Name, created.ID)
	return created, nil
}

func (uc *catalogUseCase) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid product id: %w", domain.ErrValidation)
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields provided for update: %w", domain.ErrValidation)
	}

	validUpdates := make(map[string]interface{})
	for key, value := range updates {
		switch key {
		case "name", "description", "short_description", "image_url", "brand":
			s, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field '%s' must be a string: %w", key, domain.ErrValidation)
			}
			if key == "name" && s == "" {
				return nil, fmt.Errorf("product name cannot be empty: %w", domain.ErrValidation)
			}
			validUpdates[key] = s
		case "price":
			price, ok := value.(float64)
			if !ok || price <= 0 {
				return nil, fmt.Errorf("product price must be positive: %w", domain.ErrValidation)
			}
			validUpdates[key] = price
		case "rating":
			rating, ok := value.(float64)
			if !ok || rating < 0 || rating > 5 {
				return nil, fmt.Errorf("product rating must be between 0 and 5: %w", domain.ErrValidation)
			}
			validUpdates[key] = rating
		case "category_id":
			catID, err := toInt(value)
			if err != nil || catID <= 0 {
				return nil, fmt.Errorf("invalid category_id: %w", domain.ErrValidation)
			}
			if _, err := uc.categoryRepo.GetCategoryByID(catID); err != nil {
				return nil, fmt.Errorf("category with id %d does not exist: %w", catID, domain.ErrValidation)
			}
			validUpdates[key] = catID
		case "in_stock", "is_new", "is_sale":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("field '%s' must be a boolean: %w", key, domain.ErrValidation)
			}
			validUpdates[key] = b
		default:
			return nil, fmt.Errorf("unknown field '%s': %w", key, domain.ErrValidation)
		}
	}

	updated, err := uc.productRepo.UpdateProduct(id, validUpdates)
	if err != nil {
		uc.log.Warnf("Use Case: failed to update product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: product updated for ID %d", id)
	return updated, nil
}

func (uc *catalogUseCase) DeleteProduct(id int) error {
	if id <= 0 {
		return fmt.Errorf("invalid product id: %w", domain.ErrValidation)
	}
	if err := uc.productRepo.DeleteProduct(id); err != nil {
		uc.log.Warnf("Use Case: failed to delete product ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: product deleted for ID %d", id)
	return nil
}

func (uc *catalogUseCase) ListCategories() ([]domain.Category, error) {
	return uc.categoryRepo.ListCategories()
}

func (uc *catalogUseCase) GetCategoryByID(id int) (*domain.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid category id: %w", domain.ErrValidation)
	}
	return uc.categoryRepo.GetCategoryByID(id)
}

func (uc *catalogUseCase) GetCategoryBySlug(slug string) (*domain.Category, error) {
	if slug == "" {
		return nil, fmt.Errorf("category slug cannot be empty: %w", domain.ErrValidation)
	}
	return uc.categoryRepo.GetCategoryBySlug(slug)
}

func (uc *catalogUseCase) CreateCategory(category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, fmt.Errorf("category name cannot be empty: %w", domain.ErrValidation)
	}
	if category.Slug == "" {
		return nil, fmt.Errorf("category slug cannot be empty: %w", domain.ErrValidation)
	}

	created, err := uc.categoryRepo.CreateCategory(category)
	if err != nil {
		uc.log.Warnf("Use Case: failed to create category '%s': %v", category.Slug, err)
		return nil, err
	}

	uc.log.Infof("Use Case: category '%s' created with ID %d", created.Slug, created.ID)
	return created, nil
}

func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("product name cannot be empty: %w", domain.ErrValidation)
	}
	if product.Description == "" {
		return fmt.Errorf("product description cannot be empty: %w", domain.ErrValidation)
	}
	if product.Price <= 0 {
		return fmt.Errorf("product price must be positive: %w", domain.ErrValidation)
	}
	if product.ImageURL == "" {
		return fmt.Errorf("product image url cannot be empty: %w", domain.ErrValidation)
	}
	if product.Rating < 0 || product.Rating > 5 {
		return fmt.Errorf("product rating must be between 0 and 5: %w", domain.ErrValidation)
	}
	return nil
}

// toInt accepts JSON numbers as well as plain ints; it rejects values
// that would lose precision.
func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case float64:
		if float64(int(v)) != v {
			return 0, fmt.Errorf("value %v is not an integer", v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("value %v is not an integer", value)
	}
}
