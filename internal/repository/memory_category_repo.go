package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type memoryCategoryRepository struct {
	mu     sync.RWMutex
	items  map[int]domain.Category
	nextID int
	log    *logrus.Logger
}

func NewMemoryCategoryRepository(logger *logrus.Logger) domain.CategoryRepository {
	return &memoryCategoryRepository{
		items:  make(map[int]domain.Category),
		nextID: 1,
		log:    logger,
	}
}

func (r *memoryCategoryRepository) CreateCategory(category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Slug == category.Slug {
			r.log.Warnf("Repository: category with slug '%s' already exists", category.Slug)
			return nil, fmt.Errorf("category with slug '%s': %w", category.Slug, domain.ErrAlreadyExists)
		}
	}

	created := *category
	created.ID = r.nextID
	r.nextID++
	r.items[created.ID] = created

	r.log.Infof("Repository: category created with ID %d, slug %s", created.ID, created.Slug)
	return &created, nil
}

func (r *memoryCategoryRepository) GetCategoryByID(id int) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("category with id %d: %w", id, domain.ErrNotFound)
	}
	return &category, nil
}

func (r *memoryCategoryRepository) GetCategoryBySlug(slug string) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.items {
		if category.Slug == slug {
			c := category
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category with slug '%s': %w", slug, domain.ErrNotFound)
}

func (r *memoryCategoryRepository) ListCategories() ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.items))
	for _, category := range r.items {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}
