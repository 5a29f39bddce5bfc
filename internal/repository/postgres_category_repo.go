package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{db: db, log: logger}
}

func (r *postgresCategoryRepository) CreateCategory(category *domain.Category) (*domain.Category, error) {
	query := `
        INSERT INTO categories (name, slug)
        VALUES ($1, $2)
        RETURNING id`

	err := r.db.QueryRow(query, category.Name, category.Slug).Scan(&category.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Repository: category with slug '%s' already exists", category.Slug)
			return nil, fmt.Errorf("category with slug '%s': %w", category.Slug, domain.ErrAlreadyExists)
		}
		r.log.Errorf("Repository: failed to create category '%s': %v", category.Slug, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}

	r.log.Infof("Repository: category created with ID %d, slug %s", category.ID, category.Slug)
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(id int) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.db.QueryRow(`SELECT id, name, slug FROM categories WHERE id = $1`, id).
		Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryBySlug(slug string) (*domain.Category, error) {
	category := &domain.Category{}
	err := r.db.QueryRow(`SELECT id, name, slug FROM categories WHERE slug = $1`, slug).
		Scan(&category.ID, &category.Name, &category.Slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category with slug '%s': %w", slug, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: failed to get category by slug '%s': %v", slug, err)
		return nil, fmt.Errorf("could not get category by slug: %w", err)
	}
	return category, nil
}

func (r *postgresCategoryRepository) ListCategories() ([]domain.Category, error) {
	rows, err := r.db.Query(`SELECT id, name, slug FROM categories ORDER BY id`)
	if err != nil {
		r.log.Errorf("Repository: failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug); err != nil {
			return nil, fmt.Errorf("could not scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate categories: %w", err)
	}
	return categories, nil
}
