package domain

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryRepository interface {
	CreateCategory(category *Category) (*Category, error)
	GetCategoryByID(id int) (*Category, error)
	GetCategoryBySlug(slug string) (*Category, error)
	ListCategories() ([]Category, error)
}
