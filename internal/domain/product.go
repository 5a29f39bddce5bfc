package domain

type Product struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	ShortDescription string  `json:"short_description,omitempty"`
	Price            float64 `json:"price"`
	ImageURL         string  `json:"image_url"`
	CategoryID       int     `json:"category_id"`
	Rating           float64 `json:"rating,omitempty"`
	InStock          bool    `json:"in_stock"`
	IsNew            bool    `json:"is_new"`
	IsSale           bool    `json:"is_sale"`
	Brand            string  `json:"brand,omitempty"`
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id int) (*Product, error)

	// UpdateProduct applies a partial update; unknown keys are rejected
	// before the repository is reached.
	UpdateProduct(id int, updates map[string]interface{}) (*Product, error)

	DeleteProduct(id int) error
	ListProducts() ([]Product, error)
	ListProductsByCategory(categoryID int) ([]Product, error)
	SearchProducts(query string) ([]Product, error)
}
