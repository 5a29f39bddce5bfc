package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type ProductHandler struct {
	catalog usecase.CatalogUseCase
	log     *logrus.Logger
}

func NewProductHandler(catalog usecase.CatalogUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		log:     logger,
	}
}

// RegisterRoutes wires the public catalog reads and the admin mutators.
// The admin chain is RequireAuth followed by RequireAdmin.
func (h *ProductHandler) RegisterRoutes(api gin.IRouter, admin ...gin.HandlerFunc) {
	products := api.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/:id", h.GetProductByID)

		guarded := products.Group("", admin...)
		guarded.POST("", h.CreateProduct)
		guarded.PATCH("/:id", h.UpdateProduct)
		guarded.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts()
	if err != nil {
		h.log.Errorf("Handler: failed to list products: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch products")
		return
	}
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		ErrorResponse(c, http.StatusBadRequest, "Search query is required")
		return
	}

	products, err := h.catalog.SearchProducts(query)
	if err != nil {
		h.log.Errorf("Handler: failed to search products for '%s': %v", query, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to search products")
		return
	}
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.catalog.GetProductByID(id)
	if err != nil {
		h.log.Warnf("Handler: failed to get product %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve product: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		h.log.Warnf("Handler: failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.catalog.CreateProduct(&product)
	if err != nil {
		h.log.Warnf("Handler: failed to create product '%s': %v", product.Name, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create product: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusCreated, "Product created successfully", created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.log.Warnf("Handler: failed to bind JSON for update product %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updated, err := h.catalog.UpdateProduct(id, updates)
	if err != nil {
		h.log.Warnf("Handler: failed to update product %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update product: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Product updated successfully", updated)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		h.log.Warnf("Handler: failed to delete product %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to delete product: "+err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id route parameter, responding with 400 on garbage.
func pathID(c *gin.Context) (int, bool) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	return id, true
}
