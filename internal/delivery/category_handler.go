package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type CategoryHandler struct {
	catalog usecase.CatalogUseCase
	log     *logrus.Logger
}

func NewCategoryHandler(catalog usecase.CatalogUseCase, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		catalog: catalog,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(api gin.IRouter, admin ...gin.HandlerFunc) {
	categories := api.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.GET("/:id/products", h.ListCategoryProducts)
		categories.GET("/slug/:slug", h.GetCategoryBySlug)

		guarded := categories.Group("", admin...)
		guarded.POST("", h.CreateCategory)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.ListCategories()
	if err != nil {
		h.log.Errorf("Handler: failed to list categories: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch categories")
		return
	}
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.catalog.GetCategoryByID(id)
	if err != nil {
		h.log.Warnf("Handler: failed to get category %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve category: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("slug")

	category, err := h.catalog.GetCategoryBySlug(slug)
	if err != nil {
		h.log.Warnf("Handler: failed to get category by slug '%s': %v", slug, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve category: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Category retrieved successfully", category)
}

func (h *CategoryHandler) ListCategoryProducts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	products, err := h.catalog.ListProductsByCategory(id)
	if err != nil {
		h.log.Warnf("Handler: failed to list products for category %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch products by category")
		return
	}
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", products)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var category domain.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		h.log.Warnf("Handler: failed to bind JSON for create category: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.catalog.CreateCategory(&category)
	if err != nil {
		h.log.Warnf("Handler: failed to create category '%s': %v", category.Slug, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create category: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusCreated, "Category created successfully", created)
}
