package delivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/session"
	"storefront/internal/usecase"
)

type testServer struct {
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userRepo := repository.NewMemoryUserRepository(logger)
	categoryRepo := repository.NewMemoryCategoryRepository(logger)
	productRepo := repository.NewMemoryProductRepository(logger)
	orderRepo := repository.NewMemoryOrderRepository(logger)
	require.NoError(t, repository.Seed(userRepo, categoryRepo, productRepo))

	catalogUseCase := usecase.NewCatalogUseCase(productRepo, categoryRepo, logger)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, productRepo, logger)
	userUseCase := usecase.NewUserUseCase(userRepo, logger)

	sessions := session.NewStore(time.Hour)
	requireAuth := middleware.RequireAuth(sessions, userRepo, logger)
	requireAdmin := middleware.RequireAdmin(logger)

	router := gin.New()
	api := router.Group("/api")
	NewAuthHandler(userUseCase, sessions, 3600, logger).RegisterRoutes(api, requireAuth)
	NewProductHandler(catalogUseCase, logger).RegisterRoutes(api, requireAuth, requireAdmin)
	NewCategoryHandler(catalogUseCase, logger).RegisterRoutes(api, requireAuth, requireAdmin)
	NewOrderHandler(orderUseCase, logger).RegisterRoutes(api, requireAuth, requireAdmin)

	return &testServer{router: router}
}

// do performs a request, optionally carrying a session cookie.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("expected a session cookie in the response")
	return nil
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func (s *testServer) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/login", gin.H{"username": username, "password": password}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return sessionCookie(t, rec)
}

func (s *testServer) registerUser(t *testing.T, username string) *http.Cookie {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/register", gin.H{
		"username": username,
		"password": "secret1",
		"email":    username + "@example.com",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return sessionCookie(t, rec)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	// Register logs the new user straight in.
	rec := s.do(t, http.MethodPost, "/api/register", gin.H{
		"username":   "bob",
		"password":   "secret1",
		"email":      "bob@example.com",
		"first_name": "Bob",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret1")
	assert.NotContains(t, rec.Body.String(), "password_hash")
	cookie := sessionCookie(t, rec)

	rec = s.do(t, http.MethodGet, "/api/user", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var user struct {
		Username string `json:"username"`
		IsAdmin  bool   `json:"is_admin"`
	}
	decodeData(t, rec, &user)
	assert.Equal(t, "bob", user.Username)
	assert.False(t, user.IsAdmin)

	// Logout invalidates the session.
	rec = s.do(t, http.MethodPost, "/api/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/user", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Login works again with the same credentials.
	cookie = s.login(t, "bob", "secret1")
	rec = s.do(t, http.MethodGet, "/api/user", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestServer(t)

	s.registerUser(t, "bob")

	rec := s.do(t, http.MethodPost, "/api/register", gin.H{
		"username": "bob",
		"password": "secret1",
		"email":    "second@example.com",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/login", gin.H{"username": "admin", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProducts_PublicReads(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/products", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []struct {
		Name string `json:"name"`
	}
	decodeData(t, rec, &products)
	assert.Len(t, products, 8)

	rec = s.do(t, http.MethodGet, "/api/products/search?q=nike", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Nike Air Max", products[0].Name)

	rec = s.do(t, http.MethodGet, "/api/products/search?q=xyzzy", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &products)
	assert.Empty(t, products)

	rec = s.do(t, http.MethodGet, "/api/products/9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/products/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProducts_AdminGuard(t *testing.T) {
	s := newTestServer(t)

	body := gin.H{
		"name":        "New Thing",
		"description": "A thing",
		"price":       10.0,
		"image_url":   "https://example.com/t.jpg",
		"category_id": 1,
	}

	// Unauthenticated.
	rec := s.do(t, http.MethodPost, "/api/products", body, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated but not admin.
	userCookie := s.registerUser(t, "bob")
	rec = s.do(t, http.MethodPost, "/api/products", body, userCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin.
	adminCookie := s.login(t, "admin", "admin123")
	rec = s.do(t, http.MethodPost, "/api/products", body, adminCookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int `json:"id"`
	}
	decodeData(t, rec, &created)
	assert.NotZero(t, created.ID)

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/api/products/%d", created.ID), gin.H{"price": 12.5}, adminCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil, adminCookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", created.ID), nil, adminCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/categories", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var categories []struct {
		ID   int    `json:"id"`
		Slug string `json:"slug"`
	}
	decodeData(t, rec, &categories)
	assert.Len(t, categories, 6)

	rec = s.do(t, http.MethodGet, "/api/categories/slug/electronics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var category struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	decodeData(t, rec, &category)
	assert.Equal(t, "Electronics", category.Name)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/categories/%d/products", category.ID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []struct {
		CategoryID int `json:"category_id"`
	}
	decodeData(t, rec, &products)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, category.ID, p.CategoryID)
	}

	adminCookie := s.login(t, "admin", "admin123")
	rec = s.do(t, http.MethodPost, "/api/categories", gin.H{"name": "Toys", "slug": "toys"}, adminCookie)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/categories", gin.H{"name": "Toys 2", "slug": "toys"}, adminCookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestOrders_EndToEnd(t *testing.T) {
	s := newTestServer(t)
	cookie := s.registerUser(t, "bob")

	// Unauthenticated placement is rejected.
	rec := s.do(t, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"product_id": 2, "quantity": 2}}}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Seeded product 2 is the Smart Watch Pro at 199.99.
	rec = s.do(t, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"product_id": 2, "quantity": 2}}}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var order struct {
		ID     int     `json:"id"`
		Total  float64 `json:"total"`
		Status string  `json:"status"`
	}
	decodeData(t, rec, &order)
	assert.Equal(t, 399.98, order.Total)
	assert.Equal(t, "pending", order.Status)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Order struct {
			Total float64 `json:"total"`
		} `json:"order"`
		Items []struct {
			Price    float64 `json:"price"`
			Quantity int     `json:"quantity"`
		} `json:"items"`
	}
	decodeData(t, rec, &detail)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 199.99, detail.Items[0].Price)
	assert.Equal(t, 2, detail.Items[0].Quantity)

	rec = s.do(t, http.MethodGet, "/api/user/orders", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []struct {
		ID int `json:"id"`
	}
	decodeData(t, rec, &mine)
	assert.Len(t, mine, 1)

	// Another user cannot read bob's order; an admin can.
	otherCookie := s.registerUser(t, "eve")
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil, otherCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminCookie := s.login(t, "admin", "admin123")
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil, adminCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Admin-only listing and status updates.
	rec = s.do(t, http.MethodGet, "/api/orders", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/orders", nil, adminCookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "completed"}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "pending"}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code, "completed back to pending is allowed")

	rec = s.do(t, http.MethodPatch, fmt.Sprintf("/api/orders/%d/status", order.ID), gin.H{"status": "shipped"}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrders_UnknownProductRejected(t *testing.T) {
	s := newTestServer(t)
	cookie := s.registerUser(t, "bob")

	rec := s.do(t, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{
		{"product_id": 1, "quantity": 1},
		{"product_id": 9999, "quantity": 1},
	}}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/user/orders", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []struct {
		ID int `json:"id"`
	}
	decodeData(t, rec, &mine)
	assert.Empty(t, mine, "failed placement leaves no partial order behind")
}
