package usecase

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type orderFixture struct {
	orders  OrderUseCase
	catalog CatalogUseCase
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	logger := testLogger()

	productRepo := repository.NewMemoryProductRepository(logger)
	categoryRepo := repository.NewMemoryCategoryRepository(logger)
	orderRepo := repository.NewMemoryOrderRepository(logger)

	return &orderFixture{
		orders:  NewOrderUseCase(orderRepo, productRepo, logger),
		catalog: NewCatalogUseCase(productRepo, categoryRepo, logger),
	}
}

func (f *orderFixture) addProduct(t *testing.T, name string, price float64, categoryID int) *domain.Product {
	t.Helper()
	product, err := f.catalog.CreateProduct(&domain.Product{
		Name:        name,
		Description: name + " description",
		Price:       price,
		ImageURL:    "https://example.com/p.jpg",
		CategoryID:  categoryID,
		InStock:     true,
	})
	require.NoError(t, err)
	return product
}

func (f *orderFixture) addCategory(t *testing.T, name, slug string) *domain.Category {
	t.Helper()
	category, err := f.catalog.CreateCategory(&domain.Category{Name: name, Slug: slug})
	require.NoError(t, err)
	return category
}

func TestPlaceOrder_ComputesTotalFromCatalogPrices(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	watch := f.addProduct(t, "Smart Watch", 199.99, cat.ID)
	buds := f.addProduct(t, "Earbuds", 79.99, cat.ID)

	order, err := f.orders.PlaceOrder(1, []domain.OrderLine{
		{ProductID: watch.ID, Quantity: 2},
		{ProductID: buds.ID, Quantity: 3},
	})
	require.NoError(t, err)

	assert.InDelta(t, 2*199.99+3*79.99, order.Total, 1e-9)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())

	_, items, err := f.orders.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 2, "one persisted item per line request")
	assert.Equal(t, 199.99, items[0].Price)
	assert.Equal(t, 79.99, items[1].Price)
}

func TestPlaceOrder_ElectronicsScenario(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	product := f.addProduct(t, "Smart Watch Pro", 199.99, cat.ID)

	order, err := f.orders.PlaceOrder(1, []domain.OrderLine{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, 399.98, order.Total)

	_, items, err := f.orders.GetOrder(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 199.99, items[0].Price)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestPlaceOrder_PriceSnapshotSurvivesProductPriceChange(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	product := f.addProduct(t, "Camera", 499.99, cat.ID)

	order, err := f.orders.PlaceOrder(1, []domain.OrderLine{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = f.catalog.UpdateProduct(product.ID, map[string]interface{}{"price": 999.99})
	require.NoError(t, err)

	got, items, err := f.orders.GetOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 499.99, got.Total)
	assert.Equal(t, 499.99, items[0].Price)
}

func TestPlaceOrder_UnknownProductAbortsWholeOrder(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	product := f.addProduct(t, "Camera", 499.99, cat.ID)

	_, err := f.orders.PlaceOrder(1, []domain.OrderLine{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	orders, err := f.orders.ListAllOrders()
	require.NoError(t, err)
	assert.Empty(t, orders, "nothing persists when any line is invalid")
}

func TestPlaceOrder_Validation(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	product := f.addProduct(t, "Camera", 499.99, cat.ID)

	tests := []struct {
		name   string
		userID int
		lines  []domain.OrderLine
	}{
		{"no items", 1, nil},
		{"zero quantity", 1, []domain.OrderLine{{ProductID: product.ID, Quantity: 0}}},
		{"negative quantity", 1, []domain.OrderLine{{ProductID: product.ID, Quantity: -2}}},
		{"invalid user", 0, []domain.OrderLine{{ProductID: product.ID, Quantity: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.PlaceOrder(tt.userID, tt.lines)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUpdateOrderStatus_AnyTransitionIsAccepted(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	product := f.addProduct(t, "Camera", 499.99, cat.ID)

	order, err := f.orders.PlaceOrder(1, []domain.OrderLine{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	// Every status may replace every other, including completed back to
	// pending.
	sequence := []domain.OrderStatus{
		domain.StatusProcessing,
		domain.StatusCompleted,
		domain.StatusPending,
		domain.StatusCancelled,
		domain.StatusCompleted,
	}
	for _, status := range sequence {
		updated, err := f.orders.UpdateOrderStatus(order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestUpdateOrderStatus_RejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	product := f.addProduct(t, "Camera", 499.99, cat.ID)

	order, err := f.orders.PlaceOrder(1, []domain.OrderLine{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)

	_, err = f.orders.UpdateOrderStatus(order.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetOrdersForUser_FiltersByOwner(t *testing.T) {
	f := newOrderFixture(t)
	cat := f.addCategory(t, "Electronics", "electronics")
	product := f.addProduct(t, "Camera", 499.99, cat.ID)

	_, err := f.orders.PlaceOrder(1, []domain.OrderLine{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)
	_, err = f.orders.PlaceOrder(2, []domain.OrderLine{{ProductID: product.ID, Quantity: 2}})
	require.NoError(t, err)

	mine, err := f.orders.GetOrdersForUser(1)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.orders.ListAllOrders()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetOrder_NotFound(t *testing.T) {
	f := newOrderFixture(t)

	_, _, err := f.orders.GetOrder(42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
