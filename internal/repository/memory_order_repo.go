package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type memoryOrderRepository struct {
	mu         sync.Mutex
	orders     map[int]domain.Order
	orderItems map[int][]domain.OrderItem
	nextOrder  int
	nextItem   int
	log        *logrus.Logger
}

func NewMemoryOrderRepository(logger *logrus.Logger) domain.OrderRepository {
	return &memoryOrderRepository{
		orders:     make(map[int]domain.Order),
		orderItems: make(map[int][]domain.OrderItem),
		nextOrder:  1,
		nextItem:   1,
		log:        logger,
	}
}

func (r *memoryOrderRepository) CreateOrder(order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := *order
	created.ID = r.nextOrder
	r.nextOrder++

	stored := make([]domain.OrderItem, len(items))
	for i, item := range items {
		item.ID = r.nextItem
		r.nextItem++
		item.OrderID = created.ID
		stored[i] = item
	}

	r.orders[created.ID] = created
	r.orderItems[created.ID] = stored

	r.log.Infof("Repository: order %d created with %d items for user %d", created.ID, len(stored), created.UserID)
	return &created, nil
}

func (r *memoryOrderRepository) GetOrderByID(id int) (*domain.Order, []domain.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, nil, fmt.Errorf("order with id %d: %w", id, domain.ErrNotFound)
	}

	items := make([]domain.OrderItem, len(r.orderItems[id]))
	copy(items, r.orderItems[id])
	return &order, items, nil
}

func (r *memoryOrderRepository) ListOrdersByUserID(userID int) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *memoryOrderRepository) ListOrders() ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *memoryOrderRepository) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		r.log.Warnf("Repository: order with ID %d not found for status update", id)
		return nil, fmt.Errorf("order with id %d: %w", id, domain.ErrNotFound)
	}

	order.Status = status
	r.orders[id] = order

	r.log.Infof("Repository: order %d status set to %s", id, status)
	return &order, nil
}
