package usecase

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type OrderUseCase interface {
	// PlaceOrder resolves every line against the catalog, snapshots unit
	// prices into order items and persists the order and its items
	// together. Any unknown product aborts the whole placement with
	// nothing committed.
	PlaceOrder(userID int, lines []domain.OrderLine) (*domain.Order, error)

	GetOrder(id int) (*domain.Order, []domain.OrderItem, error)
	GetOrdersForUser(userID int) ([]domain.Order, error)
	ListAllOrders() ([]domain.Order, error)
	UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error)
}

type orderUseCase struct {
	orderRepo   domain.OrderRepository
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewOrderUseCase(oRepo domain.OrderRepository, pRepo domain.ProductRepository, logger *logrus.Logger) OrderUseCase {
	return &orderUseCase{
		orderRepo:   oRepo,
		productRepo: pRepo,
		log:         logger,
	}
}

func (uc *orderUseCase) PlaceOrder(userID int, lines []domain.OrderLine) (*domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id: %w", domain.ErrValidation)
	}
	if len(lines) == 0 {
		uc.log.Warn("Use Case: attempt to place order with no items")
		return nil, fmt.Errorf("order must contain at least one item: %w", domain.ErrValidation)
	}

	items := make([]domain.OrderItem, 0, len(lines))
	total := 0.0
	for i, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("item %d: quantity must be at least 1: %w", i, domain.ErrValidation)
		}

		product, err := uc.productRepo.GetProductByID(line.ProductID)
		if err != nil {
			uc.log.Warnf("Use Case: order placement aborted, product %d cannot be resolved: %v", line.ProductID, err)
			return nil, fmt.Errorf("product with id %d does not exist: %w", line.ProductID, domain.ErrValidation)
		}

		total += product.Price * float64(line.Quantity)
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
	}

	order := &domain.Order{
		UserID:    userID,
		Status:    domain.StatusPending,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}

	created, err := uc.orderRepo.CreateOrder(order, items)
	if err != nil {
		uc.log.Errorf("Use Case: repository failed to create order for user %d: %v", userID, err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	uc.log.Infof("Use Case: order %d placed for user %d, total %.2f, %d items", created.ID, userID, created.Total, len(items))
	return created, nil
}

func (uc *orderUseCase) GetOrder(id int) (*domain.Order, []domain.OrderItem, error) {
	if id <= 0 {
		return nil, nil, fmt.Errorf("invalid order id: %w", domain.ErrValidation)
	}
	return uc.orderRepo.GetOrderByID(id)
}

func (uc *orderUseCase) GetOrdersForUser(userID int) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id: %w", domain.ErrValidation)
	}
	return uc.orderRepo.ListOrdersByUserID(userID)
}

func (uc *orderUseCase) ListAllOrders() ([]domain.Order, error) {
	return uc.orderRepo.ListOrders()
}

// UpdateOrderStatus overwrites the status unconditionally for any of the
// four defined values; no transition is rejected.
func (uc *orderUseCase) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid order id: %w", domain.ErrValidation)
	}
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid order status '%s': %w", status, domain.ErrValidation)
	}

	updated, err := uc.orderRepo.UpdateOrderStatus(id, status)
	if err != nil {
		uc.log.Warnf("Use Case: failed to update status for order %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: order %d status updated to %s", id, status)
	return updated, nil
}
