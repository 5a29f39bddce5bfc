package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{db: db, log: logger}
}

func (r *postgresOrderRepository) CreateOrder(order *domain.Order, items []domain.OrderItem) (*domain.Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		r.log.Errorf("Repository: failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.log.Errorf("Repository: failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	orderQuery := `
        INSERT INTO orders (user_id, status, total, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	err = tx.QueryRow(orderQuery, order.UserID, order.Status, order.Total, order.CreatedAt).Scan(&order.ID)
	if err != nil {
		r.log.Errorf("Repository: failed to insert order for user %d: %v", order.UserID, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (order_id, product_id, quantity, price)
        VALUES ($1, $2, $3, $4)`
	stmt, err := tx.Prepare(itemQuery)
	if err != nil {
		r.log.Errorf("Repository: failed to prepare order item statement: %v", err)
		return nil, fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range items {
		item := &items[i]
		item.OrderID = order.ID
		if _, err = stmt.Exec(order.ID, item.ProductID, item.Quantity, item.Price); err != nil {
			r.log.Errorf("Repository: failed to insert order item (product %d) for order %d: %v", item.ProductID, order.ID, err)
			return nil, fmt.Errorf("could not create order item (product %d): %w", item.ProductID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.log.Errorf("Repository: failed to commit order transaction: %v", err)
		return nil, fmt.Errorf("could not commit order: %w", err)
	}

	r.log.Infof("Repository: order %d created with %d items for user %d", order.ID, len(items), order.UserID)
	return order, nil
}

func (r *postgresOrderRepository) GetOrderByID(id int) (*domain.Order, []domain.OrderItem, error) {
	order := &domain.Order{}
	err := r.db.QueryRow(`SELECT id, user_id, status, total, created_at FROM orders WHERE id = $1`, id).
		Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("order with id %d: %w", id, domain.ErrNotFound)
		}
		r.log.Errorf("Repository: failed to get order by ID %d: %v", id, err)
		return nil, nil, fmt.Errorf("could not get order by id: %w", err)
	}

	rows, err := r.db.Query(`SELECT id, order_id, product_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		r.log.Errorf("Repository: failed to get items for order %d: %v", id, err)
		return nil, nil, fmt.Errorf("could not get order items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, nil, fmt.Errorf("could not scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("could not iterate order items: %w", err)
	}
	return order, items, nil
}

func (r *postgresOrderRepository) ListOrdersByUserID(userID int) ([]domain.Order, error) {
	return r.queryOrders(`SELECT id, user_id, status, total, created_at FROM orders WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *postgresOrderRepository) ListOrders() ([]domain.Order, error) {
	return r.queryOrders(`SELECT id, user_id, status, total, created_at FROM orders ORDER BY id`)
}

func (r *postgresOrderRepository) queryOrders(query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Errorf("Repository: failed to query orders: %v", err)
		return nil, fmt.Errorf("could not query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.Status, &order.Total, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("could not scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate orders: %w", err)
	}
	return orders, nil
}

func (r *postgresOrderRepository) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	result, err := r.db.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		r.log.Errorf("Repository: failed to update status for order %d: %v", id, err)
		return nil, fmt.Errorf("could not update order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("could not update order status: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: order with ID %d not found for status update", id)
		return nil, fmt.Errorf("order with id %d: %w", id, domain.ErrNotFound)
	}

	r.log.Infof("Repository: order %d status set to %s", id, status)
	order, _, err := r.GetOrderByID(id)
	return order, err
}
