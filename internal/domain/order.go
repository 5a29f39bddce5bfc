package domain

import "time"

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (os OrderStatus) String() string {
	return string(os)
}

// IsValidStatus reports whether status is one of the four defined values.
// Any valid status may replace any other; there is no transition graph.
func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem carries the unit price snapshotted at order-creation time;
// later product price changes never move an existing order's total.
type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderLine is one product/quantity pair of a placement request.
type OrderLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type OrderRepository interface {
	// CreateOrder persists the order and its items together. Either all
	// rows land or none do.
	CreateOrder(order *Order, items []OrderItem) (*Order, error)

	GetOrderByID(id int) (*Order, []OrderItem, error)
	ListOrdersByUserID(userID int) ([]Order, error)
	ListOrders() ([]Order, error)
	UpdateOrderStatus(id int, status OrderStatus) (*Order, error)
}
