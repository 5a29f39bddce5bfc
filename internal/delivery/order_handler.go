package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

type OrderHandler struct {
	orders usecase.OrderUseCase
	log    *logrus.Logger
}

func NewOrderHandler(orders usecase.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		log:    logger,
	}
}

type placeOrderRequest struct {
	Items []domain.OrderLine `json:"items" binding:"required"`
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type orderWithItems struct {
	Order *domain.Order      `json:"order"`
	Items []domain.OrderItem `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(api gin.IRouter, auth gin.HandlerFunc, admin ...gin.HandlerFunc) {
	orders := api.Group("/orders", auth)
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("/:id", h.GetOrder)

		guarded := orders.Group("", admin...)
		guarded.GET("", h.ListAllOrders)
		guarded.PATCH("/:id/status", h.UpdateOrderStatus)
	}

	api.GET("/user/orders", auth, h.ListUserOrders)
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: failed to bind JSON for place order: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.PlaceOrder(user.ID, req.Items)
	if err != nil {
		h.log.Warnf("Handler: failed to place order for user %d: %v", user.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to create order: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusCreated, "Order created successfully", order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	user := middleware.CurrentUser(c)

	id, ok := pathID(c)
	if !ok {
		return
	}

	order, items, err := h.orders.GetOrder(id)
	if err != nil {
		h.log.Warnf("Handler: failed to get order %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve order: "+err.Error())
		return
	}

	// Orders are visible to their owner and to admins only.
	if order.UserID != user.ID && !user.IsAdmin {
		h.log.Warnf("Handler: user %d denied access to order %d owned by user %d", user.ID, id, order.UserID)
		ErrorResponse(c, http.StatusForbidden, "Forbidden")
		return
	}

	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", orderWithItems{Order: order, Items: items})
}

func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orders.GetOrdersForUser(user.ID)
	if err != nil {
		h.log.Errorf("Handler: failed to list orders for user %d: %v", user.ID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch user orders")
		return
	}
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.orders.ListAllOrders()
	if err != nil {
		h.log.Errorf("Handler: failed to list all orders: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to fetch orders")
		return
	}
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Handler: failed to bind JSON for order status update %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.orders.UpdateOrderStatus(id, req.Status)
	if err != nil {
		h.log.Warnf("Handler: failed to update status for order %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to update order status: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Order status updated successfully", order)
}
