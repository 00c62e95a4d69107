package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/aro-bazzar/storefront-api/internal/api/metrics"
	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

// OrderHandler handles checkout and order management.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type placeOrderResponse struct {
	Order   *domain.Order `json:"order"`
	Message string        `json:"message"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Place handles POST /v1/orders — checks out the caller's cart. An optional
// Idempotency-Key header makes retries of the same submission safe: a replay
// returns the original order with 200 instead of creating a second one.
func (h *OrderHandler) Place(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := h.orders.PlaceOrder(c.Request().Context(), ports.PlaceOrderInput{
		UserID:         uid,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		metrics.OrdersRejectedTotal.WithLabelValues(rejectionReason(err)).Inc()
		return err
	}

	metrics.OrderPlacementDuration.Observe(time.Since(start).Seconds())

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	} else {
		metrics.OrdersPlacedTotal.Inc()
	}

	return c.JSON(status, placeOrderResponse{
		Order:   result.Order,
		Message: result.Message,
	})
}

// rejectionReason buckets a placement failure for the rejection counter.
func rejectionReason(err error) string {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.As(err, &insufficient):
		return "insufficient_stock"
	default:
		return "store_error"
	}
}

// List handles GET /v1/orders — admins see every order, users only their own,
// newest first.
func (h *OrderHandler) List(c echo.Context) error {
	uid, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.orders.ListOrders(c.Request().Context(), ports.ListOrdersInput{
		Role:   role,
		UserID: uid,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /v1/orders/:id — an order is visible to its owner and to
// admins only.
func (h *OrderHandler) Get(c echo.Context) error {
	uid, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.Request().Context(), ports.GetOrderInput{
		OrderID: c.Param("id"),
		Role:    role,
		UserID:  uid,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// UpdateStatus handles PUT /v1/orders/:id/status — admin sets one of the five
// accepted status tokens.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}
