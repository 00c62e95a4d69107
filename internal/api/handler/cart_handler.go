package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aro-bazzar/storefront-api/internal/api/metrics"
	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

// CartHandler handles the authenticated user's transient cart.
type CartHandler struct {
	cart ports.CartService
}

func NewCartHandler(cart ports.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// Get handles GET /v1/cart — the cart resolved against current catalog
// prices.
func (h *CartHandler) Get(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.Get(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// AddItem handles POST /v1/cart/items — adds one unit of the product, capped
// at its current stock.
func (h *CartHandler) AddItem(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	cart, err := h.cart.AddItem(c.Request().Context(), uid, req.ProductID)
	if err != nil {
		var limit *domain.StockLimitError
		if errors.As(err, &limit) {
			metrics.CartAddsTotal.WithLabelValues("stock_limit").Inc()
		}
		return err
	}

	metrics.CartAddsTotal.WithLabelValues("added").Inc()
	return c.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /v1/cart/items/:id — removes one unit; removing
// a product that is not in the cart is a no-op.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	uid, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	cart, err := h.cart.RemoveItem(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}
