package ports

import (
	"context"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
)

// PlaceOrderInput carries the parameters for checking out a user's cart.
type PlaceOrderInput struct {
	UserID string
	// IdempotencyKey, when non-empty, makes replays of the same placement
	// return the originally created order without side effects.
	IdempotencyKey string
}

// PlaceOrderResult is returned by PlaceOrder.
type PlaceOrderResult struct {
	Order *domain.Order
	// Message is the human-readable confirmation shown to the user.
	Message string
	// AlreadyExisted is true when the idempotency key matched a previous order.
	AlreadyExisted bool
}

// ListOrdersInput carries the caller identity for role-based filtering:
// admins see every order, users only their own.
type ListOrdersInput struct {
	Role   string
	UserID string
}

// GetOrderInput carries the parameters for retrieving a single order.
type GetOrderInput struct {
	OrderID string
	Role    string
	UserID  string
}

// OrderService defines the checkout and order-management use cases.
type OrderService interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderResult, error)
	ListOrders(ctx context.Context, input ListOrdersInput) ([]*domain.Order, error)
	GetOrder(ctx context.Context, input GetOrderInput) (*domain.Order, error)
	// UpdateStatus sets one of the five accepted status tokens. Admin only.
	UpdateStatus(ctx context.Context, orderID string, status string) (*domain.Order, error)
}
