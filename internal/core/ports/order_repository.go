package ports

import (
	"context"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
)

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	// Place commits the order atomically: every item's stock is decremented
	// with a sufficiency precondition and the order document is inserted, all
	// or nothing. A failed precondition surfaces as InsufficientStockError
	// and leaves no partial writes. On success o.ID is populated.
	Place(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns orders newest first. Empty userID means no owner filter.
	List(ctx context.Context, userID string) ([]*domain.Order, error)
	// UpdateStatus merges the new status into the order document ($set, not
	// replace).
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}
