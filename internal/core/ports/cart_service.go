package ports

import (
	"context"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
)

// CartService maintains one transient cart per user. Quantities never exceed
// the product's stock as last observed at add time; the cart is destroyed on
// successful order placement or process restart.
type CartService interface {
	// AddItem increments the product's quantity by one if one more unit is
	// still covered by current stock; otherwise the cart is unchanged and a
	// StockLimitError naming the product is returned.
	AddItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	// RemoveItem decrements by one, dropping the line when it reaches zero.
	// Removing an absent product is a no-op.
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	// Get resolves the cart against current catalog prices. Products that no
	// longer exist contribute zero to the total.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// Snapshot returns a copy of the raw product->quantity mapping.
	Snapshot(userID string) map[string]int
	Clear(userID string)
}
