package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

// IdempotencyStore abstracts the replay-detection store (Redis). A key that
// has been remembered maps back to the order it produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID, key string) (orderID string, ok bool, err error)
	Remember(ctx context.Context, userID, key, orderID string) error
}

// OrderService implements checkout and order management.
type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	carts    ports.CartService
	idem     IdempotencyStore
	logger   zerolog.Logger
}

func NewOrderService(
	orders ports.OrderRepository,
	products ports.ProductRepository,
	carts ports.CartService,
	idem IdempotencyStore,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		carts:    carts,
		idem:     idem,
		logger:   logger,
	}
}

// PlaceOrder checks out the user's cart:
//
//  1. A replayed idempotency key returns the original order, no side
//     effects. This runs first: the usual retry follows a success that has
//     already cleared the cart.
//  2. An empty cart fails with ErrEmptyCart before any store call.
//  3. Items are snapshotted with the product name and price at this instant;
//     the total is fixed here and never recomputed.
//  4. Stock is pre-validated against the catalog so obvious shortfalls fail
//     before any write. This check is a courtesy only; the commit below is
//     what actually guarantees sufficiency.
//  5. The repository commits atomically: every decrement carries a stock
//     precondition and the order insert rides the same transaction, so a
//     shortfall at commit time leaves no partial writes.
//
// On success the cart is cleared. On any failure the cart is untouched so the
// user can retry; there are no automatic retries.
func (s *OrderService) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	// Replay must be resolved before the cart is inspected: the canonical
	// retry arrives after a success already cleared the cart.
	if input.IdempotencyKey != "" {
		if existing := s.replayedOrder(ctx, input.UserID, input.IdempotencyKey); existing != nil {
			return &ports.PlaceOrderResult{
				Order:          existing,
				Message:        fmt.Sprintf("order placed, total %s", domain.FormatUSD(existing.Total)),
				AlreadyExisted: true,
			}, nil
		}
	}

	snapshot := s.carts.Snapshot(input.UserID)
	if len(snapshot) == 0 {
		return nil, domain.ErrEmptyCart
	}

	items, total, err := s.snapshotItems(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:         input.UserID,
		Items:          items,
		Total:          total,
		Status:         domain.StatusPending,
		CreatedAt:      time.Now().UTC(),
		IdempotencyKey: input.IdempotencyKey,
	}

	if err := s.orders.Place(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("order placement failed")
		return nil, err
	}

	if input.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, input.UserID, input.IdempotencyKey, order.ID); err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to remember idempotency key")
		}
	}

	s.carts.Clear(input.UserID)

	s.logger.Info().
		Str("order_id", order.ID).
		Str("user_id", input.UserID).
		Int("items", len(order.Items)).
		Float64("total", order.Total).
		Msg("order placed")

	return &ports.PlaceOrderResult{
		Order:   order,
		Message: fmt.Sprintf("order placed, total %s", domain.FormatUSD(order.Total)),
	}, nil
}

// replayedOrder returns the previously created order for this key, or nil.
// Idempotency lookups are best effort: a broken store degrades to normal
// placement rather than blocking checkout.
func (s *OrderService) replayedOrder(ctx context.Context, userID, key string) *domain.Order {
	orderID, ok, err := s.idem.Lookup(ctx, userID, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("idempotency lookup failed, placing anyway")
		return nil
	}
	if !ok {
		return nil
	}

	existing, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		s.logger.Warn().Err(err).Str("order_id", orderID).Msg("idempotency key points at missing order")
		return nil
	}

	s.logger.Info().Str("order_id", orderID).Str("user_id", userID).Msg("idempotent replay")
	return existing
}

// snapshotItems resolves every cart line against the current catalog,
// capturing name and price-at-purchase, and pre-validates stock. Lines are
// ordered by product ID so the order's item sequence is deterministic.
func (s *OrderService) snapshotItems(ctx context.Context, cart map[string]int) ([]domain.OrderItem, float64, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("load catalog: %w", err)
	}
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var items []domain.OrderItem
	var total float64
	for _, id := range ids {
		qty := cart[id]
		p, ok := byID[id]
		if !ok {
			// Deleted from the catalog since it was added; no name survives.
			return nil, 0, &domain.InsufficientStockError{ProductName: id}
		}
		if p.Stock < qty {
			return nil, 0, &domain.InsufficientStockError{ProductName: p.Name}
		}
		items = append(items, domain.OrderItem{
			ProductID:       id,
			Name:            p.Name,
			Quantity:        qty,
			PriceAtPurchase: p.Price,
		})
		total += p.Price * float64(qty)
	}

	return items, total, nil
}

// ListOrders returns orders visible to the caller: every order for admins,
// only the caller's own orders otherwise.
func (s *OrderService) ListOrders(ctx context.Context, input ports.ListOrdersInput) ([]*domain.Order, error) {
	owner := input.UserID
	if input.Role == domain.RoleAdmin {
		owner = ""
	}
	return s.orders.List(ctx, owner)
}

// GetOrder returns a single order; non-admin callers may only read their own.
func (s *OrderService) GetOrder(ctx context.Context, input ports.GetOrderInput) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if input.Role != domain.RoleAdmin && order.UserID != input.UserID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// UpdateStatus sets the order's status to one of the five accepted tokens.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status string) (*domain.Order, error) {
	next := domain.OrderStatus(status)
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", orderID).Str("status", status).Msg("order status updated")
	return s.orders.FindByID(ctx, orderID)
}
