package service

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

// CartService keeps one in-memory cart per user. Carts are transient: they
// live for the duration of the process and are destroyed on successful order
// placement. A cart quantity never exceeds the product's stock as observed at
// add time.
type CartService struct {
	products ports.ProductRepository
	logger   zerolog.Logger

	mu    sync.Mutex
	carts map[string]map[string]int // userID -> productID -> quantity
}

func NewCartService(products ports.ProductRepository, logger zerolog.Logger) *CartService {
	return &CartService{
		products: products,
		logger:   logger,
		carts:    make(map[string]map[string]int),
	}
}

// AddItem increments the product's quantity by one, capped at current stock.
// At the cap the cart is left unchanged and a StockLimitError naming the
// product is returned. No store writes happen here.
func (s *CartService) AddItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	cart := s.carts[userID]
	if cart == nil {
		cart = make(map[string]int)
		s.carts[userID] = cart
	}
	if cart[productID] >= product.Stock {
		s.mu.Unlock()
		s.logger.Debug().
			Str("user_id", userID).
			Str("product_id", productID).
			Int("stock", product.Stock).
			Msg("add to cart rejected at stock limit")
		return nil, &domain.StockLimitError{ProductName: product.Name}
	}
	cart[productID]++
	s.mu.Unlock()

	return s.Get(ctx, userID)
}

// RemoveItem decrements the product's quantity by one and drops the line when
// it reaches zero. Removing a product that is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	s.mu.Lock()
	if cart, ok := s.carts[userID]; ok {
		if qty, ok := cart[productID]; ok {
			if qty <= 1 {
				delete(cart, productID)
			} else {
				cart[productID] = qty - 1
			}
		}
	}
	s.mu.Unlock()

	return s.Get(ctx, userID)
}

// Get resolves the cart against the current catalog. Lines are ordered by
// product ID; a product missing from the catalog yields a zero-priced line so
// it never inflates the total.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	snapshot := s.Snapshot(userID)

	cart := &domain.Cart{Lines: []domain.CartLine{}}
	if len(snapshot) == 0 {
		return cart, nil
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ids := make([]string, 0, len(snapshot))
	for id := range snapshot {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		qty := snapshot[id]
		line := domain.CartLine{ProductID: id, Quantity: qty}
		if p, ok := byID[id]; ok {
			line.Name = p.Name
			line.UnitPrice = p.Price
			line.LineTotal = p.Price * float64(qty)
		}
		cart.Lines = append(cart.Lines, line)
		cart.Total += line.LineTotal
	}

	return cart, nil
}

// Snapshot returns a copy of the user's raw product->quantity mapping.
func (s *CartService) Snapshot(userID string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.carts[userID]))
	for id, qty := range s.carts[userID] {
		out[id] = qty
	}
	return out
}

// Clear destroys the user's cart.
func (s *CartService) Clear(userID string) {
	s.mu.Lock()
	delete(s.carts, userID)
	s.mu.Unlock()
}
