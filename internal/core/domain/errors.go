package domain

import (
	"errors"
	"fmt"
)

var ErrEmptyCart = errors.New("cart is empty")
var ErrProductNotFound = errors.New("product not found")
var ErrOrderNotFound = errors.New("order not found")
var ErrCategoryNotFound = errors.New("category not found")
var ErrCategoryExists = errors.New("category already exists")
var ErrInvalidStatus = errors.New("invalid order status")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// InsufficientStockError is returned by order placement when a product's
// current stock cannot cover the requested quantity. It names the offending
// product so the message can be surfaced to the user verbatim.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

// StockLimitError is returned by the cart when adding one more unit would
// exceed the product's last-observed stock. The cart is left unchanged.
type StockLimitError struct {
	ProductName string
}

func (e *StockLimitError) Error() string {
	return fmt.Sprintf("stock limit reached for %s", e.ProductName)
}
