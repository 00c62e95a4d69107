package domain

import "time"

// OrderStatus is the lifecycle state of an order. Exactly these five tokens
// are accepted by the admin status update, case included, and persisted
// verbatim; no transition restrictions apply.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	StatusPending:    {},
	StatusProcessing: {},
	StatusShipped:    {},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// Valid reports whether s is one of the five accepted status tokens.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// OrderItem is a line of an order. PriceAtPurchase is the product price
// captured at order-creation time and is immune to later catalog changes.
type OrderItem struct {
	ProductID       string  `json:"product_id" bson:"product_id"`
	Name            string  `json:"name" bson:"name"`
	Quantity        int     `json:"quantity" bson:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase" bson:"price_at_purchase"`
}

// Order is created once by the checkout workflow and never deleted. Total is
// fixed at creation: the sum over items of price-at-purchase times quantity.
type Order struct {
	ID             string      `json:"id" bson:"_id,omitempty"`
	UserID         string      `json:"user_id" bson:"user_id"`
	Items          []OrderItem `json:"items" bson:"items"`
	Total          float64     `json:"total" bson:"total"`
	Status         OrderStatus `json:"status" bson:"status"`
	CreatedAt      time.Time   `json:"created_at" bson:"created_at"`
	IdempotencyKey string      `json:"-" bson:"idempotency_key,omitempty"`
}
