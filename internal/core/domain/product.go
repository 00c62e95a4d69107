package domain

import "time"

// Product is a catalog entry. Prices are plain USD decimals; Stock is the
// remaining sellable quantity and is never negative (the conditional
// decrement on order placement enforces this at the store).
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	ImageURL    string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CategoryID  string    `json:"category_id,omitempty" bson:"category_id,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Category groups products for browsing. Names are unique.
type Category struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
