package ports

import (
	"context"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
)

// CreateProductInput carries all data needed to create a catalog product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
	CategoryID  string
}

// UpdateProductInput is a partial update: nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	ImageURL    *string
	CategoryID  *string
}

// CatalogService defines use-case operations on the product catalog and its
// categories. Listing is public; mutations are admin operations gated by the
// transport layer.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
