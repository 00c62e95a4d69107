package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

// CatalogService implements product and category management.
type CatalogService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewCatalogService(products ports.ProductRepository, categories ports.CategoryRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, logger: logger}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

// UpdateProduct merges the provided fields into the product document; nil
// fields stay untouched.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	fields := make(map[string]any)
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}
	if input.Stock != nil {
		fields["stock"] = *input.Stock
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if input.CategoryID != nil {
		fields["category_id"] = *input.CategoryID
	}

	if len(fields) == 0 {
		return s.products.FindByID(ctx, id)
	}
	fields["updated_at"] = time.Now().UTC()

	updated, err := s.products.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", id).Int("fields", len(fields)-1).Msg("product updated")
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	created, err := s.categories.Create(ctx, &domain.Category{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("category_id", created.ID).Str("name", name).Msg("category created")
	return created, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}
