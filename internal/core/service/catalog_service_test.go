package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

type stubCategoryRepo struct {
	categories map[string]*domain.Category
	nextID     int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	out := make([]*domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return nil, domain.ErrCategoryExists
		}
	}
	r.nextID++
	clone := *c
	clone.ID = fmt.Sprintf("cat%d", r.nextID)
	r.categories[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}

func newCatalog() (*CatalogService, *stubProductRepo, *stubCategoryRepo) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	return NewCatalogService(products, categories, discardLogger), products, categories
}

func TestCatalogService_CreateProduct(t *testing.T) {
	svc, repo, _ := newCatalog()

	created, err := svc.CreateProduct(context.Background(), ports.CreateProductInput{
		Name:  "Laptop",
		Price: 1200,
		Stock: 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected store-assigned ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("timestamps must be set")
	}
	if _, ok := repo.products[created.ID]; !ok {
		t.Fatal("product not persisted")
	}
}

func TestCatalogService_UpdateProduct_PartialMerge(t *testing.T) {
	svc, repo, _ := newCatalog()
	repo.products["prod1"] = laptop()

	price := 999.0
	updated, err := svc.UpdateProduct(context.Background(), "prod1", ports.UpdateProductInput{Price: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Price != 999 {
		t.Fatalf("expected price 999, got %.2f", updated.Price)
	}
	if updated.Name != "Laptop" || updated.Stock != 50 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestCatalogService_UpdateProduct_NoFields(t *testing.T) {
	svc, repo, _ := newCatalog()
	repo.products["prod1"] = laptop()

	updated, err := svc.UpdateProduct(context.Background(), "prod1", ports.UpdateProductInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Price != 1200 {
		t.Fatalf("product changed by empty update: %+v", updated)
	}
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	svc, _, _ := newCatalog()

	name := "X"
	if _, err := svc.UpdateProduct(context.Background(), "ghost", ports.UpdateProductInput{Name: &name}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	svc, repo, _ := newCatalog()
	repo.products["prod1"] = laptop()

	if err := svc.DeleteProduct(context.Background(), "prod1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.products["prod1"]; ok {
		t.Fatal("product not deleted")
	}
}

func TestCatalogService_Categories(t *testing.T) {
	svc, _, _ := newCatalog()

	created, err := svc.CreateCategory(context.Background(), "Peripherals")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected store-assigned ID")
	}

	if _, err := svc.CreateCategory(context.Background(), "Peripherals"); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	cats, _ := svc.ListCategories(context.Background())
	if len(cats) != 1 {
		t.Fatalf("expected 1 category, got %d", len(cats))
	}

	if err := svc.DeleteCategory(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
