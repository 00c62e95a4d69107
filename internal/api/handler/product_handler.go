package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog products. Reads are
// public; mutations are admin-only, gated by the RBAC middleware.
type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Stock       int     `json:"stock"       validate:"gte=0"`
	ImageURL    string  `json:"image_url"   validate:"omitempty,url"`
	CategoryID  string  `json:"category_id"`
}

// updateProductRequest is a partial update: absent fields are left unchanged
// on the stored document.
type updateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"       validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock"       validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url"   validate:"omitempty,url"`
	CategoryID  *string  `json:"category_id"`
}

// List handles GET /v1/products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get handles GET /v1/products/:id.
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /v1/products.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.catalog.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

// Update handles PATCH /v1/products/:id. Only the fields present in the
// payload are written; the rest of the document is untouched.
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	product, err := h.catalog.UpdateProduct(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /v1/products/:id.
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
