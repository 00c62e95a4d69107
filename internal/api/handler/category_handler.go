package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aro-bazzar/storefront-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for product categories.
type CategoryHandler struct {
	catalog ports.CatalogService
}

func NewCategoryHandler(catalog ports.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// List handles GET /v1/categories.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Create handles POST /v1/categories. Category names are unique; a duplicate
// surfaces as 409.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	category, err := h.catalog.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, category)
}

// Delete handles DELETE /v1/categories/:id.
func (h *CategoryHandler) Delete(c echo.Context) error {
	if err := h.catalog.DeleteCategory(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
