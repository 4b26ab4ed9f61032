package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// CategoryHandler exposes category CRUD endpoints.
type CategoryHandler struct {
	catalog *service.CatalogService
}

// NewCategoryHandler constructs handler.
func NewCategoryHandler(catalog *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// Create handles POST /api/v1/categories (admin).
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return failure(c, http.StatusBadRequest, "Name is Required")
	}

	category, err := h.catalog.CreateCategory(c.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			return failure(c, http.StatusBadRequest, "Category already exists")
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Category created",
		"category": dto.NewCategoryResponse(category),
	})
}

// Update handles PUT /api/v1/categories/:id (admin).
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, http.StatusBadRequest, "Invalid request payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return failure(c, http.StatusBadRequest, "Name is Required")
	}

	category, err := h.catalog.UpdateCategory(c.Context(), c.Params("id"), name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return apperrors.NewNotFound("category", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Category updated",
		"category": dto.NewCategoryResponse(category),
	})
}

// Delete handles DELETE /api/v1/categories/:id (admin).
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return apperrors.NewNotFound("category", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category deleted"})
}

// List handles GET /api/v1/categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success":    true,
		"categories": dto.NewCategoryResponses(categories),
	})
}

// Get handles GET /api/v1/categories/:slug.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	category, err := h.catalog.GetCategoryBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return apperrors.NewNotFound("category", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"category": dto.NewCategoryResponse(category),
	})
}
