package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/repository"
	"github.com/spec-kit/shop-service/internal/service"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

// ProductHandler exposes catalog endpoints.
type ProductHandler struct {
	catalog *service.CatalogService
}

// NewProductHandler constructs handler.
func NewProductHandler(catalog *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func parseProductInput(c *fiber.Ctx) (service.ProductInput, string, bool) {
	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return service.ProductInput{}, "Invalid request payload", false
	}

	in := service.ProductInput{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		PriceCents:  req.PriceCents,
		Quantity:    req.Quantity,
		CategoryID:  strings.TrimSpace(req.CategoryID),
		Shipping:    req.Shipping,
	}
	switch {
	case in.Name == "":
		return in, "Name is Required", false
	case in.Description == "":
		return in, "Description is Required", false
	case in.PriceCents <= 0:
		return in, "Price is Required", false
	case in.CategoryID == "":
		return in, "Category is Required", false
	case in.Quantity < 0:
		return in, "Quantity is Required", false
	}
	return in, "", true
}

// Create handles POST /api/v1/products (admin).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, msg, ok := parseProductInput(c)
	if !ok {
		return failure(c, http.StatusBadRequest, msg)
	}

	product, err := h.catalog.CreateProduct(c.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return apperrors.NewNotFound("category", nil)
		}
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Product created",
		"product": dto.NewProductResponse(product),
	})
}

// Update handles PUT /api/v1/products/:id (admin).
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	in, msg, ok := parseProductInput(c)
	if !ok {
		return failure(c, http.StatusBadRequest, msg)
	}

	product, err := h.catalog.UpdateProduct(c.Context(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return apperrors.NewNotFound("product", nil)
		case errors.Is(err, service.ErrCategoryNotFound):
			return apperrors.NewNotFound("category", nil)
		}
		return apperrors.MapError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated",
		"product": dto.NewProductResponse(product),
	})
}

// Delete handles DELETE /api/v1/products/:id (admin).
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.catalog.DeleteProduct(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted"})
}

// List handles GET /api/v1/products with optional filters:
// category, price_min, price_max, keyword, page.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{Limit: 20}

	if category := c.Query("category"); category != "" {
		filter.CategoryID = &category
	}
	if raw := c.Query("price_min"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PriceMinCents = &v
		}
	}
	if raw := c.Query("price_max"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.PriceMaxCents = &v
		}
	}
	if keyword := c.Query("keyword"); keyword != "" {
		filter.SearchTerm = &keyword
	}
	if page, err := strconv.Atoi(c.Query("page", "1")); err == nil && page > 1 {
		filter.Offset = (page - 1) * filter.Limit
	}

	products, err := h.catalog.ListProducts(c.Context(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": dto.NewProductResponses(products),
	})
}

// Count handles GET /api/v1/products/count for client pagination.
func (h *ProductHandler) Count(c *fiber.Ctx) error {
	total, err := h.catalog.CountProducts(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"success": true, "total": total})
}

// Get handles GET /api/v1/products/:slug.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": dto.NewProductResponse(product),
	})
}

// Related handles GET /api/v1/products/:slug/related.
func (h *ProductHandler) Related(c *fiber.Ctx) error {
	products, err := h.catalog.RelatedProducts(c.Context(), c.Params("slug"), 4)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return apperrors.NewNotFound("product", nil)
		}
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": dto.NewProductResponses(products),
	})
}
