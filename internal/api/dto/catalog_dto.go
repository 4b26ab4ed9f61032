package dto

import (
	"time"

	"github.com/spec-kit/shop-service/internal/domain"
)

// CategoryRequest payload for category create/update.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse projection.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// NewCategoryResponse projects a domain category.
func NewCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// NewCategoryResponses projects a slice.
func NewCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}

// ProductRequest payload for product create/update.
type ProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Quantity    int    `json:"quantity"`
	CategoryID  string `json:"category_id"`
	Shipping    bool   `json:"shipping"`
}

// ProductResponse projection.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int       `json:"quantity"`
	CategoryID  string    `json:"category_id"`
	Shipping    bool      `json:"shipping"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProductResponse projects a domain product.
func NewProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		PriceCents:  p.PriceCents,
		Quantity:    p.Quantity,
		CategoryID:  p.CategoryID,
		Shipping:    p.Shipping,
		CreatedAt:   p.CreatedAt,
	}
}

// NewProductResponses projects a slice.
func NewProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}
