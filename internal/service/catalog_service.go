package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
)

var (
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
)

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a display name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugStrip.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// CatalogService coordinates category and product management.
type CatalogService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		categories: deps.CategoryRepo,
		products:   deps.ProductRepo,
	}
}

// CreateCategory adds a category, rejecting duplicate names.
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	category := &domain.Category{Name: name, Slug: Slugify(name)}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category and refreshes its slug.
func (s *CatalogService) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	category.Name = name
	category.Slug = Slugify(name)
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category by id.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

// ListCategories returns all categories ordered by name.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

// GetCategoryBySlug fetches one category.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.categories.GetBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// ProductInput describes product create/update payloads.
type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
	Quantity    int
	CategoryID  string
	Shipping    bool
}

// CreateProduct adds a catalog entry under an existing category.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &domain.Product{
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Quantity:    in.Quantity,
		CategoryID:  in.CategoryID,
		Shipping:    in.Shipping,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if in.CategoryID != product.CategoryID {
		if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product.Name = in.Name
	product.Slug = Slugify(in.Name)
	product.Description = in.Description
	product.PriceCents = in.PriceCents
	product.Quantity = in.Quantity
	product.CategoryID = in.CategoryID
	product.Shipping = in.Shipping

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by id.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// GetProductBySlug fetches one product.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	product, err := s.products.GetBySlug(ctx, slug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// ListProducts returns a filtered catalog page.
func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.products.ListWithFilter(ctx, filter)
}

// RelatedProducts lists other products in the same category.
func (s *CatalogService) RelatedProducts(ctx context.Context, slug string, limit int) ([]domain.Product, error) {
	product, err := s.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 4
	}
	return s.products.ListRelated(ctx, product.CategoryID, product.ID, limit)
}

// CountProducts returns the catalog size for pagination.
func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}
