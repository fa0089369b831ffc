package service

import (
	"context"
	"strings"

	"github.com/almadepapel/storefront/internal/models"
	"github.com/almadepapel/storefront/internal/repo"
	"github.com/almadepapel/storefront/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string) ([]models.Product, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrValidation
	}
	return s.Repo.SearchProducts(ctx, q)
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.Repo.GetCategoryBySlug(ctx, slug)
}

// GetCategoryProducts resolves the slug first so an unknown category is a
// not-found, not an empty list.
func (s *CatalogService) GetCategoryProducts(ctx context.Context, slug string) ([]models.Product, error) {
	cat, err := s.Repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.Repo.GetProductsByCategory(ctx, cat.ID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, ErrValidation
	}
	return s.Repo.CreateProduct(ctx, req.Model())
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, ErrValidation
	}
	return s.Repo.UpdateProduct(ctx, id, req.Model())
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}
