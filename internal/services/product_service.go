package services

import (
	"context"
	"strings"

	"vyapar-backend/internal/cache"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
)

type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService(products *repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) Create(ctx context.Context, ownerID int, req *models.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 || req.StockQuantity < 0 {
		return nil, ErrValidation
	}
	if req.Unit == "" {
		req.Unit = "pcs"
	}
	product, err := s.products.Create(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateProductCaches(ctx)
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id, ownerID int) (*models.Product, error) {
	return s.products.GetByID(ctx, id, ownerID)
}

func (s *ProductService) List(ctx context.Context, ownerID int, lowStockOnly bool) ([]*models.Product, error) {
	return s.products.List(ctx, ownerID, lowStockOnly)
}

func (s *ProductService) Update(ctx context.Context, id, ownerID int, req *models.UpdateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price < 0 || req.StockQuantity < 0 {
		return nil, ErrValidation
	}
	product, err := s.products.Update(ctx, id, ownerID, req)
	if err != nil {
		return nil, err
	}
	cache.InvalidateProductCaches(ctx)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id, ownerID int) error {
	if err := s.products.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}
