package services

import (
	"context"
	"strings"

	"vyapar-backend/internal/cache"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
)

type CustomerService struct {
	customers *repositories.CustomerRepository
}

func NewCustomerService(customers *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

func (s *CustomerService) Create(ctx context.Context, ownerID int, req *models.CreateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrValidation
	}
	customer, err := s.customers.Create(ctx, ownerID, name, req.Phone)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCustomerCaches(ctx)
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id, ownerID int) (*models.Customer, error) {
	return s.customers.GetByID(ctx, id, ownerID)
}

func (s *CustomerService) List(ctx context.Context, ownerID int) ([]*models.Customer, error) {
	return s.customers.List(ctx, ownerID)
}

func (s *CustomerService) Search(ctx context.Context, ownerID int, q string, limit int) ([]*models.Customer, error) {
	if strings.TrimSpace(q) == "" {
		return s.customers.List(ctx, ownerID)
	}
	return s.customers.Search(ctx, ownerID, q, limit)
}

func (s *CustomerService) Update(ctx context.Context, id, ownerID int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrValidation
	}
	customer, err := s.customers.Update(ctx, id, ownerID, name, req.Phone)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCustomerCaches(ctx)
	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id, ownerID int) error {
	if err := s.customers.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	cache.InvalidateCustomerCaches(ctx)
	return nil
}
