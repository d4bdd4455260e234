package services

import (
	"context"
	"strings"

	"vyapar-backend/internal/cache"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/timeutil"
)

// SaleService creates invoices and keeps product stock in step
type SaleService struct {
	sales     *repositories.SaleRepository
	customers *repositories.CustomerRepository
}

func NewSaleService(sales *repositories.SaleRepository, customers *repositories.CustomerRepository) *SaleService {
	return &SaleService{sales: sales, customers: customers}
}

func (s *SaleService) Create(ctx context.Context, ownerID, userID int, req *models.CreateSaleRequest) (*models.SaleWithItems, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" || len(req.Items) == 0 {
		return nil, ErrValidation
	}

	total := 0.0
	for i := range req.Items {
		item := &req.Items[i]
		if item.Quantity <= 0 || item.Rate < 0 || strings.TrimSpace(item.ProductName) == "" {
			return nil, ErrValidation
		}
		item.Amount = float64(item.Quantity) * item.Rate
		total += item.Amount
	}

	if req.Discount < 0 || req.Discount > total {
		return nil, ErrValidation
	}
	finalAmount := total - req.Discount
	if req.PaidAmount < 0 || req.PaidAmount > finalAmount {
		return nil, ErrValidation
	}

	customer, err := s.customers.Upsert(ctx, ownerID, name, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	sale := &models.Sale{
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		TotalAmount:     total,
		Discount:        req.Discount,
		FinalAmount:     finalAmount,
		PaidAmount:      req.PaidAmount,
		PaymentStatus:   models.DeriveCreditStatus(finalAmount-req.PaidAmount, req.PaidAmount, nil, timeutil.Now()),
		Notes:           req.Notes,
		OwnerID:         ownerID,
		CreatedByUserID: userID,
	}

	created, err := s.sales.Create(ctx, sale, req.Items)
	if err != nil {
		return nil, err
	}

	// Stock moved, so cached product lists are stale
	cache.InvalidateProductCaches(ctx)
	return created, nil
}

func (s *SaleService) Get(ctx context.Context, id, ownerID int) (*models.SaleWithItems, error) {
	return s.sales.GetByID(ctx, id, ownerID)
}

// GetByInvoiceNumber looks a sale up from the number printed on the invoice
func (s *SaleService) GetByInvoiceNumber(ctx context.Context, ownerID int, invoiceNumber string) (*models.SaleWithItems, error) {
	invoiceNumber = strings.TrimSpace(invoiceNumber)
	if invoiceNumber == "" {
		return nil, ErrValidation
	}
	return s.sales.GetByInvoiceNumber(ctx, ownerID, invoiceNumber)
}

func (s *SaleService) List(ctx context.Context, ownerID int, status, customerName string) ([]*models.Sale, error) {
	return s.sales.List(ctx, ownerID, status, customerName)
}

func (s *SaleService) Delete(ctx context.Context, id, ownerID int) error {
	if err := s.sales.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}
