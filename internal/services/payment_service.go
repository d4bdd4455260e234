package services

import (
	"context"
	"strings"

	"vyapar-backend/internal/metrics"
	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/timeutil"
)

// PaymentService runs the receive-payment flow: load a customer's
// outstanding invoices, spread the amount with the allocator, persist the
// per-invoice updates and one ledger entry.
type PaymentService struct {
	sales  *repositories.SaleRepository
	ledger *repositories.PaymentLedgerRepository
}

func NewPaymentService(sales *repositories.SaleRepository, ledger *repositories.PaymentLedgerRepository) *PaymentService {
	return &PaymentService{sales: sales, ledger: ledger}
}

func (s *PaymentService) outstandingFor(sales []*models.Sale) []Outstanding {
	out := make([]Outstanding, 0, len(sales))
	for _, sale := range sales {
		out = append(out, Outstanding{
			ID:            sale.ID,
			InvoiceNumber: sale.InvoiceNumber,
			Date:          sale.CreatedAt,
			PendingAmount: sale.PendingAmount(),
		})
	}
	return out
}

// Preview runs the allocator without persisting anything, so the client can
// show "this payment will clear INV-000012 and partly cover INV-000015".
func (s *PaymentService) Preview(ctx context.Context, ownerID int, req *models.ReceivePaymentRequest) (*AllocationResult, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ErrValidation
	}

	sales, err := s.sales.ListOutstandingByCustomer(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}
	return AllocatePayment(req.Amount, req.Mode, req.TargetSaleID, s.outstandingFor(sales))
}

// Receive records a payment. Reads then writes without a transaction, so
// two clerks receiving for the same customer at once can race; the audit
// trail in payment_ledger.details makes the outcome reconstructable.
func (s *PaymentService) Receive(ctx context.Context, ownerID, userID int, req *models.ReceivePaymentRequest) (*models.PaymentLedgerEntry, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ErrValidation
	}
	mode := req.Mode
	if mode == "" {
		mode = models.AllocationModeAuto
	}

	sales, err := s.sales.ListOutstandingByCustomer(ctx, ownerID, name)
	if err != nil {
		return nil, err
	}

	result, err := AllocatePayment(req.Amount, mode, req.TargetSaleID, s.outstandingFor(sales))
	if err != nil {
		return nil, err
	}

	bySaleID := make(map[int]*models.Sale, len(sales))
	for _, sale := range sales {
		bySaleID[sale.ID] = sale
	}

	now := timeutil.Now()
	details := make([]models.AllocationDetail, 0, len(result.Allocations))
	for _, alloc := range result.Allocations {
		sale := bySaleID[alloc.SaleID]
		newPaid := sale.PaidAmount + alloc.AllocatedAmount
		status := models.DeriveCreditStatus(sale.FinalAmount-newPaid, newPaid, nil, now)

		if err := s.sales.UpdatePayment(ctx, sale.ID, ownerID, newPaid, status); err != nil {
			return nil, err
		}
		details = append(details, models.AllocationDetail{
			SaleID:          alloc.SaleID,
			InvoiceNumber:   alloc.InvoiceNumber,
			AllocatedAmount: alloc.AllocatedAmount,
			PaymentMethod:   req.PaymentMethod,
		})
	}

	entry := &models.PaymentLedgerEntry{
		CustomerName:    name,
		CustomerPhone:   req.CustomerPhone,
		PaymentAmount:   req.Amount,
		PaymentDate:     now,
		Details:         details,
		Notes:           req.Notes,
		OwnerID:         ownerID,
		CreatedByUserID: userID,
	}
	created, err := s.ledger.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	metrics.PaymentsReceivedTotal.Inc()
	metrics.PaymentAmountReceived.Add(req.Amount)
	return created, nil
}

// History returns recorded payments, newest first
func (s *PaymentService) History(ctx context.Context, ownerID int, customerName string) ([]*models.PaymentLedgerEntry, error) {
	return s.ledger.List(ctx, ownerID, customerName)
}
