package services

import (
	"context"
	"errors"
	"strings"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/timeutil"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrOverpayment = errors.New("payment exceeds remaining amount")
)

// CreditService manages credits and payments against them
type CreditService struct {
	credits   *repositories.CreditRepository
	txns      *repositories.CreditTransactionRepository
	customers *repositories.CustomerRepository
}

func NewCreditService(
	credits *repositories.CreditRepository,
	txns *repositories.CreditTransactionRepository,
	customers *repositories.CustomerRepository,
) *CreditService {
	return &CreditService{credits: credits, txns: txns, customers: customers}
}

func (s *CreditService) Create(ctx context.Context, ownerID int, req *models.CreateCreditRequest) (*models.Credit, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" || req.Amount <= 0 {
		return nil, ErrValidation
	}
	switch req.CreditType {
	case models.CreditTypeGiven, models.CreditTypeTaken, models.CreditTypeCash:
	default:
		return nil, ErrValidation
	}

	// Resolve the typed name to the canonical customer row
	customer, err := s.customers.Upsert(ctx, ownerID, name, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	now := timeutil.Now()
	credit := &models.Credit{
		CustomerName:    customer.Name,
		CustomerPhone:   customer.Phone,
		CreditType:      req.CreditType,
		Amount:          req.Amount,
		PaidAmount:      0,
		RemainingAmount: req.Amount,
		DueDate:         req.DueDate,
		Status:          models.DeriveCreditStatus(req.Amount, 0, req.DueDate, now),
		Notes:           req.Notes,
		OwnerID:         ownerID,
	}
	return s.credits.Create(ctx, credit)
}

func (s *CreditService) Get(ctx context.Context, id, ownerID int) (*models.Credit, error) {
	return s.credits.GetByID(ctx, id, ownerID)
}

func (s *CreditService) List(ctx context.Context, ownerID int, status, customerName string) ([]*models.Credit, error) {
	return s.credits.List(ctx, ownerID, status, customerName)
}

func (s *CreditService) Update(ctx context.Context, id, ownerID int, req *models.UpdateCreditRequest) (*models.Credit, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" || req.Amount <= 0 {
		return nil, ErrValidation
	}

	credit, err := s.credits.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Amount < credit.PaidAmount {
		return nil, ErrValidation
	}

	credit.CustomerName = name
	credit.CustomerPhone = req.CustomerPhone
	credit.Amount = req.Amount
	credit.RemainingAmount = req.Amount - credit.PaidAmount
	credit.DueDate = req.DueDate
	credit.Notes = req.Notes
	credit.Status = models.DeriveCreditStatus(credit.RemainingAmount, credit.PaidAmount, credit.DueDate, timeutil.Now())

	return s.credits.Update(ctx, credit)
}

// RecordPayment applies a payment against one credit. The amount may not
// exceed the remaining balance. A read-modify-write, not a transaction, so
// two simultaneous payments against the same credit can race; acceptable
// for a single-counter shop.
func (s *CreditService) RecordPayment(ctx context.Context, id, ownerID int, req *models.PayCreditRequest) (*models.Credit, error) {
	if req.Amount <= 0 {
		return nil, ErrValidation
	}

	credit, err := s.credits.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if req.Amount > credit.RemainingAmount {
		return nil, ErrOverpayment
	}

	paid := credit.PaidAmount + req.Amount
	remaining := credit.RemainingAmount - req.Amount
	status := models.DeriveCreditStatus(remaining, paid, credit.DueDate, timeutil.Now())

	if err := s.credits.UpdateAmounts(ctx, id, ownerID, paid, remaining, status); err != nil {
		return nil, err
	}

	_, err = s.txns.Create(ctx, &models.CreditTransaction{
		CreditID:        id,
		CustomerName:    credit.CustomerName,
		Amount:          req.Amount,
		TransactionDate: timeutil.Now(),
		Notes:           req.Notes,
		OwnerID:         ownerID,
	})
	if err != nil {
		return nil, err
	}

	return s.credits.GetByID(ctx, id, ownerID)
}

// Payments returns the append-only history for one credit
func (s *CreditService) Payments(ctx context.Context, creditID, ownerID int) ([]*models.CreditTransaction, error) {
	if _, err := s.credits.GetByID(ctx, creditID, ownerID); err != nil {
		return nil, err
	}
	return s.txns.ListByCredit(ctx, creditID, ownerID)
}

func (s *CreditService) Delete(ctx context.Context, id, ownerID int) error {
	return s.credits.Delete(ctx, id, ownerID)
}

func (s *CreditService) Summary(ctx context.Context, ownerID int, customerName string) (*models.CreditSummary, error) {
	return s.credits.Summary(ctx, ownerID, customerName)
}
