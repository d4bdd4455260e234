package services

import (
	"context"
	"strings"
	"time"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
	"vyapar-backend/internal/timeutil"
)

type ExpenseService struct {
	expenses *repositories.ExpenseRepository
}

func NewExpenseService(expenses *repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return timeutil.StartOfDay(timeutil.Now()), nil
	}
	return timeutil.ParseInIST("2006-01-02", raw)
}

func (s *ExpenseService) Create(ctx context.Context, ownerID, userID int, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if strings.TrimSpace(req.Category) == "" || req.Amount <= 0 {
		return nil, ErrValidation
	}
	date, err := s.parseDate(req.ExpenseDate)
	if err != nil {
		return nil, ErrValidation
	}
	return s.expenses.Create(ctx, ownerID, userID, req.Category, req.Description, req.Amount, date)
}

func (s *ExpenseService) Get(ctx context.Context, id, ownerID int) (*models.Expense, error) {
	return s.expenses.GetByID(ctx, id, ownerID)
}

// List filters by category and an optional YYYY-MM-DD date range
func (s *ExpenseService) List(ctx context.Context, ownerID int, category, fromStr, toStr string) ([]*models.Expense, error) {
	var from, to time.Time
	if fromStr != "" {
		t, err := timeutil.ParseInIST("2006-01-02", fromStr)
		if err != nil {
			return nil, ErrValidation
		}
		from = timeutil.StartOfDay(t)
	}
	if toStr != "" {
		t, err := timeutil.ParseInIST("2006-01-02", toStr)
		if err != nil {
			return nil, ErrValidation
		}
		to = timeutil.EndOfDay(t)
	}
	return s.expenses.List(ctx, ownerID, category, from, to)
}

func (s *ExpenseService) Update(ctx context.Context, id, ownerID int, req *models.CreateExpenseRequest) (*models.Expense, error) {
	if strings.TrimSpace(req.Category) == "" || req.Amount <= 0 {
		return nil, ErrValidation
	}
	date, err := s.parseDate(req.ExpenseDate)
	if err != nil {
		return nil, ErrValidation
	}
	return s.expenses.Update(ctx, id, ownerID, req.Category, req.Description, req.Amount, date)
}

func (s *ExpenseService) Delete(ctx context.Context, id, ownerID int) error {
	return s.expenses.Delete(ctx, id, ownerID)
}

func (s *ExpenseService) SummaryByCategory(ctx context.Context, ownerID int, fromStr, toStr string) ([]*models.ExpenseCategorySummary, error) {
	var from, to time.Time
	if fromStr != "" {
		t, err := timeutil.ParseInIST("2006-01-02", fromStr)
		if err != nil {
			return nil, ErrValidation
		}
		from = timeutil.StartOfDay(t)
	}
	if toStr != "" {
		t, err := timeutil.ParseInIST("2006-01-02", toStr)
		if err != nil {
			return nil, ErrValidation
		}
		to = timeutil.EndOfDay(t)
	}
	return s.expenses.SummaryByCategory(ctx, ownerID, from, to)
}
