package models

import "time"

type Expense struct {
	ID              int       `json:"id"`
	Category        string    `json:"category"`
	Description     string    `json:"description"`
	Amount          float64   `json:"amount"`
	ExpenseDate     time.Time `json:"expense_date"`
	OwnerID         int       `json:"owner_id"`
	CreatedByUserID int       `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateExpenseRequest represents the request body for creating an expense
type CreateExpenseRequest struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	ExpenseDate string  `json:"expense_date"` // YYYY-MM-DD
}

// ExpenseCategorySummary aggregates spend per category
type ExpenseCategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
