package models

import "time"

// CreditType classifies how a credit arose
type CreditType string

const (
	CreditTypeGiven CreditType = "given" // customer owes the business
	CreditTypeTaken CreditType = "taken" // business owes the customer/supplier
	CreditTypeCash  CreditType = "cash"  // standalone cash loan
)

// CreditStatus is the derived payment state of a credit
type CreditStatus string

const (
	CreditStatusPaid    CreditStatus = "paid"
	CreditStatusPartial CreditStatus = "partial"
	CreditStatusPending CreditStatus = "pending"
	CreditStatusOverdue CreditStatus = "overdue"
)

// Credit represents a balance owed by or to a customer
type Credit struct {
	ID              int          `json:"id"`
	CustomerName    string       `json:"customer_name"`
	CustomerPhone   string       `json:"customer_phone"`
	CreditType      CreditType   `json:"credit_type"`
	Amount          float64      `json:"amount"`
	PaidAmount      float64      `json:"paid_amount"`
	RemainingAmount float64      `json:"remaining_amount"`
	DueDate         *time.Time   `json:"due_date"`
	Status          CreditStatus `json:"status"` // cache; recomputed on every amount write
	Notes           string       `json:"notes"`
	OwnerID         int          `json:"owner_id"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// DeriveCreditStatus computes the payment state from raw amounts. The stored
// status column is only a cache of this function's result.
func DeriveCreditStatus(remaining, paid float64, dueDate *time.Time, now time.Time) CreditStatus {
	if remaining <= 0 {
		return CreditStatusPaid
	}
	overdue := dueDate != nil && dueDate.Before(now)
	if paid > 0 {
		if overdue {
			return CreditStatusOverdue
		}
		return CreditStatusPartial
	}
	if overdue {
		return CreditStatusOverdue
	}
	return CreditStatusPending
}

// CreditTransaction is an append-only record of a payment against a credit.
// CreditType carries the parent credit's type so the ledger can tell a
// customer paying down a given credit from the business repaying a taken one.
type CreditTransaction struct {
	ID              int        `json:"id"`
	CreditID        int        `json:"credit_id"`
	CustomerName    string     `json:"customer_name"`
	Amount          float64    `json:"amount"`
	TransactionDate time.Time  `json:"transaction_date"`
	Notes           string     `json:"notes"`
	OwnerID         int        `json:"owner_id"`
	CreditType      CreditType `json:"credit_type,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// CreateCreditRequest represents the request body for creating a credit
type CreateCreditRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	CreditType    CreditType `json:"credit_type"`
	Amount        float64    `json:"amount"`
	DueDate       *time.Time `json:"due_date"`
	Notes         string     `json:"notes"`
}

// UpdateCreditRequest represents the request body for updating a credit
type UpdateCreditRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Amount        float64    `json:"amount"`
	DueDate       *time.Time `json:"due_date"`
	Notes         string     `json:"notes"`
}

// PayCreditRequest records a payment against a single credit
type PayCreditRequest struct {
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

// CreditSummary aggregates a customer's credit position
type CreditSummary struct {
	CustomerName   string  `json:"customer_name"`
	TotalGiven     float64 `json:"total_given"`
	TotalTaken     float64 `json:"total_taken"`
	TotalPaid      float64 `json:"total_paid"`
	TotalRemaining float64 `json:"total_remaining"`
	CreditCount    int     `json:"credit_count"`
}
