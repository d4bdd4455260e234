package models

import "time"

// AllocationMode selects how a received payment is spread over invoices
type AllocationMode string

const (
	AllocationModeAuto     AllocationMode = "auto_adjust"      // oldest invoice first
	AllocationModeSpecific AllocationMode = "specific_invoice" // one chosen invoice only
)

// AllocationDetail is one slice of a payment applied to an invoice,
// persisted as JSON in payment_ledger.details for audit.
type AllocationDetail struct {
	SaleID          int     `json:"sale_id"`
	InvoiceNumber   string  `json:"invoice_number"`
	AllocatedAmount float64 `json:"allocated_amount"`
	PaymentMethod   string  `json:"payment_method"`
}

// PaymentLedgerEntry records one Receive Payment action and how it was
// allocated across the customer's invoices.
type PaymentLedgerEntry struct {
	ID              int                `json:"id"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	PaymentAmount   float64            `json:"payment_amount"`
	PaymentDate     time.Time          `json:"payment_date"`
	Details         []AllocationDetail `json:"details"`
	Notes           string             `json:"notes"`
	OwnerID         int                `json:"owner_id"`
	CreatedByUserID int                `json:"created_by_user_id"`
	CreatedAt       time.Time          `json:"created_at"`
}

// ReceivePaymentRequest is the request body for recording a payment
type ReceivePaymentRequest struct {
	CustomerName  string         `json:"customer_name"`
	CustomerPhone string         `json:"customer_phone"`
	Amount        float64        `json:"amount"`
	Mode          AllocationMode `json:"mode"`
	TargetSaleID  int            `json:"target_sale_id,omitempty"` // required for specific_invoice
	PaymentMethod string         `json:"payment_method"`
	Notes         string         `json:"notes"`
}

// LedgerTransactionType tags events in the merged customer history
type LedgerTransactionType string

const (
	TxnCreditGiven     LedgerTransactionType = "credit_given"
	TxnCreditTaken     LedgerTransactionType = "credit_taken"
	TxnPaymentReceived LedgerTransactionType = "payment_received"
	TxnPaymentMade     LedgerTransactionType = "payment_made"
)

// LedgerEvent is one row of the merged, running-balance-annotated
// customer history.
type LedgerEvent struct {
	Type         LedgerTransactionType `json:"type"`
	ReferenceID  int                   `json:"reference_id"`
	Description  string                `json:"description"`
	Amount       float64               `json:"amount"`
	BalanceAfter float64               `json:"balance_after"`
	Date         time.Time             `json:"date"`
}
