package models

import "time"

// Sale represents an invoice issued to a customer
type Sale struct {
	ID              int          `json:"id"`
	InvoiceNumber   string       `json:"invoice_number"`
	CustomerName    string       `json:"customer_name"`
	CustomerPhone   string       `json:"customer_phone"`
	TotalAmount     float64      `json:"total_amount"`
	Discount        float64      `json:"discount"`
	FinalAmount     float64      `json:"final_amount"`
	PaidAmount      float64      `json:"paid_amount"`
	PaymentStatus   CreditStatus `json:"payment_status"` // cache; recomputed on write
	Notes           string       `json:"notes"`
	OwnerID         int          `json:"owner_id"`
	CreatedByUserID int          `json:"created_by_user_id"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// PendingAmount returns the unpaid part of the invoice, clamped non-negative
// for display.
func (s *Sale) PendingAmount() float64 {
	pending := s.FinalAmount - s.PaidAmount
	if pending < 0 {
		return 0
	}
	return pending
}

// SaleItem is a line on an invoice
type SaleItem struct {
	ID          int       `json:"id"`
	SaleID      int       `json:"sale_id"`
	ProductID   *int      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Rate        float64   `json:"rate"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateSaleRequest represents the request body for creating a sale
type CreateSaleRequest struct {
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Discount      float64    `json:"discount"`
	PaidAmount    float64    `json:"paid_amount"`
	Notes         string     `json:"notes"`
	Items         []SaleItem `json:"items"`
}

// SaleWithItems includes the invoice lines
type SaleWithItems struct {
	Sale
	Items []SaleItem `json:"items"`
}
