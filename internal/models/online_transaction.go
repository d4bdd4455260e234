package models

import "time"

// OnlineTransaction tracks a Razorpay order through its lifecycle
type OnlineTransaction struct {
	ID                int       `json:"id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id,omitempty"`
	CustomerName      string    `json:"customer_name"`
	CustomerPhone     string    `json:"customer_phone"`
	Amount            float64   `json:"amount"`
	Status            string    `json:"status"` // created, captured, failed
	OwnerID           int       `json:"owner_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateOrderRequest asks Razorpay for a new payment order
type CreateOrderRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	Amount        float64 `json:"amount"`
}
