package models

import (
	"strings"
	"time"
)

type Customer struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	NameNormalized string    `json:"name_normalized"`
	Phone          string    `json:"phone"`
	OwnerID        int       `json:"owner_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeCustomerName lowercases and collapses whitespace so the same
// customer typed twice resolves to one row.
func NormalizeCustomerName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
