package services

import (
	"errors"
	"sort"
	"time"

	"vyapar-backend/internal/models"
)

var (
	ErrInvalidAmount  = errors.New("payment amount must be positive")
	ErrTargetNotFound = errors.New("target invoice not found or already paid")
)

// Outstanding is one unpaid invoice as seen by the allocator
type Outstanding struct {
	ID            int
	InvoiceNumber string
	Date          time.Time
	PendingAmount float64
}

// Allocation is one slice of a payment applied to an invoice
type Allocation struct {
	SaleID           int
	InvoiceNumber    string
	AllocatedAmount  float64
	NewPendingAmount float64
	WillClear        bool
}

// AllocationResult is the full outcome of spreading one payment
type AllocationResult struct {
	Allocations []Allocation
	// Unallocated is the part of the payment no invoice absorbed. In auto
	// mode it means the customer overpaid their whole balance; in specific
	// mode it means the payment exceeded the chosen invoice.
	Unallocated float64
}

// AllocatePayment spreads a payment across outstanding invoices.
//
// Auto mode walks invoices oldest first and fills each until the payment
// runs out. Specific mode applies at most the chosen invoice's pending
// amount and leaves the rest unallocated rather than spilling onto other
// invoices.
//
// Pure function: callers persist the resulting paid_amount updates.
func AllocatePayment(amount float64, mode models.AllocationMode, targetSaleID int, outstanding []Outstanding) (*AllocationResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	if mode == models.AllocationModeSpecific {
		for _, o := range outstanding {
			if o.ID != targetSaleID || o.PendingAmount <= 0 {
				continue
			}
			allocated := amount
			if allocated > o.PendingAmount {
				allocated = o.PendingAmount
			}
			newPending := o.PendingAmount - allocated
			return &AllocationResult{
				Allocations: []Allocation{{
					SaleID:           o.ID,
					InvoiceNumber:    o.InvoiceNumber,
					AllocatedAmount:  allocated,
					NewPendingAmount: newPending,
					WillClear:        newPending <= 0,
				}},
				Unallocated: amount - allocated,
			}, nil
		}
		return nil, ErrTargetNotFound
	}

	// Oldest invoice first. The input is usually already sorted by the
	// query but the order is a correctness property, so sort again.
	sorted := make([]Outstanding, len(outstanding))
	copy(sorted, outstanding)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})

	result := &AllocationResult{}
	remaining := amount
	for _, o := range sorted {
		if remaining <= 0 {
			break
		}
		if o.PendingAmount <= 0 {
			continue
		}
		allocated := remaining
		if allocated > o.PendingAmount {
			allocated = o.PendingAmount
		}
		newPending := o.PendingAmount - allocated
		result.Allocations = append(result.Allocations, Allocation{
			SaleID:           o.ID,
			InvoiceNumber:    o.InvoiceNumber,
			AllocatedAmount:  allocated,
			NewPendingAmount: newPending,
			WillClear:        newPending <= 0,
		})
		remaining -= allocated
	}
	result.Unallocated = remaining
	return result, nil
}
