package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vyapar-backend/internal/models"
)

func day(n int) time.Time {
	return time.Date(2026, 1, n, 10, 0, 0, 0, time.UTC)
}

func TestAllocatePaymentAutoOldestFirst(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 1, InvoiceNumber: "INV-000001", Date: day(1), PendingAmount: 1000},
		{ID: 2, InvoiceNumber: "INV-000002", Date: day(5), PendingAmount: 500},
	}

	result, err := AllocatePayment(1200, models.AllocationModeAuto, 0, outstanding)
	require.NoError(t, err)
	require.Len(t, result.Allocations, 2)

	require.Equal(t, 1, result.Allocations[0].SaleID)
	require.Equal(t, 1000.0, result.Allocations[0].AllocatedAmount)
	require.True(t, result.Allocations[0].WillClear)

	require.Equal(t, 2, result.Allocations[1].SaleID)
	require.Equal(t, 200.0, result.Allocations[1].AllocatedAmount)
	require.Equal(t, 300.0, result.Allocations[1].NewPendingAmount)
	require.False(t, result.Allocations[1].WillClear)

	require.Equal(t, 0.0, result.Unallocated)
}

func TestAllocatePaymentAutoSortsUnorderedInput(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 9, InvoiceNumber: "INV-000009", Date: day(20), PendingAmount: 400},
		{ID: 3, InvoiceNumber: "INV-000003", Date: day(2), PendingAmount: 300},
	}

	result, err := AllocatePayment(350, models.AllocationModeAuto, 0, outstanding)
	require.NoError(t, err)
	require.Len(t, result.Allocations, 2)
	require.Equal(t, 3, result.Allocations[0].SaleID, "oldest invoice gets paid first")
	require.Equal(t, 300.0, result.Allocations[0].AllocatedAmount)
	require.Equal(t, 50.0, result.Allocations[1].AllocatedAmount)
}

func TestAllocatePaymentNeverExceedsPayment(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 1, Date: day(1), PendingAmount: 700},
		{ID: 2, Date: day(2), PendingAmount: 900},
		{ID: 3, Date: day(3), PendingAmount: 150},
	}

	result, err := AllocatePayment(1000, models.AllocationModeAuto, 0, outstanding)
	require.NoError(t, err)

	sum := 0.0
	for _, a := range result.Allocations {
		require.Positive(t, a.AllocatedAmount)
		sum += a.AllocatedAmount
	}
	require.Equal(t, 1000.0, sum+result.Unallocated)
	require.LessOrEqual(t, sum, 1000.0)
}

func TestAllocatePaymentOverpaysWholeBalance(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 1, Date: day(1), PendingAmount: 200},
	}

	result, err := AllocatePayment(500, models.AllocationModeAuto, 0, outstanding)
	require.NoError(t, err)
	require.Len(t, result.Allocations, 1)
	require.Equal(t, 200.0, result.Allocations[0].AllocatedAmount)
	require.Equal(t, 300.0, result.Unallocated)
}

func TestAllocatePaymentSkipsSettledInvoices(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 1, Date: day(1), PendingAmount: 0},
		{ID: 2, Date: day(2), PendingAmount: 100},
	}

	result, err := AllocatePayment(100, models.AllocationModeAuto, 0, outstanding)
	require.NoError(t, err)
	require.Len(t, result.Allocations, 1)
	require.Equal(t, 2, result.Allocations[0].SaleID)
}

func TestAllocatePaymentSpecificInvoice(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 1, InvoiceNumber: "INV-000001", Date: day(1), PendingAmount: 1000},
		{ID: 2, InvoiceNumber: "INV-000002", Date: day(5), PendingAmount: 500},
	}

	result, err := AllocatePayment(1200, models.AllocationModeSpecific, 2, outstanding)
	require.NoError(t, err)
	require.Len(t, result.Allocations, 1, "specific mode never spills onto other invoices")
	require.Equal(t, 2, result.Allocations[0].SaleID)
	require.Equal(t, 500.0, result.Allocations[0].AllocatedAmount)
	require.True(t, result.Allocations[0].WillClear)
	require.Equal(t, 700.0, result.Unallocated)
}

func TestAllocatePaymentSpecificInvoicePartial(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 7, InvoiceNumber: "INV-000007", Date: day(3), PendingAmount: 800},
	}

	result, err := AllocatePayment(300, models.AllocationModeSpecific, 7, outstanding)
	require.NoError(t, err)
	require.Equal(t, 300.0, result.Allocations[0].AllocatedAmount)
	require.Equal(t, 500.0, result.Allocations[0].NewPendingAmount)
	require.False(t, result.Allocations[0].WillClear)
	require.Equal(t, 0.0, result.Unallocated)
}

func TestAllocatePaymentSpecificTargetMissing(t *testing.T) {
	outstanding := []Outstanding{
		{ID: 1, Date: day(1), PendingAmount: 100},
	}

	_, err := AllocatePayment(50, models.AllocationModeSpecific, 99, outstanding)
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestAllocatePaymentRejectsNonPositiveAmount(t *testing.T) {
	_, err := AllocatePayment(0, models.AllocationModeAuto, 0, nil)
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, err = AllocatePayment(-10, models.AllocationModeAuto, 0, nil)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAllocatePaymentNoOutstanding(t *testing.T) {
	result, err := AllocatePayment(250, models.AllocationModeAuto, 0, nil)
	require.NoError(t, err)
	require.Empty(t, result.Allocations)
	require.Equal(t, 250.0, result.Unallocated)
}
