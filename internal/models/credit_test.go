package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveCreditStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	tests := []struct {
		name      string
		remaining float64
		paid      float64
		dueDate   *time.Time
		want      CreditStatus
	}{
		{"fully paid", 0, 1000, nil, CreditStatusPaid},
		{"fully paid despite past due date", 0, 1000, &past, CreditStatusPaid},
		{"overpaid", -50, 1050, &past, CreditStatusPaid},
		{"untouched no due date", 1000, 0, nil, CreditStatusPending},
		{"untouched future due date", 1000, 0, &future, CreditStatusPending},
		{"untouched past due date", 1000, 0, &past, CreditStatusOverdue},
		{"partially paid no due date", 400, 600, nil, CreditStatusPartial},
		{"partially paid future due date", 400, 600, &future, CreditStatusPartial},
		{"partially paid past due date", 400, 600, &past, CreditStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DeriveCreditStatus(tt.remaining, tt.paid, tt.dueDate, now))
		})
	}
}

func TestNormalizeCustomerName(t *testing.T) {
	require.Equal(t, "ramesh kumar", NormalizeCustomerName("  Ramesh   KUMAR "))
	require.Equal(t, "ramesh kumar", NormalizeCustomerName("ramesh kumar"))
	require.Equal(t, "", NormalizeCustomerName("   "))
}

func TestSalePendingAmountClampsAtZero(t *testing.T) {
	s := Sale{FinalAmount: 100, PaidAmount: 120}
	require.Equal(t, 0.0, s.PendingAmount())

	s = Sale{FinalAmount: 100, PaidAmount: 40}
	require.Equal(t, 60.0, s.PendingAmount())
}

func TestWorkerPermissionAllows(t *testing.T) {
	p := WorkerPermission{CanView: true, CanEdit: true}

	require.True(t, p.Allows(ActionView))
	require.True(t, p.Allows(ActionEdit))
	require.False(t, p.Allows(ActionCreate))
	require.False(t, p.Allows(ActionDelete))
	require.False(t, p.Allows("unknown"))
}
