package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vyapar-backend/internal/models"
)

func TestFoldLedgerRunningBalance(t *testing.T) {
	events := []models.LedgerEvent{
		{Type: models.TxnCreditGiven, ReferenceID: 1, Amount: 1000, Date: day(1)},
		{Type: models.TxnPaymentReceived, ReferenceID: 2, Amount: 400, Date: day(3)},
		{Type: models.TxnCreditGiven, ReferenceID: 3, Amount: 500, Date: day(5)},
		{Type: models.TxnPaymentReceived, ReferenceID: 4, Amount: 600, Date: day(7)},
	}

	folded := FoldLedger(events)
	require.Len(t, folded, 4)

	// Newest first after folding
	require.Equal(t, 4, folded[0].ReferenceID)
	require.Equal(t, 500.0, folded[0].BalanceAfter)
	require.Equal(t, 3, folded[1].ReferenceID)
	require.Equal(t, 1100.0, folded[1].BalanceAfter)
	require.Equal(t, 2, folded[2].ReferenceID)
	require.Equal(t, 600.0, folded[2].BalanceAfter)
	require.Equal(t, 1, folded[3].ReferenceID)
	require.Equal(t, 1000.0, folded[3].BalanceAfter)
}

func TestFoldLedgerClampsBalanceAtZero(t *testing.T) {
	events := []models.LedgerEvent{
		{Type: models.TxnCreditGiven, ReferenceID: 1, Amount: 100, Date: day(1)},
		{Type: models.TxnPaymentReceived, ReferenceID: 2, Amount: 300, Date: day(2)},
		{Type: models.TxnCreditGiven, ReferenceID: 3, Amount: 50, Date: day(3)},
	}

	folded := FoldLedger(events)

	// Overpayment settles to zero rather than going negative, and the
	// next debt starts from zero
	require.Equal(t, 50.0, folded[0].BalanceAfter)
	require.Equal(t, 0.0, folded[1].BalanceAfter)
	require.Equal(t, 100.0, folded[2].BalanceAfter)
}

func TestFoldLedgerSortsUnorderedInput(t *testing.T) {
	events := []models.LedgerEvent{
		{Type: models.TxnPaymentReceived, ReferenceID: 2, Amount: 200, Date: day(9)},
		{Type: models.TxnCreditGiven, ReferenceID: 1, Amount: 500, Date: day(1)},
	}

	folded := FoldLedger(events)
	require.Equal(t, 300.0, folded[0].BalanceAfter)
	require.Equal(t, 500.0, folded[1].BalanceAfter)
}

func TestFoldLedgerCreditTakenLowersBalance(t *testing.T) {
	events := []models.LedgerEvent{
		{Type: models.TxnCreditGiven, ReferenceID: 1, Amount: 1000, Date: day(1)},
		{Type: models.TxnCreditTaken, ReferenceID: 2, Amount: 300, Date: day(2)},
	}

	folded := FoldLedger(events)
	require.Equal(t, 700.0, folded[0].BalanceAfter)
}

func TestFoldLedgerTakenCreditRepaymentRestoresBalance(t *testing.T) {
	// The business repaying a taken credit adds back to what the customer
	// owes; it must not fold like a payment the customer made
	events := []models.LedgerEvent{
		{Type: models.TxnCreditGiven, ReferenceID: 1, Amount: 2000, Date: day(1)},
		{Type: models.TxnCreditTaken, ReferenceID: 2, Amount: 500, Date: day(2)},
		{Type: models.TxnPaymentMade, ReferenceID: 3, Amount: 500, Date: day(3)},
	}

	folded := FoldLedger(events)
	require.Len(t, folded, 3)
	require.Equal(t, 2000.0, folded[0].BalanceAfter)
	require.Equal(t, 1500.0, folded[1].BalanceAfter)
	require.Equal(t, 2000.0, folded[2].BalanceAfter)
}

func TestFoldLedgerStableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	events := []models.LedgerEvent{
		{Type: models.TxnPaymentReceived, ReferenceID: 5, Amount: 100, Date: ts},
		{Type: models.TxnCreditGiven, ReferenceID: 4, Amount: 100, Date: ts},
	}

	// Lower reference id folds first on a tie
	folded := FoldLedger(events)
	require.Equal(t, 5, folded[0].ReferenceID)
	require.Equal(t, 0.0, folded[0].BalanceAfter)
	require.Equal(t, 4, folded[1].ReferenceID)
	require.Equal(t, 100.0, folded[1].BalanceAfter)
}

func TestFoldLedgerEmpty(t *testing.T) {
	require.Empty(t, FoldLedger(nil))
}

func TestCreditTxnEventDirection(t *testing.T) {
	given := creditTxnEvent(&models.CreditTransaction{ID: 1, Amount: 500, CreditType: models.CreditTypeGiven})
	require.Equal(t, models.TxnPaymentReceived, given.Type)

	taken := creditTxnEvent(&models.CreditTransaction{ID: 2, Amount: 500, CreditType: models.CreditTypeTaken})
	require.Equal(t, models.TxnPaymentMade, taken.Type)

	cash := creditTxnEvent(&models.CreditTransaction{ID: 3, Amount: 500, CreditType: models.CreditTypeCash})
	require.Equal(t, models.TxnPaymentReceived, cash.Type)
}
