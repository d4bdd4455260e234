package services

import (
	"context"
	"fmt"
	"sort"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/repositories"
)

// LedgerService builds the merged, running-balance customer history from
// credits, credit payments, sales and the payment ledger.
type LedgerService struct {
	credits  *repositories.CreditRepository
	txns     *repositories.CreditTransactionRepository
	sales    *repositories.SaleRepository
	payments *repositories.PaymentLedgerRepository
}

func NewLedgerService(
	credits *repositories.CreditRepository,
	txns *repositories.CreditTransactionRepository,
	sales *repositories.SaleRepository,
	payments *repositories.PaymentLedgerRepository,
) *LedgerService {
	return &LedgerService{credits: credits, txns: txns, sales: sales, payments: payments}
}

// BuildCustomerLedger loads every event for a customer and folds them into
// a history with running balances, newest first.
func (s *LedgerService) BuildCustomerLedger(ctx context.Context, ownerID int, customerName string) ([]models.LedgerEvent, error) {
	var events []models.LedgerEvent

	credits, err := s.credits.ListByCustomer(ctx, ownerID, customerName)
	if err != nil {
		return nil, err
	}
	for _, c := range credits {
		t := models.TxnCreditGiven
		if c.CreditType == models.CreditTypeTaken {
			t = models.TxnCreditTaken
		}
		events = append(events, models.LedgerEvent{
			Type:        t,
			ReferenceID: c.ID,
			Description: fmt.Sprintf("Credit (%s)", c.CreditType),
			Amount:      c.Amount,
			Date:        c.CreatedAt,
		})
	}

	txns, err := s.txns.ListByCustomer(ctx, ownerID, customerName)
	if err != nil {
		return nil, err
	}
	for _, t := range txns {
		events = append(events, creditTxnEvent(t))
	}

	sales, err := s.sales.ListByCustomer(ctx, ownerID, customerName)
	if err != nil {
		return nil, err
	}
	for _, sale := range sales {
		events = append(events, models.LedgerEvent{
			Type:        models.TxnCreditGiven,
			ReferenceID: sale.ID,
			Description: fmt.Sprintf("Invoice %s", sale.InvoiceNumber),
			Amount:      sale.FinalAmount,
			Date:        sale.CreatedAt,
		})
		// The amount collected at sale time never hits the payment
		// ledger, so it enters the fold as its own event.
		if sale.PaidAmount > 0 {
			events = append(events, models.LedgerEvent{
				Type:        models.TxnPaymentReceived,
				ReferenceID: sale.ID,
				Description: fmt.Sprintf("Paid with invoice %s", sale.InvoiceNumber),
				Amount:      sale.PaidAmount,
				Date:        sale.CreatedAt,
			})
		}
	}

	payments, err := s.payments.ListByCustomerAsc(ctx, ownerID, customerName)
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		events = append(events, models.LedgerEvent{
			Type:        models.TxnPaymentReceived,
			ReferenceID: p.ID,
			Description: "Payment received",
			Amount:      p.PaymentAmount,
			Date:        p.PaymentDate,
		})
	}

	return FoldLedger(events), nil
}

// creditTxnEvent maps a payment against a credit to its ledger event.
// Paying down a taken credit is money leaving the business, which restores
// what the customer owes rather than reducing it.
func creditTxnEvent(t *models.CreditTransaction) models.LedgerEvent {
	typ := models.TxnPaymentReceived
	desc := "Payment against credit"
	if t.CreditType == models.CreditTypeTaken {
		typ = models.TxnPaymentMade
		desc = "Repayment of credit taken"
	}
	return models.LedgerEvent{
		Type:        typ,
		ReferenceID: t.ID,
		Description: desc,
		Amount:      t.Amount,
		Date:        t.TransactionDate,
	}
}

// FoldLedger sorts events chronologically, computes running balances and
// returns them newest first. Debts raise the balance, payments lower it,
// and the balance clamps at zero so an overpayment shows as settled rather
// than negative.
func FoldLedger(events []models.LedgerEvent) []models.LedgerEvent {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ReferenceID < events[j].ReferenceID
		}
		return events[i].Date.Before(events[j].Date)
	})

	balance := 0.0
	for i := range events {
		switch events[i].Type {
		case models.TxnCreditGiven:
			balance += events[i].Amount
		case models.TxnCreditTaken:
			balance -= events[i].Amount
		case models.TxnPaymentReceived:
			balance -= events[i].Amount
		case models.TxnPaymentMade:
			balance += events[i].Amount
		}
		if balance < 0 {
			balance = 0
		}
		events[i].BalanceAfter = balance
	}

	// Newest first for display
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events
}
