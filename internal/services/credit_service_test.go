package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vyapar-backend/internal/models"
)

func TestUpdateCreditRejectsBlankCustomerName(t *testing.T) {
	// Ledger lookups key on customer name, so an update must not blank it.
	// Validation runs before any repository access.
	s := NewCreditService(nil, nil, nil)

	_, err := s.Update(context.Background(), 1, 1, &models.UpdateCreditRequest{
		CustomerName: "   ",
		Amount:       100,
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateCreditRejectsNonPositiveAmount(t *testing.T) {
	s := NewCreditService(nil, nil, nil)

	_, err := s.Update(context.Background(), 1, 1, &models.UpdateCreditRequest{
		CustomerName: "Ramesh",
		Amount:       0,
	})
	require.ErrorIs(t, err, ErrValidation)
}
