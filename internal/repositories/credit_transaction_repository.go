package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
	"vyapar-backend/internal/timeutil"
)

type CreditTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewCreditTransactionRepository(db *pgxpool.Pool) *CreditTransactionRepository {
	return &CreditTransactionRepository{DB: db}
}

// Create appends a payment record against a credit
func (r *CreditTransactionRepository) Create(ctx context.Context, t *models.CreditTransaction) (*models.CreditTransaction, error) {
	query := `
		INSERT INTO credit_transactions (credit_id, customer_name, amount, transaction_date, notes, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	date := t.TransactionDate
	if date.IsZero() {
		date = timeutil.Now()
	}
	err := r.DB.QueryRow(ctx, query,
		t.CreditID, t.CustomerName, t.Amount, date, t.Notes, t.OwnerID).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create credit transaction: %w", err)
	}
	t.TransactionDate = date
	return t, nil
}

// ListByCredit returns payments against one credit, newest first
func (r *CreditTransactionRepository) ListByCredit(ctx context.Context, creditID, ownerID int) ([]*models.CreditTransaction, error) {
	query := `
		SELECT id, credit_id, customer_name, amount, transaction_date, COALESCE(notes, ''), owner_id, created_at
		FROM credit_transactions
		WHERE credit_id = $1 AND owner_id = $2 AND is_deleted = FALSE
		ORDER BY transaction_date DESC, id DESC`

	rows, err := r.DB.Query(ctx, query, creditID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list credit transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.CreditTransaction
	for rows.Next() {
		var t models.CreditTransaction
		if err := rows.Scan(&t.ID, &t.CreditID, &t.CustomerName, &t.Amount,
			&t.TransactionDate, &t.Notes, &t.OwnerID, &t.CreatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, &t)
	}
	return txns, rows.Err()
}

// ListByCustomer returns all of a customer's credit payments, oldest first,
// the order the ledger builder folds them in. Each row carries the parent
// credit's type so payments on taken credits fold in the opposite direction.
func (r *CreditTransactionRepository) ListByCustomer(ctx context.Context, ownerID int, customerName string) ([]*models.CreditTransaction, error) {
	query := `
		SELECT t.id, t.credit_id, t.customer_name, t.amount, t.transaction_date,
			COALESCE(t.notes, ''), t.owner_id, COALESCE(c.credit_type, 'given'), t.created_at
		FROM credit_transactions t
		LEFT JOIN credits c ON c.id = t.credit_id
		WHERE t.owner_id = $1 AND t.customer_name = $2 AND t.is_deleted = FALSE
		ORDER BY t.transaction_date ASC, t.id ASC`

	rows, err := r.DB.Query(ctx, query, ownerID, customerName)
	if err != nil {
		return nil, fmt.Errorf("list customer transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.CreditTransaction
	for rows.Next() {
		var t models.CreditTransaction
		if err := rows.Scan(&t.ID, &t.CreditID, &t.CustomerName, &t.Amount,
			&t.TransactionDate, &t.Notes, &t.OwnerID, &t.CreditType, &t.CreatedAt); err != nil {
			return nil, err
		}
		txns = append(txns, &t)
	}
	return txns, rows.Err()
}

// SoftDelete marks a transaction deleted without losing the audit trail
func (r *CreditTransactionRepository) SoftDelete(ctx context.Context, id, ownerID int) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE credit_transactions SET is_deleted = TRUE WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete credit transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
