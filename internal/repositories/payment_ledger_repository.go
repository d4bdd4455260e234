package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type PaymentLedgerRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentLedgerRepository(db *pgxpool.Pool) *PaymentLedgerRepository {
	return &PaymentLedgerRepository{DB: db}
}

// Create records one payment with its allocation breakdown as JSONB
func (r *PaymentLedgerRepository) Create(ctx context.Context, e *models.PaymentLedgerEntry) (*models.PaymentLedgerEntry, error) {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return nil, fmt.Errorf("marshal allocation details: %w", err)
	}

	query := `
		INSERT INTO payment_ledger (customer_name, customer_phone, payment_amount, payment_date,
			details, notes, owner_id, created_by_user_id)
		VALUES ($1, $2, $3, COALESCE($4, NOW()), $5, $6, $7, $8)
		RETURNING id, payment_date, created_at`

	var paymentDate interface{}
	if !e.PaymentDate.IsZero() {
		paymentDate = e.PaymentDate
	}
	err = r.DB.QueryRow(ctx, query,
		e.CustomerName, e.CustomerPhone, e.PaymentAmount, paymentDate,
		details, e.Notes, e.OwnerID, e.CreatedByUserID,
	).Scan(&e.ID, &e.PaymentDate, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create ledger entry: %w", err)
	}
	return e, nil
}

func scanLedgerEntry(row pgx.Row) (*models.PaymentLedgerEntry, error) {
	var e models.PaymentLedgerEntry
	var details []byte
	err := row.Scan(&e.ID, &e.CustomerName, &e.CustomerPhone, &e.PaymentAmount,
		&e.PaymentDate, &details, &e.Notes, &e.OwnerID, &e.CreatedByUserID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(details, &e.Details); err != nil {
		return nil, fmt.Errorf("unmarshal allocation details: %w", err)
	}
	return &e, nil
}

const ledgerColumns = `id, customer_name, customer_phone, payment_amount, payment_date,
	details, COALESCE(notes, ''), owner_id, created_by_user_id, created_at`

func (r *PaymentLedgerRepository) GetByID(ctx context.Context, id, ownerID int) (*models.PaymentLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM payment_ledger WHERE id = $1 AND owner_id = $2`
	return scanLedgerEntry(r.DB.QueryRow(ctx, query, id, ownerID))
}

func (r *PaymentLedgerRepository) List(ctx context.Context, ownerID int, customerName string) ([]*models.PaymentLedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM payment_ledger
		WHERE owner_id = $1 AND ($2 = '' OR customer_name = $2)
		ORDER BY payment_date DESC, id DESC`

	rows, err := r.DB.Query(ctx, query, ownerID, customerName)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.PaymentLedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListByCustomerAsc returns a customer's payments oldest first, the order
// the ledger builder folds them in.
func (r *PaymentLedgerRepository) ListByCustomerAsc(ctx context.Context, ownerID int, customerName string) ([]*models.PaymentLedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM payment_ledger
		WHERE owner_id = $1 AND customer_name = $2
		ORDER BY payment_date ASC, id ASC`

	rows, err := r.DB.Query(ctx, query, ownerID, customerName)
	if err != nil {
		return nil, fmt.Errorf("list customer payments: %w", err)
	}
	defer rows.Close()

	var entries []*models.PaymentLedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
