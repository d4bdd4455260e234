package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type OnlineTransactionRepository struct {
	DB *pgxpool.Pool
}

func NewOnlineTransactionRepository(db *pgxpool.Pool) *OnlineTransactionRepository {
	return &OnlineTransactionRepository{DB: db}
}

const onlineTxnColumns = `id, razorpay_order_id, COALESCE(razorpay_payment_id, ''), customer_name,
	customer_phone, amount, status, owner_id, created_at, updated_at`

func scanOnlineTxn(row pgx.Row) (*models.OnlineTransaction, error) {
	var t models.OnlineTransaction
	err := row.Scan(&t.ID, &t.RazorpayOrderID, &t.RazorpayPaymentID, &t.CustomerName,
		&t.CustomerPhone, &t.Amount, &t.Status, &t.OwnerID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create records a freshly created Razorpay order
func (r *OnlineTransactionRepository) Create(ctx context.Context, orderID, customerName, customerPhone string, amount float64, ownerID int) (*models.OnlineTransaction, error) {
	query := `
		INSERT INTO online_transactions (razorpay_order_id, customer_name, customer_phone, amount, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + onlineTxnColumns

	return scanOnlineTxn(r.DB.QueryRow(ctx, query, orderID, customerName, customerPhone, amount, ownerID))
}

// GetByOrderID looks up the transaction for a webhook event
func (r *OnlineTransactionRepository) GetByOrderID(ctx context.Context, orderID string) (*models.OnlineTransaction, error) {
	query := `SELECT ` + onlineTxnColumns + ` FROM online_transactions WHERE razorpay_order_id = $1`
	return scanOnlineTxn(r.DB.QueryRow(ctx, query, orderID))
}

// MarkCaptured transitions the order to captured exactly once. Returns
// ErrNotFound when the order is missing or already past created, which
// makes webhook retries idempotent.
func (r *OnlineTransactionRepository) MarkCaptured(ctx context.Context, orderID, paymentID string) (*models.OnlineTransaction, error) {
	query := `
		UPDATE online_transactions
		SET status = 'captured', razorpay_payment_id = $1, updated_at = NOW()
		WHERE razorpay_order_id = $2 AND status = 'created'
		RETURNING ` + onlineTxnColumns

	return scanOnlineTxn(r.DB.QueryRow(ctx, query, paymentID, orderID))
}

// MarkFailed records a failed payment
func (r *OnlineTransactionRepository) MarkFailed(ctx context.Context, orderID string) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE online_transactions
		SET status = 'failed', updated_at = NOW()
		WHERE razorpay_order_id = $1 AND status = 'created'`, orderID)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}
