package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type CreditRepository struct {
	DB *pgxpool.Pool
}

func NewCreditRepository(db *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{DB: db}
}

const creditColumns = `id, customer_name, customer_phone, credit_type, amount, paid_amount,
	remaining_amount, due_date, status, COALESCE(notes, ''), owner_id, created_at, updated_at`

func scanCredit(row pgx.Row) (*models.Credit, error) {
	var c models.Credit
	err := row.Scan(&c.ID, &c.CustomerName, &c.CustomerPhone, &c.CreditType, &c.Amount,
		&c.PaidAmount, &c.RemainingAmount, &c.DueDate, &c.Status, &c.Notes, &c.OwnerID,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CreditRepository) Create(ctx context.Context, c *models.Credit) (*models.Credit, error) {
	query := `
		INSERT INTO credits (customer_name, customer_phone, credit_type, amount, paid_amount,
			remaining_amount, due_date, status, notes, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + creditColumns

	return scanCredit(r.DB.QueryRow(ctx, query,
		c.CustomerName, c.CustomerPhone, c.CreditType, c.Amount, c.PaidAmount,
		c.RemainingAmount, c.DueDate, c.Status, c.Notes, c.OwnerID))
}

func (r *CreditRepository) GetByID(ctx context.Context, id, ownerID int) (*models.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE id = $1 AND owner_id = $2`
	return scanCredit(r.DB.QueryRow(ctx, query, id, ownerID))
}

func (r *CreditRepository) List(ctx context.Context, ownerID int, status, customerName string) ([]*models.Credit, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM credits
		WHERE owner_id = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR customer_name = $3)
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, ownerID, status, customerName)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}
	defer rows.Close()

	var credits []*models.Credit
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// ListByCustomer returns a customer's credits oldest first, the order FIFO
// allocation consumes them in.
func (r *CreditRepository) ListByCustomer(ctx context.Context, ownerID int, customerName string) ([]*models.Credit, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM credits
		WHERE owner_id = $1 AND customer_name = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.Query(ctx, query, ownerID, customerName)
	if err != nil {
		return nil, fmt.Errorf("list customer credits: %w", err)
	}
	defer rows.Close()

	var credits []*models.Credit
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

func (r *CreditRepository) Update(ctx context.Context, c *models.Credit) (*models.Credit, error) {
	query := `
		UPDATE credits
		SET customer_name = $1, customer_phone = $2, amount = $3, paid_amount = $4,
		    remaining_amount = $5, due_date = $6, status = $7, notes = $8, updated_at = NOW()
		WHERE id = $9 AND owner_id = $10
		RETURNING ` + creditColumns

	return scanCredit(r.DB.QueryRow(ctx, query,
		c.CustomerName, c.CustomerPhone, c.Amount, c.PaidAmount, c.RemainingAmount,
		c.DueDate, c.Status, c.Notes, c.ID, c.OwnerID))
}

// UpdateAmounts writes the payment columns and the derived status cache
func (r *CreditRepository) UpdateAmounts(ctx context.Context, id, ownerID int, paid, remaining float64, status models.CreditStatus) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE credits
		SET paid_amount = $1, remaining_amount = $2, status = $3, updated_at = NOW()
		WHERE id = $4 AND owner_id = $5`,
		paid, remaining, status, id, ownerID)
	if err != nil {
		return fmt.Errorf("update credit amounts: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CreditRepository) Delete(ctx context.Context, id, ownerID int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM credits WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete credit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RefreshOverdueStatuses flips pending/partial credits past their due date
// to overdue. Runs periodically so list views stay accurate without
// recomputing on every read.
func (r *CreditRepository) RefreshOverdueStatuses(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx, `
		UPDATE credits
		SET status = 'overdue', updated_at = NOW()
		WHERE remaining_amount > 0
		  AND due_date IS NOT NULL AND due_date < $1
		  AND status IN ('pending', 'partial')`,
		now)
	if err != nil {
		return 0, fmt.Errorf("refresh overdue: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Summary aggregates one customer's credit position
func (r *CreditRepository) Summary(ctx context.Context, ownerID int, customerName string) (*models.CreditSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN credit_type = 'given' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN credit_type = 'taken' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(paid_amount), 0),
			COALESCE(SUM(remaining_amount), 0),
			COUNT(*)
		FROM credits
		WHERE owner_id = $1 AND customer_name = $2`

	s := &models.CreditSummary{CustomerName: customerName}
	err := r.DB.QueryRow(ctx, query, ownerID, customerName).Scan(
		&s.TotalGiven, &s.TotalTaken, &s.TotalPaid, &s.TotalRemaining, &s.CreditCount)
	if err != nil {
		return nil, fmt.Errorf("credit summary: %w", err)
	}
	return s, nil
}
