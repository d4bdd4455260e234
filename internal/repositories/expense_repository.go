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

type ExpenseRepository struct {
	DB *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

const expenseColumns = `id, category, COALESCE(description, ''), amount, expense_date,
	owner_id, created_by_user_id, created_at, updated_at`

func scanExpense(row pgx.Row) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &e.ExpenseDate,
		&e.OwnerID, &e.CreatedByUserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) Create(ctx context.Context, ownerID, createdBy int, category, description string, amount float64, expenseDate time.Time) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (category, description, amount, expense_date, owner_id, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + expenseColumns

	return scanExpense(r.DB.QueryRow(ctx, query, category, description, amount, expenseDate, ownerID, createdBy))
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id, ownerID int) (*models.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1 AND owner_id = $2`
	return scanExpense(r.DB.QueryRow(ctx, query, id, ownerID))
}

// List returns expenses in a date range, newest first. Zero times skip the
// range filter.
func (r *ExpenseRepository) List(ctx context.Context, ownerID int, category string, from, to time.Time) ([]*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE owner_id = $1
		  AND ($2 = '' OR category = $2)
		  AND ($3::timestamptz IS NULL OR expense_date >= $3)
		  AND ($4::timestamptz IS NULL OR expense_date <= $4)
		ORDER BY expense_date DESC, id DESC`

	var fromArg, toArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}

	rows, err := r.DB.Query(ctx, query, ownerID, category, fromArg, toArg)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *ExpenseRepository) Update(ctx context.Context, id, ownerID int, category, description string, amount float64, expenseDate time.Time) (*models.Expense, error) {
	query := `
		UPDATE expenses
		SET category = $1, description = $2, amount = $3, expense_date = $4, updated_at = NOW()
		WHERE id = $5 AND owner_id = $6
		RETURNING ` + expenseColumns

	return scanExpense(r.DB.QueryRow(ctx, query, category, description, amount, expenseDate, id, ownerID))
}

func (r *ExpenseRepository) Delete(ctx context.Context, id, ownerID int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SummaryByCategory aggregates spend per category in a date range
func (r *ExpenseRepository) SummaryByCategory(ctx context.Context, ownerID int, from, to time.Time) ([]*models.ExpenseCategorySummary, error) {
	query := `
		SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE owner_id = $1
		  AND ($2::timestamptz IS NULL OR expense_date >= $2)
		  AND ($3::timestamptz IS NULL OR expense_date <= $3)
		GROUP BY category
		ORDER BY SUM(amount) DESC`

	var fromArg, toArg interface{}
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}

	rows, err := r.DB.Query(ctx, query, ownerID, fromArg, toArg)
	if err != nil {
		return nil, fmt.Errorf("expense summary: %w", err)
	}
	defer rows.Close()

	var summaries []*models.ExpenseCategorySummary
	for rows.Next() {
		var s models.ExpenseCategorySummary
		if err := rows.Scan(&s.Category, &s.Total, &s.Count); err != nil {
			return nil, err
		}
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}

// Total sums all expenses for the dashboard
func (r *ExpenseRepository) Total(ctx context.Context, ownerID int) (float64, error) {
	var total float64
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE owner_id = $1`, ownerID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("expense total: %w", err)
	}
	return total, nil
}
