package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, name, name_normalized, phone, owner_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.NameNormalized, &c.Phone, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, ownerID int, name, phone string) (*models.Customer, error) {
	query := `
		INSERT INTO customers (name, name_normalized, phone, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + customerColumns

	return scanCustomer(r.DB.QueryRow(ctx, query, name, models.NormalizeCustomerName(name), phone, ownerID))
}

// Upsert resolves a typed name to the canonical customer row, creating it on
// first sight. Matching is on the normalized name within the owner scope.
func (r *CustomerRepository) Upsert(ctx context.Context, ownerID int, name, phone string) (*models.Customer, error) {
	query := `
		INSERT INTO customers (name, name_normalized, phone, owner_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, name_normalized) DO UPDATE
		SET phone = CASE WHEN EXCLUDED.phone = '' THEN customers.phone ELSE EXCLUDED.phone END,
		    updated_at = NOW()
		RETURNING ` + customerColumns

	return scanCustomer(r.DB.QueryRow(ctx, query, name, models.NormalizeCustomerName(name), phone, ownerID))
}

func (r *CustomerRepository) GetByID(ctx context.Context, id, ownerID int) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND owner_id = $2`
	return scanCustomer(r.DB.QueryRow(ctx, query, id, ownerID))
}

func (r *CustomerRepository) List(ctx context.Context, ownerID int) ([]*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE owner_id = $1 ORDER BY name`

	rows, err := r.DB.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Search matches on normalized name prefix or phone, for autocomplete
func (r *CustomerRepository) Search(ctx context.Context, ownerID int, q string, limit int) ([]*models.Customer, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE owner_id = $1 AND (name_normalized LIKE $2 || '%' OR phone LIKE $2 || '%')
		ORDER BY name
		LIMIT $3`

	rows, err := r.DB.Query(ctx, query, ownerID, models.NormalizeCustomerName(q), limit)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, id, ownerID int, name, phone string) (*models.Customer, error) {
	query := `
		UPDATE customers
		SET name = $1, name_normalized = $2, phone = $3, updated_at = NOW()
		WHERE id = $4 AND owner_id = $5
		RETURNING ` + customerColumns

	return scanCustomer(r.DB.QueryRow(ctx, query, name, models.NormalizeCustomerName(name), phone, id, ownerID))
}

func (r *CustomerRepository) Delete(ctx context.Context, id, ownerID int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
