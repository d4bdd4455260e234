package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

const productColumns = `id, COALESCE(sku, ''), name, unit, price, stock_quantity,
	low_stock_threshold, owner_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Unit, &p.Price, &p.StockQuantity,
		&p.LowStockThreshold, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, ownerID int, req *models.CreateProductRequest) (*models.Product, error) {
	query := `
		INSERT INTO products (sku, name, unit, price, stock_quantity, low_stock_threshold, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + productColumns

	return scanProduct(r.DB.QueryRow(ctx, query,
		req.SKU, req.Name, req.Unit, req.Price, req.StockQuantity, req.LowStockThreshold, ownerID))
}

func (r *ProductRepository) GetByID(ctx context.Context, id, ownerID int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND owner_id = $2`
	return scanProduct(r.DB.QueryRow(ctx, query, id, ownerID))
}

func (r *ProductRepository) List(ctx context.Context, ownerID int, lowStockOnly bool) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE owner_id = $1 AND ($2 = FALSE OR stock_quantity <= low_stock_threshold)
		ORDER BY name`

	rows, err := r.DB.Query(ctx, query, ownerID, lowStockOnly)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, id, ownerID int, req *models.UpdateProductRequest) (*models.Product, error) {
	query := `
		UPDATE products
		SET sku = $1, name = $2, unit = $3, price = $4, stock_quantity = $5,
		    low_stock_threshold = $6, updated_at = NOW()
		WHERE id = $7 AND owner_id = $8
		RETURNING ` + productColumns

	return scanProduct(r.DB.QueryRow(ctx, query,
		req.SKU, req.Name, req.Unit, req.Price, req.StockQuantity, req.LowStockThreshold, id, ownerID))
}

func (r *ProductRepository) Delete(ctx context.Context, id, ownerID int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
