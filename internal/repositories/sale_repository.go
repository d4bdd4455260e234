package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vyapar-backend/internal/models"
)

type SaleRepository struct {
	DB *pgxpool.Pool
}

func NewSaleRepository(db *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{DB: db}
}

var ErrInsufficientStock = errors.New("insufficient stock")

const saleColumns = `id, invoice_number, customer_name, customer_phone, total_amount, discount,
	final_amount, paid_amount, payment_status, COALESCE(notes, ''), owner_id, created_by_user_id,
	created_at, updated_at`

func scanSale(row pgx.Row) (*models.Sale, error) {
	var s models.Sale
	err := row.Scan(&s.ID, &s.InvoiceNumber, &s.CustomerName, &s.CustomerPhone,
		&s.TotalAmount, &s.Discount, &s.FinalAmount, &s.PaidAmount, &s.PaymentStatus,
		&s.Notes, &s.OwnerID, &s.CreatedByUserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts the sale, its items and the product stock decrements in a
// single transaction. The invoice number comes from a database sequence so
// concurrent sales never collide.
func (r *SaleRepository) Create(ctx context.Context, sale *models.Sale, items []models.SaleItem) (*models.SaleWithItems, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin sale tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('invoice_number_sequence')`).Scan(&seq); err != nil {
		return nil, fmt.Errorf("invoice sequence: %w", err)
	}
	invoiceNumber := fmt.Sprintf("INV-%06d", seq)

	query := `
		INSERT INTO sales (invoice_number, customer_name, customer_phone, total_amount, discount,
			final_amount, paid_amount, payment_status, notes, owner_id, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + saleColumns

	created, err := scanSale(tx.QueryRow(ctx, query,
		invoiceNumber, sale.CustomerName, sale.CustomerPhone, sale.TotalAmount, sale.Discount,
		sale.FinalAmount, sale.PaidAmount, sale.PaymentStatus, sale.Notes, sale.OwnerID,
		sale.CreatedByUserID))
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}

	result := &models.SaleWithItems{Sale: *created}
	for i := range items {
		item := &items[i]
		item.SaleID = created.ID

		err := tx.QueryRow(ctx, `
			INSERT INTO sale_items (sale_id, product_id, product_name, quantity, rate, amount)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at`,
			item.SaleID, item.ProductID, item.ProductName, item.Quantity, item.Rate, item.Amount,
		).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert sale item: %w", err)
		}

		// Stock only moves for catalogued products. Free-form lines
		// carry a NULL product_id.
		if item.ProductID != nil {
			tag, err := tx.Exec(ctx, `
				UPDATE products
				SET stock_quantity = stock_quantity - $1, updated_at = NOW()
				WHERE id = $2 AND owner_id = $3 AND stock_quantity >= $1`,
				item.Quantity, *item.ProductID, sale.OwnerID)
			if err != nil {
				return nil, fmt.Errorf("decrement stock: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductName)
			}
		}
		result.Items = append(result.Items, *item)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit sale: %w", err)
	}
	return result, nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id, ownerID int) (*models.SaleWithItems, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND owner_id = $2`
	sale, err := scanSale(r.DB.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	return &models.SaleWithItems{Sale: *sale, Items: items}, nil
}

// GetByInvoiceNumber resolves a sale from the printed invoice number
func (r *SaleRepository) GetByInvoiceNumber(ctx context.Context, ownerID int, invoiceNumber string) (*models.SaleWithItems, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE invoice_number = $1 AND owner_id = $2`
	sale, err := scanSale(r.DB.QueryRow(ctx, query, invoiceNumber, ownerID))
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	return &models.SaleWithItems{Sale: *sale, Items: items}, nil
}

func (r *SaleRepository) listItems(ctx context.Context, saleID int) ([]models.SaleItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, rate, amount, created_at
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []models.SaleItem
	for rows.Next() {
		var it models.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName,
			&it.Quantity, &it.Rate, &it.Amount, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SaleRepository) List(ctx context.Context, ownerID int, status, customerName string) ([]*models.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE owner_id = $1
		  AND ($2 = '' OR payment_status = $2)
		  AND ($3 = '' OR customer_name = $3)
		ORDER BY created_at DESC`

	rows, err := r.DB.Query(ctx, query, ownerID, status, customerName)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// ListOutstandingByCustomer returns a customer's unpaid invoices oldest
// first, the order FIFO allocation consumes them in.
func (r *SaleRepository) ListOutstandingByCustomer(ctx context.Context, ownerID int, customerName string) ([]*models.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE owner_id = $1 AND customer_name = $2 AND final_amount > paid_amount
		ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.Query(ctx, query, ownerID, customerName)
	if err != nil {
		return nil, fmt.Errorf("list outstanding sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// ListByCustomer returns all of a customer's invoices oldest first
func (r *SaleRepository) ListByCustomer(ctx context.Context, ownerID int, customerName string) ([]*models.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE owner_id = $1 AND customer_name = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := r.DB.Query(ctx, query, ownerID, customerName)
	if err != nil {
		return nil, fmt.Errorf("list customer sales: %w", err)
	}
	defer rows.Close()

	var sales []*models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

// UpdatePayment writes the paid amount and the derived status cache
func (r *SaleRepository) UpdatePayment(ctx context.Context, id, ownerID int, paidAmount float64, status models.CreditStatus) error {
	tag, err := r.DB.Exec(ctx, `
		UPDATE sales
		SET paid_amount = $1, payment_status = $2, updated_at = NOW()
		WHERE id = $3 AND owner_id = $4`,
		paidAmount, status, id, ownerID)
	if err != nil {
		return fmt.Errorf("update sale payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a sale with its items and restores product stock
func (r *SaleRepository) Delete(ctx context.Context, id, ownerID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT product_id, quantity FROM sale_items
		WHERE sale_id = $1 AND product_id IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	type restock struct {
		productID int
		quantity  int
	}
	var restocks []restock
	for rows.Next() {
		var rs restock
		if err := rows.Scan(&rs.productID, &rs.quantity); err != nil {
			rows.Close()
			return err
		}
		restocks = append(restocks, rs)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rs := range restocks {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock_quantity = stock_quantity + $1, updated_at = NOW()
			WHERE id = $2 AND owner_id = $3`, rs.quantity, rs.productID, ownerID); err != nil {
			return fmt.Errorf("restore stock: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM sales WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// DashboardTotals aggregates sales for the report summary
func (r *SaleRepository) DashboardTotals(ctx context.Context, ownerID int) (totalSales, totalReceived, totalPending float64, count int, err error) {
	err = r.DB.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(final_amount), 0),
			COALESCE(SUM(paid_amount), 0),
			COALESCE(SUM(GREATEST(final_amount - paid_amount, 0)), 0),
			COUNT(*)
		FROM sales WHERE owner_id = $1`, ownerID).
		Scan(&totalSales, &totalReceived, &totalPending, &count)
	if err != nil {
		err = fmt.Errorf("sales totals: %w", err)
	}
	return
}
