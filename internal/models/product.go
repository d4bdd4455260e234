package models

import "time"

type Product struct {
	ID                int       `json:"id"`
	SKU               string    `json:"sku"`
	Name              string    `json:"name"`
	Unit              string    `json:"unit"`
	Price             float64   `json:"price"`
	StockQuantity     int       `json:"stock_quantity"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	OwnerID           int       `json:"owner_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsLowStock reports whether the product is at or below its threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= p.LowStockThreshold
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	Unit              string  `json:"unit"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	SKU               string  `json:"sku"`
	Name              string  `json:"name"`
	Unit              string  `json:"unit"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}
