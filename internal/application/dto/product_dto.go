package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos nil no cambian.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
	ReorderPoint  *decimal.Decimal `json:"reorder_point"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LowStockProductResponse producto bajo su punto de reorden con el total
// agregado del libro de stock.
type LowStockProductResponse struct {
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// ProductStockResponse total agregado de stock de un producto (lectura derivada
// del libro de stock, nunca un campo materializado en el producto).
type ProductStockResponse struct {
	ProductID string          `json:"product_id"`
	Total     decimal.Decimal `json:"total"`
}
