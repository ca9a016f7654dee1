package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest entrada para crear una fila del libro de stock. El código
// ST### lo asigna el servidor desde la secuencia.
type CreateStockRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	LocationID  string          `json:"location_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// AdjustStockRequest entrada para increase/decrease directo sobre una fila
// (rutas de compatibilidad /api/stock/increase y /api/stock/decrease).
type AdjustStockRequest struct {
	StockID string          `json:"stock_id"`
	Qty     decimal.Decimal `json:"qty"`
}

// StockResponse salida de una fila del libro de stock.
type StockResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	LocationID  string          `json:"location_id,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
