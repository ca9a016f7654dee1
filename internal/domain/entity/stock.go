package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry es una fila del libro de stock: cantidad disponible de un producto
// en una tupla (bodega, ubicación). LocationID vacío representa el nivel bodega
// (documentos que no distinguen ubicación). Invariante: Quantity nunca negativa.
type StockEntry struct {
	ID          string
	Code        string // ST### único, generado por secuencia
	ProductID   string
	WarehouseID string
	LocationID  string
	Quantity    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
