package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// El stock NO vive en el producto: se deriva del libro de stock por
// (producto, bodega, ubicación); el total por producto es una agregación.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	UnitOfMeasure string
	ReorderPoint  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
