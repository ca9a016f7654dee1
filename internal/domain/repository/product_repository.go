package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LowStockResult producto cuya existencia agregada en el libro está en o por
// debajo de su punto de reorden.
type LowStockResult struct {
	ProductID     string
	SKU           string
	Name          string
	UnitOfMeasure string
	ReorderPoint  decimal.Decimal
	TotalQuantity decimal.Decimal
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListBelowReorderPoint devuelve los productos con punto de reorden mayor a
	// cero cuyo total agregado del libro no lo supera, del déficit mayor al menor.
	ListBelowReorderPoint() ([]LowStockResult, error)
}
