package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockRepository define el puerto para el libro de stock. Las lecturas por
// tupla devuelven una fila con cantidad cero si no existe (ausencia = cero).
// Los métodos ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción.
type StockRepository interface {
	Create(stock *entity.StockEntry) error
	GetByCode(code string) (*entity.StockEntry, error)
	GetByCodeForUpdate(code string) (*entity.StockEntry, error)
	Find(productID, warehouseID, locationID string) (*entity.StockEntry, error)
	FindForUpdate(productID, warehouseID, locationID string) (*entity.StockEntry, error)
	Upsert(stock *entity.StockEntry) error
	// AddDelta inserta la fila con quantity=delta si la tupla no existe, o suma
	// delta sobre el valor almacenado en una sola sentencia atómica si existe.
	// Es la única mutación segura para deltas sobre tuplas que pueden no tener
	// fila todavía: FindForUpdate no tiene nada que bloquear en ese caso.
	// Devuelve la cantidad resultante.
	AddDelta(stock *entity.StockEntry, delta decimal.Decimal) (decimal.Decimal, error)
	List(limit, offset int) ([]*entity.StockEntry, error)
	Delete(code string) error
	// TotalByProduct agrega la cantidad de todas las filas del producto
	// (lectura derivada para visualización; nunca se materializa en Product).
	TotalByProduct(productID string) (decimal.Decimal, error)
}
