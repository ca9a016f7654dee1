package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, code, product_id, warehouse_id, location_id, quantity, created_at, updated_at`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador del libro de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func scanStock(row pgx.Row) (*entity.StockEntry, error) {
	var s entity.StockEntry
	err := row.Scan(&s.ID, &s.Code, &s.ProductID, &s.WarehouseID, &s.LocationID,
		&s.Quantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta una fila nueva en el libro de stock.
func (r *StockRepo) Create(stock *entity.StockEntry) error {
	query := `
		INSERT INTO stock (id, code, product_id, warehouse_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.Code, stock.ProductID, stock.WarehouseID, stock.LocationID,
		stock.Quantity, stock.CreatedAt, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByCode obtiene una fila de stock por su código ST###.
func (r *StockRepo) GetByCode(code string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE code = $1`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by code: %w", err)
	}
	return s, nil
}

// GetByCodeForUpdate obtiene una fila por código y la bloquea (SELECT FOR UPDATE).
func (r *StockRepo) GetByCodeForUpdate(code string) (*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock WHERE code = $1 FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock by code for update: %w", err)
	}
	return s, nil
}

// Find obtiene el stock de la tupla (producto, bodega, ubicación).
// Si la fila no existe devuelve una con cantidad cero e ID vacío.
func (r *StockRepo) Find(productID, warehouseID, locationID string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, productID, warehouseID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroStock(productID, warehouseID, locationID), nil
		}
		return nil, fmt.Errorf("find stock: %w", err)
	}
	return s, nil
}

// FindForUpdate obtiene el stock de la tupla y bloquea la fila (SELECT FOR UPDATE).
// Si la fila no existe devuelve una con cantidad cero e ID vacío; en ese caso no
// hay fila que bloquear, así que cualquier mutación relativa posterior debe ir
// por AddDelta, nunca por Upsert.
func (r *StockRepo) FindForUpdate(productID, warehouseID, locationID string) (*entity.StockEntry, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE product_id = $1 AND warehouse_id = $2 AND location_id = $3
		FOR UPDATE`
	s, err := scanStock(r.q.QueryRow(context.Background(), query, productID, warehouseID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zeroStock(productID, warehouseID, locationID), nil
		}
		return nil, fmt.Errorf("find stock for update: %w", err)
	}
	return s, nil
}

func zeroStock(productID, warehouseID, locationID string) *entity.StockEntry {
	return &entity.StockEntry{
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		Quantity:    decimal.Zero,
	}
}

// Upsert inserta o sobrescribe la cantidad de la tupla con un valor autoritativo
// (conteo físico, ajuste manual). Solo es válido con la fila bloqueada o cuando
// el valor escrito debe ganar sin importar escrituras concurrentes; para
// mutaciones relativas usar AddDelta.
func (r *StockRepo) Upsert(stock *entity.StockEntry) error {
	query := `
		INSERT INTO stock (id, code, product_id, warehouse_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (product_id, warehouse_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.Code, stock.ProductID, stock.WarehouseID, stock.LocationID, stock.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// AddDelta inserta la fila con quantity=delta o suma delta sobre el valor
// almacenado. La rama de conflicto suma sobre stock.quantity, no sobre lo que
// el caller leyó: si la tupla no existía al leerla y otra transacción la insertó
// entre tanto, el INSERT bloquea en el índice único y el delta se aplica sobre
// la fila ya visible en vez de sobrescribirla. Un resultado negativo viola el
// CHECK de la tabla y se reporta como ErrInsufficientStock.
func (r *StockRepo) AddDelta(stock *entity.StockEntry, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (id, code, product_id, warehouse_id, location_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (product_id, warehouse_id, location_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var newQty decimal.Decimal
	err := r.q.QueryRow(context.Background(), query,
		stock.ID, stock.Code, stock.ProductID, stock.WarehouseID, stock.LocationID, delta,
	).Scan(&newQty)
	if err != nil {
		if isCheckViolation(err) {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		return decimal.Zero, fmt.Errorf("add stock delta: %w", err)
	}
	return newQty, nil
}

// List lista filas de stock con paginación.
func (r *StockRepo) List(limit, offset int) ([]*entity.StockEntry, error) {
	query := `SELECT ` + stockColumns + ` FROM stock ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Delete elimina una fila de stock por código.
func (r *StockRepo) Delete(code string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM stock WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// TotalByProduct agrega la cantidad de todas las filas del producto.
func (r *StockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`,
		productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total stock by product: %w", err)
	}
	return total, nil
}
