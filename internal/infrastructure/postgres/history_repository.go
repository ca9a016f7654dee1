package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

const historyColumns = `id, operation_type, reference_number, product_id, product_name, sku,
	quantity, unit, from_location, to_location, operation_date, performed_by, created_at`

// HistoryRepo implementación de HistoryRepository sobre PostgreSQL (usable con
// pool o tx). El historial es append-only: solo inserta y lee.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository construye el adaptador del historial. Pasar pool o tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Create inserta un registro de historial.
func (r *HistoryRepo) Create(entry *entity.MovementHistoryEntry) error {
	query := `
		INSERT INTO movement_history (id, operation_type, reference_number, product_id, product_name, sku,
			quantity, unit, from_location, to_location, operation_date, performed_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.OperationType, entry.ReferenceNumber, entry.ProductID,
		entry.ProductName, entry.SKU, entry.Quantity, entry.Unit,
		entry.FromLocation, entry.ToLocation, entry.OperationDate, entry.PerformedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// ListRecent lista los registros más recientes (fecha de operación descendente).
func (r *HistoryRepo) ListRecent(limit int) ([]*entity.MovementHistoryEntry, error) {
	return r.List(repository.HistoryFilter{Limit: limit})
}

// List lista registros aplicando los filtros opcionales con paginación.
func (r *HistoryRepo) List(filter repository.HistoryFilter) ([]*entity.MovementHistoryEntry, error) {
	query := `SELECT ` + historyColumns + ` FROM movement_history WHERE 1=1`
	args := []any{}
	if filter.OperationType != "" {
		args = append(args, filter.OperationType)
		query += fmt.Sprintf(" AND operation_type = $%d", len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY operation_date DESC, created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementHistoryEntry
	for rows.Next() {
		var e entity.MovementHistoryEntry
		if err := rows.Scan(&e.ID, &e.OperationType, &e.ReferenceNumber, &e.ProductID,
			&e.ProductName, &e.SKU, &e.Quantity, &e.Unit,
			&e.FromLocation, &e.ToLocation, &e.OperationDate, &e.PerformedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
