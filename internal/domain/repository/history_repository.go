package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// HistoryFilter filtros para consultar el historial. OperationType vacío trae
// todos los tipos.
type HistoryFilter struct {
	OperationType string
	ProductID     string
	Limit         int
	Offset        int
}

// HistoryRepository define el puerto para el historial de movimientos.
// Es append-only: no existe Update ni Delete.
type HistoryRepository interface {
	Create(entry *entity.MovementHistoryEntry) error
	ListRecent(limit int) ([]*entity.MovementHistoryEntry, error)
	List(filter HistoryFilter) ([]*entity.MovementHistoryEntry, error)
}
