package inventory

import (
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// HistoryUseCase consultas de solo lectura sobre el historial de movimientos.
// Escribir en el historial es privilegio exclusivo del motor de commit.
type HistoryUseCase struct {
	historyRepo repository.HistoryRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(historyRepo repository.HistoryRepository) *HistoryUseCase {
	return &HistoryUseCase{historyRepo: historyRepo}
}

// List devuelve entradas del historial, opcionalmente filtradas por tipo de
// operación o producto, de la más reciente a la más antigua.
func (uc *HistoryUseCase) List(operationType, productID string, limit, offset int) ([]dto.HistoryEntryResponse, error) {
	if limit <= 0 {
		limit = 100
	}
	entries, err := uc.historyRepo.List(repository.HistoryFilter{
		OperationType: operationType,
		ProductID:     productID,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toHistoryResponse(e))
	}
	return items, nil
}

func toHistoryResponse(e *entity.MovementHistoryEntry) dto.HistoryEntryResponse {
	return dto.HistoryEntryResponse{
		ID:              e.ID,
		OperationType:   e.OperationType,
		ReferenceNumber: e.ReferenceNumber,
		ProductID:       e.ProductID,
		ProductName:     e.ProductName,
		SKU:             e.SKU,
		Quantity:        e.Quantity,
		Unit:            e.Unit,
		FromLocation:    e.FromLocation,
		ToLocation:      e.ToLocation,
		OperationDate:   e.OperationDate,
		PerformedBy:     e.PerformedBy,
	}
}
