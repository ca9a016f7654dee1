package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LocationUseCase casos de uso para ubicaciones. Una ubicación se crea siempre
// después de su bodega y queda atada a ella.
type LocationUseCase struct {
	repo          repository.LocationRepository
	warehouseRepo repository.WarehouseRepository
	seqRepo       repository.SequenceRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	repo repository.LocationRepository,
	warehouseRepo repository.WarehouseRepository,
	seqRepo repository.SequenceRepository,
) *LocationUseCase {
	return &LocationUseCase{repo: repo, warehouseRepo: warehouseRepo, seqRepo: seqRepo}
}

// Create crea una ubicación con código LOC### secuencial. La bodega debe
// existir y el tipo ser uno de rack/shelf/bin/floor.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.WarehouseID == "" || in.Name == "" || !entity.ValidLocationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	n, err := uc.seqRepo.Next(repository.SequenceLocation)
	if err != nil {
		return nil, err
	}
	location := &entity.Location{
		ID:          uuid.New().String(),
		Code:        entity.FormatCode(entity.CodePrefixLocation, n),
		WarehouseID: in.WarehouseID,
		Name:        in.Name,
		Type:        in.Type,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// ListAll lista todas las ubicaciones.
func (uc *LocationUseCase) ListAll() ([]dto.LocationResponse, error) {
	list, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	return toLocationResponses(list), nil
}

// ListByWarehouse lista las ubicaciones de una bodega.
func (uc *LocationUseCase) ListByWarehouse(warehouseID string) ([]dto.LocationResponse, error) {
	list, err := uc.repo.ListByWarehouse(warehouseID)
	if err != nil {
		return nil, err
	}
	return toLocationResponses(list), nil
}

func toLocationResponses(list []*entity.Location) []dto.LocationResponse {
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		Code:        l.Code,
		WarehouseID: l.WarehouseID,
		Name:        l.Name,
		Type:        l.Type,
		CreatedAt:   l.CreatedAt,
	}
}
