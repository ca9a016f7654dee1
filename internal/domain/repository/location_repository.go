package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	ListAll() ([]*entity.Location, error)
	ListByWarehouse(warehouseID string) ([]*entity.Location, error)
}
