package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase expone las operaciones directas sobre el libro de stock que la
// API de compatibilidad necesita: crear fila, listar, consultar por código,
// increase/decrease y borrar. Las mutaciones de cantidad pasan por el TxRunner
// con bloqueo de fila para serializar escritores concurrentes de la misma tupla.
type StockUseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
	seqRepo       repository.SequenceRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	locationRepo repository.LocationRepository,
	seqRepo repository.SequenceRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		seqRepo:       seqRepo,
	}
}

// Create crea una fila del libro para una tupla (producto, bodega, ubicación).
// Valida que las referencias existan y que la tupla no esté ya registrada.
func (uc *StockUseCase) Create(in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownProduct
	}
	wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if in.LocationID != "" {
		loc, err := uc.locationRepo.GetByID(in.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil || loc.WarehouseID != in.WarehouseID {
			return nil, domain.ErrInvalidInput
		}
	}
	existing, err := uc.stockRepo.Find(in.ProductID, in.WarehouseID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != "" {
		return nil, domain.ErrDuplicate
	}

	n, err := uc.seqRepo.Next(repository.SequenceStock)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	stock := &entity.StockEntry{
		ID:          uuid.New().String(),
		Code:        entity.FormatCode(entity.CodePrefixStock, n),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		LocationID:  in.LocationID,
		Quantity:    in.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.stockRepo.Create(stock); err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// Increase suma qty a la fila identificada por su código ST###. La fila se
// bloquea dentro de la transacción para no perder actualizaciones concurrentes.
func (uc *StockUseCase) Increase(ctx context.Context, stockCode string, qty decimal.Decimal) (decimal.Decimal, error) {
	return uc.adjust(ctx, stockCode, qty)
}

// Decrease resta qty. Un resultado negativo se rechaza con ErrInsufficientStock
// y la fila queda intacta: nunca se recorta a cero.
func (uc *StockUseCase) Decrease(ctx context.Context, stockCode string, qty decimal.Decimal) (decimal.Decimal, error) {
	return uc.adjust(ctx, stockCode, qty.Neg())
}

func (uc *StockUseCase) adjust(ctx context.Context, stockCode string, delta decimal.Decimal) (decimal.Decimal, error) {
	if stockCode == "" || delta.IsZero() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	var newQty decimal.Decimal
	err := uc.txRunner.Run(ctx, func(
		_ repository.DocumentRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.HistoryRepository,
	) error {
		stock, err := stockRepo.GetByCodeForUpdate(stockCode)
		if err != nil {
			return err
		}
		if stock == nil {
			return domain.ErrNotFound
		}
		q := stock.Quantity.Add(delta)
		if q.IsNegative() {
			return domain.ErrInsufficientStock
		}
		stock.Quantity = q
		stock.UpdatedAt = time.Now()
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}
		newQty = q
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newQty, nil
}

// GetByCode obtiene una fila por su código ST###. Devuelve nil si no existe.
func (uc *StockUseCase) GetByCode(code string) (*dto.StockResponse, error) {
	stock, err := uc.stockRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, nil
	}
	return toStockResponse(stock), nil
}

// List lista filas del libro con paginación.
func (uc *StockUseCase) List(limit, offset int) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return items, nil
}

// Delete elimina una fila por su código.
func (uc *StockUseCase) Delete(code string) error {
	stock, err := uc.stockRepo.GetByCode(code)
	if err != nil {
		return err
	}
	if stock == nil {
		return domain.ErrNotFound
	}
	return uc.stockRepo.Delete(code)
}

func toStockResponse(s *entity.StockEntry) *dto.StockResponse {
	return &dto.StockResponse{
		ID:          s.ID,
		Code:        s.Code,
		ProductID:   s.ProductID,
		WarehouseID: s.WarehouseID,
		LocationID:  s.LocationID,
		Quantity:    s.Quantity,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
