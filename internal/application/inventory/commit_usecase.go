package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DeliveryPolicy decide qué hacer cuando una entrega excede el stock disponible.
type DeliveryPolicy string

const (
	// DeliveryPolicyReject rechaza la entrega con ErrInsufficientStock.
	DeliveryPolicyReject DeliveryPolicy = "reject"
	// DeliveryPolicyClamp deja el stock en cero en vez de rechazar (paridad con
	// el comportamiento histórico; no recomendado).
	DeliveryPolicyClamp DeliveryPolicy = "clamp"
)

// CommitUseCase es el motor de commit: lleva un documento de movimiento abierto
// (draft/waiting/ready) a done aplicando su efecto sobre el libro de stock y
// registrando el historial, todo dentro de una transacción con bloqueo de filas
// (SELECT FOR UPDATE). Cualquier falla en la fase de aplicación revierte la
// transacción completa: el documento queda en su estado previo y el libro intacto.
type CommitUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.LocationRepository
	seqRepo       repository.SequenceRepository
	policy        DeliveryPolicy
}

// NewCommitUseCase construye el motor. policy vacío equivale a reject.
func NewCommitUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	locationRepo repository.LocationRepository,
	seqRepo repository.SequenceRepository,
	policy DeliveryPolicy,
) *CommitUseCase {
	if policy == "" {
		policy = DeliveryPolicyReject
	}
	return &CommitUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		seqRepo:       seqRepo,
		policy:        policy,
	}
}

// Commit confirma el documento: valida precondiciones, aplica las líneas en el
// orden listado, escribe una entrada de historial por línea y deja status=done
// como última acción. El cambio de status dentro de la misma transacción actúa
// como marca de atomicidad para los lectores.
//
// Precondiciones (errores sin envolver): ErrNotFound si el documento no existe,
// ErrAlreadyCommitted si ya está done, ErrInvalidState si está cancelado o sus
// líneas son inválidas. Las fallas de la fase de aplicación se devuelven
// envueltas en CommitError con la causa original (ErrUnknownProduct,
// ErrInsufficientStock, errores de infraestructura).
func (uc *CommitUseCase) Commit(ctx context.Context, documentID, performedBy string) error {
	return uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		historyRepo repository.HistoryRepository,
	) error {
		// Bloquea la fila del documento: dos commits concurrentes del mismo
		// documento se serializan y el segundo ve status=done.
		doc, err := docRepo.GetForUpdate(documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		switch {
		case doc.Status == entity.StatusDone:
			return domain.ErrAlreadyCommitted
		case doc.Status == entity.StatusCancelled:
			return domain.ErrInvalidState
		case !doc.IsOpen():
			return domain.ErrInvalidState
		}
		if len(doc.LineItems) == 0 {
			return domain.ErrInvalidState
		}

		var applyErr error
		switch doc.Type {
		case entity.DocumentTypeReceipt:
			applyErr = uc.applyReceipt(doc, stockRepo, productRepo, historyRepo, performedBy)
		case entity.DocumentTypeDelivery:
			applyErr = uc.applyDelivery(doc, stockRepo, productRepo, historyRepo, performedBy)
		case entity.DocumentTypeTransfer:
			applyErr = uc.applyTransfer(doc, stockRepo, productRepo, historyRepo, performedBy)
		case entity.DocumentTypeAdjustment:
			applyErr = uc.applyAdjustment(doc, stockRepo, productRepo, historyRepo, performedBy)
		default:
			return domain.ErrInvalidState
		}
		if applyErr != nil {
			return &domain.CommitError{DocumentID: doc.ID, Err: applyErr}
		}

		// Última acción: el flip de estado dentro de la tx marca el documento
		// como completamente confirmado.
		if err := docRepo.SetStatus(doc.ID, entity.StatusDone); err != nil {
			return &domain.CommitError{DocumentID: doc.ID, Err: err}
		}
		return nil
	})
}

// applyReceipt suma cada línea al stock de la bodega del documento.
func (uc *CommitUseCase) applyReceipt(
	doc *entity.MovementDocument,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
	performedBy string,
) error {
	wh, err := uc.resolveWarehouse(doc.WarehouseID)
	if err != nil {
		return err
	}
	from := doc.Counterparty
	if from == "" {
		from = "Supplier"
	}
	now := time.Now()
	for _, li := range doc.LineItems {
		product, err := resolveProduct(productRepo, li.ProductID)
		if err != nil {
			return err
		}
		if !li.Quantity.IsPositive() {
			return domain.ErrInvalidState
		}
		if _, err := uc.applyDelta(stockRepo, li.ProductID, wh.ID, "", li.Quantity, now); err != nil {
			return err
		}
		entry := newHistoryEntry(doc, product, li.Quantity, from, wh.Code, performedBy, now)
		if err := historyRepo.Create(entry); err != nil {
			return err
		}
	}
	return nil
}

// applyDelivery resta cada línea del stock de la bodega. Con la política por
// defecto una entrega sobre stock insuficiente se rechaza; con clamp el stock
// queda en cero y el historial registra solo la cantidad efectivamente restada
// (comportamiento histórico, solo si se habilita explícitamente).
func (uc *CommitUseCase) applyDelivery(
	doc *entity.MovementDocument,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
	performedBy string,
) error {
	wh, err := uc.resolveWarehouse(doc.WarehouseID)
	if err != nil {
		return err
	}
	to := doc.Counterparty
	if to == "" {
		to = "Customer"
	}
	now := time.Now()
	for _, li := range doc.LineItems {
		product, err := resolveProduct(productRepo, li.ProductID)
		if err != nil {
			return err
		}
		if !li.Quantity.IsPositive() {
			return domain.ErrInvalidState
		}
		applied := li.Quantity
		if uc.policy == DeliveryPolicyClamp {
			applied, err = uc.clampToZero(stockRepo, li.ProductID, wh.ID, "", li.Quantity, now)
			if err != nil {
				return err
			}
		} else {
			if _, err := uc.applyDelta(stockRepo, li.ProductID, wh.ID, "", li.Quantity.Neg(), now); err != nil {
				return err
			}
		}
		entry := newHistoryEntry(doc, product, applied, wh.Code, to, performedBy, now)
		if err := historyRepo.Create(entry); err != nil {
			return err
		}
	}
	return nil
}

// applyTransfer resta en la ubicación origen y suma en la destino. Ambos lados
// viven en la misma transacción: o se aplican los dos o ninguno.
func (uc *CommitUseCase) applyTransfer(
	doc *entity.MovementDocument,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
	performedBy string,
) error {
	fromLoc, err := uc.resolveLocation(doc.FromLocationID)
	if err != nil {
		return err
	}
	toLoc, err := uc.resolveLocation(doc.ToLocationID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, li := range doc.LineItems {
		product, err := resolveProduct(productRepo, li.ProductID)
		if err != nil {
			return err
		}
		if !li.Quantity.IsPositive() {
			return domain.ErrInvalidState
		}
		if _, err := uc.applyDelta(stockRepo, li.ProductID, fromLoc.WarehouseID, fromLoc.ID, li.Quantity.Neg(), now); err != nil {
			return err
		}
		if _, err := uc.applyDelta(stockRepo, li.ProductID, toLoc.WarehouseID, toLoc.ID, li.Quantity, now); err != nil {
			return err
		}
		entry := newHistoryEntry(doc, product, li.Quantity, fromLoc.Code, toLoc.Code, performedBy, now)
		if err := historyRepo.Create(entry); err != nil {
			return err
		}
	}
	return nil
}

// applyAdjustment sobreescribe el stock con la cantidad contada (autoritativa)
// y registra |counted - recorded| en el historial. El sentido del ajuste decide
// origen y destino: una merma sale de la bodega, un sobrante entra a ella.
func (uc *CommitUseCase) applyAdjustment(
	doc *entity.MovementDocument,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
	performedBy string,
) error {
	wh, err := uc.resolveWarehouse(doc.WarehouseID)
	if err != nil {
		return err
	}
	now := time.Now()
	for _, li := range doc.LineItems {
		product, err := resolveProduct(productRepo, li.ProductID)
		if err != nil {
			return err
		}
		if li.CountedQuantity.IsNegative() || li.RecordedQuantity.IsNegative() {
			return domain.ErrInvalidState
		}
		stock, err := stockRepo.FindForUpdate(li.ProductID, wh.ID, "")
		if err != nil {
			return err
		}
		uc.prepareNewRow(stock, now)
		stock.Quantity = li.CountedQuantity
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(stock); err != nil {
			return err
		}

		diff := li.Difference()
		from, to := "Adjustment", "Adjustment"
		if diff.IsNegative() {
			from = wh.Code
		}
		if diff.IsPositive() {
			to = wh.Code
		}
		entry := newHistoryEntry(doc, product, diff.Abs(), from, to, performedBy, now)
		if err := historyRepo.Create(entry); err != nil {
			return err
		}
	}
	return nil
}

// applyDelta lee la fila con bloqueo, valida current + delta y aplica el delta
// con AddDelta. Un resultado negativo se rechaza con ErrInsufficientStock sin
// tocar la fila. El delta se persiste como suma sobre el valor almacenado, no
// como valor absoluto: si la tupla no tenía fila, FindForUpdate no bloqueó nada
// y otra transacción pudo insertarla entre la lectura y la escritura.
func (uc *CommitUseCase) applyDelta(
	stockRepo repository.StockRepository,
	productID, warehouseID, locationID string,
	delta decimal.Decimal,
	now time.Time,
) (decimal.Decimal, error) {
	stock, err := stockRepo.FindForUpdate(productID, warehouseID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	if stock.Quantity.Add(delta).IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	uc.prepareNewRow(stock, now)
	return stockRepo.AddDelta(stock, delta)
}

// clampToZero resta qty dejando el piso en cero (política clamp). Devuelve la
// cantidad efectivamente restada, que es la que debe quedar en el historial.
func (uc *CommitUseCase) clampToZero(
	stockRepo repository.StockRepository,
	productID, warehouseID, locationID string,
	qty decimal.Decimal,
	now time.Time,
) (decimal.Decimal, error) {
	stock, err := stockRepo.FindForUpdate(productID, warehouseID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	applied := qty
	if stock.Quantity.LessThan(qty) {
		applied = stock.Quantity
	}
	uc.prepareNewRow(stock, now)
	if _, err := stockRepo.AddDelta(stock, applied.Neg()); err != nil {
		return decimal.Zero, err
	}
	return applied, nil
}

// prepareNewRow completa id y código ST### cuando la fila del libro no existía.
// La secuencia es atómica fuera de la tx; un rollback puede dejar huecos en la
// numeración, lo cual es aceptable para códigos.
func (uc *CommitUseCase) prepareNewRow(stock *entity.StockEntry, now time.Time) {
	if stock.ID != "" {
		return
	}
	stock.ID = uuid.New().String()
	if n, err := uc.seqRepo.Next(repository.SequenceStock); err == nil {
		stock.Code = entity.FormatCode(entity.CodePrefixStock, n)
	}
	stock.CreatedAt = now
}

func (uc *CommitUseCase) resolveWarehouse(id string) (*entity.Warehouse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	wh, err := uc.warehouseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrInvalidInput
	}
	return wh, nil
}

func (uc *CommitUseCase) resolveLocation(id string) (*entity.Location, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrInvalidInput
	}
	return loc, nil
}

// resolveProduct re-lee el producto del catálogo en el momento del commit: el
// snapshot de la línea puede estar desactualizado o el producto ya no existir.
func resolveProduct(productRepo repository.ProductRepository, id string) (*entity.Product, error) {
	product, err := productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrUnknownProduct
	}
	return product, nil
}

func newHistoryEntry(
	doc *entity.MovementDocument,
	product *entity.Product,
	qty decimal.Decimal,
	from, to, performedBy string,
	now time.Time,
) *entity.MovementHistoryEntry {
	return &entity.MovementHistoryEntry{
		ID:              uuid.New().String(),
		OperationType:   doc.Type,
		ReferenceNumber: doc.DocumentNumber,
		ProductID:       product.ID,
		ProductName:     product.Name,
		SKU:             product.SKU,
		Quantity:        qty,
		Unit:            product.UnitOfMeasure,
		FromLocation:    from,
		ToLocation:      to,
		OperationDate:   doc.Date,
		PerformedBy:     performedBy,
		CreatedAt:       now,
	}
}
