package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// DocumentUseCase CRUD del almacén de documentos de movimiento. El commit
// (draft/waiting/ready → done) no vive aquí: es responsabilidad del motor en
// application/inventory.
type DocumentUseCase struct {
	docRepo     repository.DocumentRepository
	productRepo repository.ProductRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(docRepo repository.DocumentRepository, productRepo repository.ProductRepository) *DocumentUseCase {
	return &DocumentUseCase{docRepo: docRepo, productRepo: productRepo}
}

// Create valida y persiste un documento nuevo. Sin status explícito nace en
// draft; done y cancelled no son estados de creación válidos. El número de
// documento lo aporta el caller y debe ser único.
func (uc *DocumentUseCase) Create(in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if in.DocumentNumber == "" || !entity.ValidDocumentType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusDraft
	}
	switch status {
	case entity.StatusDraft, entity.StatusWaiting, entity.StatusReady:
	default:
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateVariant(in); err != nil {
		return nil, err
	}
	items, err := uc.buildLineItems(in.Type, in.Items)
	if err != nil {
		return nil, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.docRepo.GetByNumber(in.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	doc := &entity.MovementDocument{
		ID:             uuid.New().String(),
		DocumentNumber: in.DocumentNumber,
		Type:           in.Type,
		Date:           date,
		Status:         status,
		Counterparty:   in.Counterparty,
		WarehouseID:    in.WarehouseID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		AdjustmentType: in.AdjustmentType,
		LineItems:      items,
		Notes:          in.Notes,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if doc.Type == entity.DocumentTypeAdjustment && doc.AdjustmentType == "" {
		doc.AdjustmentType = entity.AdjustmentTypePhysicalCount
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// UpdateDraft reemplaza líneas, fecha y notas de un documento que sigue en
// draft. Fuera de draft las líneas son inmutables y la edición se rechaza.
// El control optimista por versión detecta ediciones concurrentes.
func (uc *DocumentUseCase) UpdateDraft(id string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.Status != entity.StatusDraft {
		return nil, domain.ErrInvalidState
	}
	if in.Version != 0 && in.Version != doc.Version {
		return nil, domain.ErrConflict
	}
	if in.Items != nil {
		items, err := uc.buildLineItems(doc.Type, in.Items)
		if err != nil {
			return nil, err
		}
		doc.LineItems = items
	}
	if in.Date != "" {
		date, err := parseDate(in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		doc.Date = date
	}
	if in.Notes != nil {
		doc.Notes = *in.Notes
	}
	doc.UpdatedAt = time.Now()
	if err := uc.docRepo.Update(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// Advance mueve un documento abierto a waiting o ready. done se alcanza solo
// vía commit y cancelled solo vía Cancel.
func (uc *DocumentUseCase) Advance(id, status string) (*dto.DocumentResponse, error) {
	if status != entity.StatusWaiting && status != entity.StatusReady {
		return nil, domain.ErrInvalidInput
	}
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if !doc.IsOpen() {
		return nil, domain.ErrInvalidState
	}
	if err := uc.docRepo.SetStatus(id, status); err != nil {
		return nil, err
	}
	doc.Status = status
	return toDocumentResponse(doc), nil
}

// Cancel aborta un documento abierto. Un documento done es inmutable y no
// puede cancelarse.
func (uc *DocumentUseCase) Cancel(id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.Status == entity.StatusDone {
		return nil, domain.ErrAlreadyCommitted
	}
	if !doc.IsOpen() {
		return nil, domain.ErrInvalidState
	}
	if err := uc.docRepo.SetStatus(id, entity.StatusCancelled); err != nil {
		return nil, err
	}
	doc.Status = entity.StatusCancelled
	return toDocumentResponse(doc), nil
}

// GetByID obtiene un documento. Devuelve nil si no existe.
func (uc *DocumentUseCase) GetByID(id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return toDocumentResponse(doc), nil
}

// List lista documentos con filtros opcionales por status y tipo.
func (uc *DocumentUseCase) List(status, docType string, limit, offset int) ([]dto.DocumentResponse, error) {
	if docType != "" && !entity.ValidDocumentType(docType) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.docRepo.List(repository.DocumentFilter{
		Status: status,
		Type:   docType,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(list), nil
}

// ListRecent devuelve los últimos documentos creados, de cualquier tipo.
func (uc *DocumentUseCase) ListRecent(limit int) ([]dto.DocumentResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.docRepo.ListRecent(limit)
	if err != nil {
		return nil, err
	}
	return toDocumentResponses(list), nil
}

// validateVariant exige los campos propios de cada variante.
func (uc *DocumentUseCase) validateVariant(in dto.CreateDocumentRequest) error {
	switch in.Type {
	case entity.DocumentTypeReceipt, entity.DocumentTypeDelivery:
		if in.WarehouseID == "" {
			return domain.ErrInvalidInput
		}
	case entity.DocumentTypeTransfer:
		if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID {
			return domain.ErrInvalidInput
		}
	case entity.DocumentTypeAdjustment:
		if in.WarehouseID == "" {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// buildLineItems valida las líneas y completa el snapshot (nombre, SKU, unidad)
// desde el catálogo. El snapshot es solo para visualización: el commit vuelve a
// resolver cada producto en el momento de aplicar.
func (uc *DocumentUseCase) buildLineItems(docType string, in []dto.LineItemDTO) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	for _, li := range in {
		if li.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(li.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrUnknownProduct
		}
		item := entity.LineItem{
			ProductID:        product.ID,
			ProductName:      product.Name,
			SKU:              product.SKU,
			Unit:             product.UnitOfMeasure,
			Quantity:         li.Quantity,
			RecordedQuantity: li.RecordedQuantity,
			CountedQuantity:  li.CountedQuantity,
		}
		if docType == entity.DocumentTypeAdjustment {
			if item.RecordedQuantity.IsNegative() || item.CountedQuantity.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
		} else if !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, item)
	}
	return items, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().Truncate(24 * time.Hour), nil
	}
	return time.Parse(dateLayout, s)
}

func toDocumentResponses(list []*entity.MovementDocument) []dto.DocumentResponse {
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDocumentResponse(d))
	}
	return out
}

func toDocumentResponse(d *entity.MovementDocument) *dto.DocumentResponse {
	items := make([]dto.LineItemDTO, 0, len(d.LineItems))
	for _, li := range d.LineItems {
		item := dto.LineItemDTO{
			ProductID:        li.ProductID,
			ProductName:      li.ProductName,
			SKU:              li.SKU,
			Unit:             li.Unit,
			Quantity:         li.Quantity,
			RecordedQuantity: li.RecordedQuantity,
			CountedQuantity:  li.CountedQuantity,
		}
		if d.Type == entity.DocumentTypeAdjustment {
			item.Difference = li.Difference()
		}
		items = append(items, item)
	}
	return &dto.DocumentResponse{
		ID:             d.ID,
		DocumentNumber: d.DocumentNumber,
		Type:           d.Type,
		Date:           d.Date.Format(dateLayout),
		Status:         d.Status,
		Counterparty:   d.Counterparty,
		WarehouseID:    d.WarehouseID,
		FromLocationID: d.FromLocationID,
		ToLocationID:   d.ToLocationID,
		AdjustmentType: d.AdjustmentType,
		Items:          items,
		Notes:          d.Notes,
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
