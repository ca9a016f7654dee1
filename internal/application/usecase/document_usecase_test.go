package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var docTestProducts = memProductRepo{
	"p1": {ID: "p1", SKU: "SKU-001", Name: "Tornillo 3/8", UnitOfMeasure: "unidad"},
	"p2": {ID: "p2", SKU: "SKU-002", Name: "Pintura blanca", UnitOfMeasure: "galón"},
}

func newDocUC() (*usecase.DocumentUseCase, *memDocRepo) {
	repo := newMemDocRepo()
	return usecase.NewDocumentUseCase(repo, docTestProducts), repo
}

func receiptReq(number string) dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		DocumentNumber: number,
		Type:           entity.DocumentTypeReceipt,
		Date:           "2025-03-10",
		WarehouseID:    "w1",
		Counterparty:   "Proveedor Andino",
		Items:          []dto.LineItemDTO{{ProductID: "p1", Quantity: decimal.NewFromInt(5)}},
	}
}

func TestDocumentCreate_NaceEnDraftConSnapshot(t *testing.T) {
	uc, _ := newDocUC()

	out, err := uc.Create(receiptReq("RCPT-001"))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDraft, out.Status, "sin status explícito nace en draft")
	assert.Equal(t, "2025-03-10", out.Date)
	assert.Equal(t, 1, out.Version)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Tornillo 3/8", out.Items[0].ProductName, "snapshot del catálogo en la línea")
	assert.Equal(t, "SKU-001", out.Items[0].SKU)
}

func TestDocumentCreate_NumeroDuplicado(t *testing.T) {
	uc, _ := newDocUC()

	_, err := uc.Create(receiptReq("RCPT-001"))
	require.NoError(t, err)

	_, err = uc.Create(receiptReq("RCPT-001"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDocumentCreate_Validaciones(t *testing.T) {
	uc, _ := newDocUC()

	// tipo inválido
	in := receiptReq("X-001")
	in.Type = "invoice"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// estado terminal no es estado de creación
	in = receiptReq("X-002")
	in.Status = entity.StatusDone
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// receipt sin bodega
	in = receiptReq("X-003")
	in.WarehouseID = ""
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// transfer con origen = destino
	_, err = uc.Create(dto.CreateDocumentRequest{
		DocumentNumber: "TRF-001",
		Type:           entity.DocumentTypeTransfer,
		FromLocationID: "l1",
		ToLocationID:   "l1",
		Items:          []dto.LineItemDTO{{ProductID: "p1", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// línea con cantidad no positiva
	in = receiptReq("X-004")
	in.Items[0].Quantity = decimal.Zero
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// producto inexistente
	in = receiptReq("X-005")
	in.Items[0].ProductID = "fantasma"
	_, err = uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)
}

func TestDocumentCreate_AdjustmentDefaultPhysicalCount(t *testing.T) {
	uc, _ := newDocUC()

	out, err := uc.Create(dto.CreateDocumentRequest{
		DocumentNumber: "ADJ-001",
		Type:           entity.DocumentTypeAdjustment,
		WarehouseID:    "w1",
		Items: []dto.LineItemDTO{
			{ProductID: "p1", RecordedQuantity: decimal.NewFromInt(10), CountedQuantity: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentTypePhysicalCount, out.AdjustmentType)
	require.Len(t, out.Items, 1)
	assert.True(t, decimal.NewFromInt(-2).Equal(out.Items[0].Difference), "difference = counted - recorded, derivada")
}

func TestDocumentUpdateDraft_SoloEnDraft(t *testing.T) {
	uc, repo := newDocUC()

	out, err := uc.Create(receiptReq("RCPT-001"))
	require.NoError(t, err)

	notes := "revisar caja 3"
	updated, err := uc.UpdateDraft(out.ID, dto.UpdateDocumentRequest{
		Items: []dto.LineItemDTO{{ProductID: "p2", Quantity: decimal.NewFromInt(2)}},
		Notes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, "revisar caja 3", updated.Notes)
	assert.Equal(t, 2, updated.Version)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "p2", updated.Items[0].ProductID)

	// fuera de draft las líneas son inmutables
	require.NoError(t, repo.SetStatus(out.ID, entity.StatusReady))
	_, err = uc.UpdateDraft(out.ID, dto.UpdateDocumentRequest{Notes: &notes})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestDocumentUpdateDraft_VersionObsoleta(t *testing.T) {
	uc, _ := newDocUC()

	out, err := uc.Create(receiptReq("RCPT-001"))
	require.NoError(t, err)

	// primera edición sube la versión a 2
	notes := "a"
	_, err = uc.UpdateDraft(out.ID, dto.UpdateDocumentRequest{Notes: &notes, Version: 1})
	require.NoError(t, err)

	// segunda edición con la versión vieja
	_, err = uc.UpdateDraft(out.ID, dto.UpdateDocumentRequest{Notes: &notes, Version: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDocumentAdvance(t *testing.T) {
	uc, _ := newDocUC()

	out, err := uc.Create(receiptReq("RCPT-001"))
	require.NoError(t, err)

	adv, err := uc.Advance(out.ID, entity.StatusWaiting)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusWaiting, adv.Status)

	adv, err = uc.Advance(out.ID, entity.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, adv.Status)

	// done no se alcanza por Advance
	_, err = uc.Advance(out.ID, entity.StatusDone)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentCancel(t *testing.T) {
	uc, repo := newDocUC()

	out, err := uc.Create(receiptReq("RCPT-001"))
	require.NoError(t, err)

	cancelled, err := uc.Cancel(out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)

	// cancelar dos veces no es válido
	_, err = uc.Cancel(out.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// un documento done es inmutable
	out2, err := uc.Create(receiptReq("RCPT-002"))
	require.NoError(t, err)
	require.NoError(t, repo.SetStatus(out2.ID, entity.StatusDone))
	_, err = uc.Cancel(out2.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCommitted)
}

func TestDocumentList_FiltraPorEstadoYTipo(t *testing.T) {
	uc, repo := newDocUC()

	a, err := uc.Create(receiptReq("RCPT-001"))
	require.NoError(t, err)
	_, err = uc.Create(receiptReq("RCPT-002"))
	require.NoError(t, err)
	require.NoError(t, repo.SetStatus(a.ID, entity.StatusDone))

	done, err := uc.List(entity.StatusDone, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, done, 1)

	_, err = uc.List("", "invoice", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido en el filtro")
}
