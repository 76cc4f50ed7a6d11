package items

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Lelo88/pos-inventory-golang/internal/checkout"
	"github.com/Lelo88/pos-inventory-golang/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceAPI define lo que el handler necesita.
// Permite testear handlers con stubs sin tocar DB.
type ServiceAPI interface {
	Create(ctx context.Context, input CreateItemInput) (Item, error)
	Get(ctx context.Context, id string) (Item, error)
	Lookup(ctx context.Context, code string) (Item, error)
	List(ctx context.Context, filter ListFilter, sort ListSort) ([]Item, error)
	Purchase(ctx context.Context, id string, quantity int) (Item, decimal.Decimal, error)
	Refund(ctx context.Context, id string, quantity int) (Item, error)
	Edit(ctx context.Context, id string, input UpdateItemInput) (Item, error)
	Delete(ctx context.Context, id string) error
	NewBarcode(ctx context.Context) (string, error)
}

// DraftsAPI firma y verifica borradores de compra.
type DraftsAPI interface {
	Issue(itemID string, quantity int, total decimal.Decimal) (checkout.Draft, string, error)
	Verify(token string) (checkout.Draft, error)
}

// Handler HTTP para items y el flujo de compra.
// Solo traduce HTTP <-> dominio (service).
type Handler struct {
	service ServiceAPI
	drafts  DraftsAPI
}

// NewHandler crea un handler de items.
func NewHandler(service ServiceAPI, drafts DraftsAPI) *Handler {
	return &Handler{service: service, drafts: drafts}
}

// itemView agrega los derivados que el dashboard muestra por fila.
type itemView struct {
	Item
	SoldQuantity       int `json:"sold_quantity"`
	RefundableQuantity int `json:"refundable_quantity"`
}

func viewOf(item Item) itemView {
	return itemView{
		Item:               item,
		SoldQuantity:       item.SoldQuantity(),
		RefundableQuantity: item.RefundableQuantity(),
	}
}

// failDomain traduce errores de dominio a status + code del sobre estándar.
func failDomain(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, ErrorInvalidInput):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_input", "invalid input data")
	case errors.Is(err, ErrorInvalidQuantity):
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_quantity", "quantity must be a positive number")
	case errors.Is(err, ErrorInsufficientStock):
		httpx.Fail(writer, request, http.StatusConflict, "insufficient_stock", "requested quantity exceeds available stock")
	case errors.Is(err, ErrorExcessRefund):
		httpx.Fail(writer, request, http.StatusConflict, "excess_refund", "refund quantity exceeds sold items")
	case errors.Is(err, ErrorDuplicateBarcode):
		httpx.Fail(writer, request, http.StatusConflict, "conflict", "an item with this barcode already exists")
	case errors.Is(err, ErrorDuplicateProductID):
		httpx.Fail(writer, request, http.StatusConflict, "conflict", "could not assign a unique product id")
	case errors.Is(err, ErrorNotFound):
		httpx.Fail(writer, request, http.StatusNotFound, "not_found", "item not found")
	default:
		// No filtramos detalles internos.
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

// List maneja GET /items con filtro de venta y orden.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()
	filter := ListFilter(strings.TrimSpace(query.Get("filter")))
	sort := ListSort(strings.TrimSpace(query.Get("sort")))

	list, err := handler.service.List(request.Context(), filter, sort)
	if err != nil {
		failDomain(writer, request, err)
		return
	}

	views := make([]itemView, 0, len(list))
	for _, item := range list {
		views = append(views, viewOf(item))
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{"items": views})
}

// Scan maneja GET /items/scan?code= para el flujo de caja:
// resuelve product id o barcode al item a comprar.
func (handler *Handler) Scan(writer http.ResponseWriter, request *http.Request) {
	code := strings.TrimSpace(request.URL.Query().Get("code"))

	item, err := handler.service.Lookup(request.Context(), code)
	if err != nil {
		if errors.Is(err, ErrorNotFound) {
			httpx.Fail(writer, request, http.StatusNotFound, "not_found", "item not found, please scan next item")
			return
		}
		failDomain(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, viewOf(item))
}

// BarcodeProbe maneja GET /items/barcode/{barcode}: chequeo liviano que usa
// la UI de alta para avisar duplicados antes de enviar el formulario.
func (handler *Handler) BarcodeProbe(writer http.ResponseWriter, request *http.Request) {
	barcode := chi.URLParam(request, "barcode")

	item, err := handler.service.Lookup(request.Context(), barcode)
	if err != nil {
		if errors.Is(err, ErrorNotFound) || errors.Is(err, ErrorInvalidInput) {
			httpx.OK(writer, request, http.StatusOK, map[string]any{"exists": false})
			return
		}
		failDomain(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"exists": true,
		"item":   viewOf(item),
	})
}

type purchaseRequest struct {
	Quantity int `json:"quantity"`
}

// StartPurchase maneja POST /items/{id}/purchase: valida cantidad contra el
// stock visible y emite un borrador firmado con el total. El descuento real
// ocurre recién en Pay.
func (handler *Handler) StartPurchase(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return
	}

	var body purchaseRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		failDomain(writer, request, err)
		return
	}

	if body.Quantity <= 0 {
		failDomain(writer, request, ErrorInvalidQuantity)
		return
	}
	if body.Quantity > item.Quantity {
		failDomain(writer, request, ErrorInsufficientStock)
		return
	}

	total := item.Price.Mul(decimal.NewFromInt(int64(body.Quantity)))
	draft, token, err := handler.drafts.Issue(item.ID, body.Quantity, total)
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	httpx.OK(writer, request, http.StatusCreated, map[string]any{
		"draft":       draft,
		"draft_token": token,
		"item":        viewOf(item),
	})
}

type payRequest struct {
	DraftToken string `json:"draft_token"`
}

// Pay maneja POST /checkout/pay: verifica el borrador y aplica la compra.
// Acá sí se descuenta stock, de forma atómica en DB; si otro caller ganó la
// carrera desde que se emitió el borrador, esto falla con insufficient_stock.
func (handler *Handler) Pay(writer http.ResponseWriter, request *http.Request) {
	var body payRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	draft, err := handler.drafts.Verify(body.DraftToken)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrorExpiredDraft):
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_draft", "purchase draft expired, please start over")
		default:
			httpx.Fail(writer, request, http.StatusBadRequest, "invalid_draft", "no purchase to process")
		}
		return
	}

	item, total, err := handler.service.Purchase(request.Context(), draft.ItemID, draft.Quantity)
	if err != nil {
		failDomain(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{
		"item":        viewOf(item),
		"quantity":    draft.Quantity,
		"total_price": total,
	})
}

// Create maneja POST /admin/items.
func (handler *Handler) Create(writer http.ResponseWriter, request *http.Request) {
	var input CreateItemInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	item, err := handler.service.Create(request.Context(), input)
	if err != nil {
		failDomain(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusCreated, viewOf(item))
}

// GetByID maneja GET /admin/items/{id}.
// Valida que el id sea UUID porque en DB es uuid; esto evita errores innecesarios.
func (handler *Handler) GetByID(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return
	}

	item, err := handler.service.Get(request.Context(), id)
	if err != nil {
		failDomain(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, viewOf(item))
}

// Put maneja PUT /admin/items/{id}: edición total del item.
func (handler *Handler) Put(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return
	}

	var input UpdateItemInput
	if err := json.NewDecoder(request.Body).Decode(&input); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	item, err := handler.service.Edit(request.Context(), id, input)
	if err != nil {
		failDomain(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, viewOf(item))
}

// Delete maneja DELETE /admin/items/{id}.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		failDomain(writer, request, err)
		return
	}

	// 204 No Content: respuesta vacía.
	writer.WriteHeader(http.StatusNoContent)
}

type refundRequest struct {
	Quantity int `json:"quantity"`
}

// Refund maneja POST /admin/items/{id}/refund.
func (handler *Handler) Refund(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := uuid.Parse(id); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return
	}

	var body refundRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	item, err := handler.service.Refund(request.Context(), id, body.Quantity)
	if err != nil {
		failDomain(writer, request, err)
		return
	}

	httpx.OK(writer, request, http.StatusOK, viewOf(item))
}

// NewBarcode maneja GET /admin/barcodes/new: entrega un barcode generado
// (13 dígitos, checksum válido, sin colisión al momento de la consulta).
func (handler *Handler) NewBarcode(writer http.ResponseWriter, request *http.Request) {
	barcode, err := handler.service.NewBarcode(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	httpx.OK(writer, request, http.StatusOK, map[string]any{"barcode": barcode})
}
