package report

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/Lelo88/pos-inventory-golang/internal/httpx"
	"github.com/Lelo88/pos-inventory-golang/internal/items"
	"github.com/go-chi/chi/v5"
)

// ListerAPI define lo que el handler necesita para juntar el inventario.
type ListerAPI interface {
	List(ctx context.Context, filter items.ListFilter, sort items.ListSort) ([]items.Item, error)
}

// Handler HTTP del export de reportes.
type Handler struct {
	lister ListerAPI
}

// NewHandler crea un handler de reportes.
func NewHandler(lister ListerAPI) *Handler {
	return &Handler{lister: lister}
}

// Export maneja GET /admin/reports?format=csv|pdf (default: pdf).
// Se renderiza a un buffer antes de escribir headers: un error a mitad de
// un PDF ya enviado no tiene arreglo.
func (handler *Handler) Export(writer http.ResponseWriter, request *http.Request) {
	format := strings.TrimSpace(request.URL.Query().Get("format"))

	list, err := handler.lister.List(request.Context(), items.FilterAll, items.SortName)
	if err != nil {
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	summary := Build(list)
	var buffer bytes.Buffer

	switch format {
	case "csv":
		if err := WriteCSV(&buffer, summary); err != nil {
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
			return
		}
		writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
		writer.Header().Set("Content-Disposition", `attachment; filename="inventory_report.csv"`)
	case "pdf", "":
		if err := WritePDF(&buffer, summary); err != nil {
			httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
			return
		}
		writer.Header().Set("Content-Type", "application/pdf")
		writer.Header().Set("Content-Disposition", `attachment; filename="inventory_report.pdf"`)
	default:
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_format", "format must be csv or pdf")
		return
	}

	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(buffer.Bytes())
}

// RegisterRoutes monta el export bajo el router admin.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Get("/reports", handler.Export)
}
