package importcsv

import (
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/invoicer/internal/encoding"
	"github.com/MrJamesThe3rd/invoicer/internal/http/httpx"
	"github.com/MrJamesThe3rd/invoicer/internal/importer"
)

type Importer interface {
	Parse(kind importer.Kind, r io.Reader) (*importer.Batch, error)
	Store(ctx context.Context, b *importer.Batch) (int, error)
}

type Handler struct {
	svc Importer
}

func NewHandler(svc Importer) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Kind     importer.Kind    `json:"kind"`
	Charset  encoding.Charset `json:"charset"`
	Parsed   int              `json:"parsed"`
	Imported int              `json:"imported"`
	DryRun   bool             `json:"dry_run,omitempty"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		httpx.BadRequest(w, "failed to parse form: "+err.Error())
		return
	}

	kind := importer.Kind(r.FormValue("kind"))
	if kind != importer.KindItems && kind != importer.KindClients {
		httpx.BadRequest(w, "kind must be items or clients")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	batch, err := h.svc.Parse(kind, file)
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	resp := importResponse{Kind: kind, Charset: batch.Charset, Parsed: batch.Len()}

	if r.FormValue("dry_run") == "true" {
		resp.DryRun = true
		httpx.JSON(w, http.StatusOK, resp)

		return
	}

	n, err := h.svc.Store(r.Context(), batch)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp.Imported = n

	httpx.JSON(w, http.StatusCreated, resp)
}
