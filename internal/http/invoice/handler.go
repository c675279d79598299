package invoice

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/export"
	"github.com/MrJamesThe3rd/invoicer/internal/http/httpx"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

type Service interface {
	Create(ctx context.Context, params invoice.CreateParams) (*invoice.Result, error)
	Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
	Edit(ctx context.Context, id uuid.UUID, params invoice.UpdateParams) (*invoice.Result, error)
	RecordPayment(ctx context.Context, id uuid.UUID, params invoice.PaymentParams) (*invoice.Invoice, error)
	MarkSent(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	MarkPaid(ctx context.Context, ids ...uuid.UUID) ([]*invoice.Invoice, error)
	Delete(ctx context.Context, ids ...uuid.UUID) (int64, error)
}

type Exporter interface {
	Document(ctx context.Context, id uuid.UUID) (export.Document, error)
	Reminders(ctx context.Context, within int) ([]export.Reminder, error)
}

type Handler struct {
	svc      Service
	exporter Exporter
}

func NewHandler(svc Service, exporter Exporter) *Handler {
	return &Handler{svc: svc, exporter: exporter}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/", h.deleteMany)
	r.Post("/mark-paid", h.markPaid)
	r.Get("/reminders", h.reminders)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.edit)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/payments", h.recordPayment)
	r.Post("/{id}/send", h.markSent)
	r.Get("/{id}/document", h.document)
}

type invoiceRequest struct {
	ClientID  *uuid.UUID           `json:"client_id"`
	Lines     []invoice.LineParams `json:"lines"`
	Taxes     []invoice.TaxParams  `json:"taxes"`
	IssueDate *string              `json:"issue_date,omitempty"`
	DueDate   *string              `json:"due_date,omitempty"`
	Notes     string               `json:"notes"`
	Version   int64                `json:"version,omitempty"`
}

func (req invoiceRequest) params() (invoice.CreateParams, error) {
	issue, err := parseDate("issue_date", req.IssueDate)
	if err != nil {
		return invoice.CreateParams{}, err
	}

	due, err := parseDate("due_date", req.DueDate)
	if err != nil {
		return invoice.CreateParams{}, err
	}

	return invoice.CreateParams{
		ClientID:  req.ClientID,
		Lines:     req.Lines,
		Taxes:     req.Taxes,
		IssueDate: issue,
		DueDate:   due,
		Notes:     req.Notes,
	}, nil
}

func parseDate(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil, &invoice.ValidationError{Field: field, Reason: "must be a YYYY-MM-DD date"}
	}

	return &t, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	params, err := req.params()
	if err != nil {
		httpx.Error(w, err)
		return
	}

	res, err := h.svc.Create(r.Context(), params)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResultResponse(res))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter invoice.ListFilter

	q := r.URL.Query()

	if s := q.Get("status"); s != "" {
		status := invoice.Status(s)
		if !status.Valid() {
			httpx.BadRequest(w, "unknown status "+s)
			return
		}

		filter.Status = &status
	}

	if s := q.Get("client_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			httpx.BadRequest(w, "invalid client_id")
			return
		}

		filter.ClientID = &id
	}

	from, err := parseDate("issued_from", new(q.Get("issued_from")))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	filter.IssuedFrom = from

	invoices, err := h.svc.List(r.Context(), filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(invoices))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req invoiceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	params, err := req.params()
	if err != nil {
		httpx.Error(w, err)
		return
	}

	res, err := h.svc.Edit(r.Context(), id, invoice.UpdateParams{CreateParams: params, Version: req.Version})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResultResponse(res))
}

type paymentRequest struct {
	Amount money.Money    `json:"amount"`
	Date   *string        `json:"date,omitempty"`
	Method invoice.Method `json:"method"`
	Note   string         `json:"note"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	date, err := parseDate("date", req.Date)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	inv, err := h.svc.RecordPayment(r.Context(), id, invoice.PaymentParams{
		Amount: req.Amount,
		Date:   date,
		Method: req.Method,
		Note:   req.Note,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(inv))
}

func (h *Handler) markSent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.MarkSent(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(inv))
}

type idsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *Handler) markPaid(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	if len(req.IDs) == 0 {
		httpx.BadRequest(w, "ids must not be empty")
		return
	}

	invoices, err := h.svc.MarkPaid(r.Context(), req.IDs...)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(invoices))
}

type deleteResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *Handler) deleteMany(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	n, err := h.svc.Delete(r.Context(), req.IDs...)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, deleteResponse{Deleted: n})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	n, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	if n == 0 {
		httpx.Error(w, invoice.ErrNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) document(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.exporter.Document(r.Context(), id)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, doc)
}

type remindersResponse struct {
	Invoices []invoiceResponse `json:"invoices"`
	Digest   string            `json:"digest"`
}

func (h *Handler) reminders(w http.ResponseWriter, r *http.Request) {
	within := 7

	if s := r.URL.Query().Get("within"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			httpx.BadRequest(w, "within must be a non-negative number of days")
			return
		}

		within = n
	}

	reminders, err := h.exporter.Reminders(r.Context(), within)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	resp := remindersResponse{
		Invoices: make([]invoiceResponse, 0, len(reminders)),
		Digest:   export.Digest(reminders),
	}
	for _, rem := range reminders {
		resp.Invoices = append(resp.Invoices, toResponse(rem.Invoice))
	}

	httpx.JSON(w, http.StatusOK, resp)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.BadRequest(w, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}
