package report

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/http/httpx"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

type Service interface {
	Build(ctx context.Context, rng report.Range) (*report.Report, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type summaryResponse struct {
	TotalRevenue   money.Money            `json:"total_revenue"`
	TotalCollected money.Money            `json:"total_collected"`
	Outstanding    money.Money            `json:"outstanding"`
	InvoiceCount   int                    `json:"invoice_count"`
	StatusCounts   map[invoice.Status]int `json:"status_counts"`
}

type clientRevenueResponse struct {
	ClientID     uuid.UUID   `json:"client_id"`
	ClientName   string      `json:"client_name"`
	InvoiceCount int         `json:"invoice_count"`
	TotalBilled  money.Money `json:"total_billed"`
}

type agingResponse struct {
	Current  money.Money `json:"current"`
	Days30   money.Money `json:"days_1_30"`
	Days60   money.Money `json:"days_31_60"`
	Days90   money.Money `json:"days_61_90"`
	Over90   money.Money `json:"over_90"`
	Total    money.Money `json:"total"`
	Invoices int         `json:"invoices"`
}

type reportResponse struct {
	Range    report.Range            `json:"range"`
	AsOf     string                  `json:"as_of"`
	Summary  summaryResponse         `json:"summary"`
	ByClient []clientRevenueResponse `json:"by_client"`
	Aging    agingResponse           `json:"aging"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rng, err := report.ParseRange(r.URL.Query().Get("range"))
	if err != nil {
		httpx.BadRequest(w, err.Error())
		return
	}

	rep, err := h.svc.Build(r.Context(), rng)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(rep))
}

func toResponse(rep *report.Report) reportResponse {
	resp := reportResponse{
		Range:    rep.Range,
		AsOf:     rep.AsOf.Format(time.DateOnly),
		Summary:  summaryResponse(rep.Summary),
		ByClient: make([]clientRevenueResponse, 0, len(rep.ByClient)),
		Aging: agingResponse{
			Current:  rep.Aging.Current,
			Days30:   rep.Aging.Days30,
			Days60:   rep.Aging.Days60,
			Days90:   rep.Aging.Days90,
			Over90:   rep.Aging.Over90,
			Total:    rep.Aging.Total(),
			Invoices: rep.Aging.Invoices,
		},
	}

	for _, cr := range rep.ByClient {
		resp.ByClient = append(resp.ByClient, clientRevenueResponse(cr))
	}

	return resp
}
