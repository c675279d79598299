package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/export"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

type fakeService struct {
	inv *invoice.Invoice
	err error

	gotCreate  invoice.CreateParams
	gotEdit    invoice.UpdateParams
	gotPayment invoice.PaymentParams
	gotFilter  invoice.ListFilter
	gotIDs     []uuid.UUID
}

func (f *fakeService) Create(_ context.Context, p invoice.CreateParams) (*invoice.Result, error) {
	f.gotCreate = p
	if f.err != nil {
		return nil, f.err
	}

	return &invoice.Result{Invoice: f.inv, Warnings: []string{"due date is before issue date"}}, nil
}

func (f *fakeService) Get(context.Context, uuid.UUID) (*invoice.Invoice, error) {
	return f.inv, f.err
}

func (f *fakeService) List(_ context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	f.gotFilter = filter
	if f.err != nil {
		return nil, f.err
	}

	return []*invoice.Invoice{f.inv}, nil
}

func (f *fakeService) Edit(_ context.Context, _ uuid.UUID, p invoice.UpdateParams) (*invoice.Result, error) {
	f.gotEdit = p
	if f.err != nil {
		return nil, f.err
	}

	return &invoice.Result{Invoice: f.inv}, nil
}

func (f *fakeService) RecordPayment(_ context.Context, _ uuid.UUID, p invoice.PaymentParams) (*invoice.Invoice, error) {
	f.gotPayment = p
	return f.inv, f.err
}

func (f *fakeService) MarkSent(context.Context, uuid.UUID) (*invoice.Invoice, error) {
	return f.inv, f.err
}

func (f *fakeService) MarkPaid(_ context.Context, ids ...uuid.UUID) ([]*invoice.Invoice, error) {
	f.gotIDs = ids
	if f.err != nil {
		return nil, f.err
	}

	return []*invoice.Invoice{f.inv}, nil
}

func (f *fakeService) Delete(_ context.Context, ids ...uuid.UUID) (int64, error) {
	f.gotIDs = ids
	if f.err != nil {
		return 0, f.err
	}

	return int64(len(ids)), nil
}

type fakeExporter struct {
	reminders []export.Reminder
}

func (f *fakeExporter) Document(_ context.Context, _ uuid.UUID) (export.Document, error) {
	return export.Document{Number: "INV-1", BalanceDue: "150.00 EUR"}, nil
}

func (f *fakeExporter) Reminders(context.Context, int) ([]export.Reminder, error) {
	return f.reminders, nil
}

func sampleInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		ID:         uuid.New(),
		Number:     "INV-1",
		Client:     invoice.ClientSnapshot{ClientID: uuid.New(), Name: "Acme"},
		Company:    invoice.CompanySnapshot{Name: "Studio"},
		Status:     invoice.StatusPartiallyPaid,
		IssueDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Lines:      []invoice.LineItem{{Description: "Work", Quantity: decimal.NewFromInt(2), UnitPrice: 12500}},
		Subtotal:   25000,
		Total:      25000,
		AmountPaid: 10000,
		Currency:   "EUR",
		Version:    3,
	}
}

func serve(h *Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	router := chi.NewRouter()
	router.Route("/invoices", h.Routes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))

	return rec
}

func TestHandler_Create(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name       string
		body       any
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name: "created with warnings",
			body: map[string]any{
				"client_id":  clientID,
				"lines":      []map[string]any{{"description": "Work", "quantity": "2", "unit_price": 12500}},
				"issue_date": "2024-06-01",
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "bad date",
			body:       map[string]any{"client_id": clientID, "issue_date": "01/06/2024"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation",
		},
		{
			name:       "client required",
			body:       map[string]any{"lines": []any{}},
			err:        invoice.ErrClientRequired,
			wantStatus: http.StatusBadRequest,
			wantCode:   "client_required",
		},
		{
			name:       "unknown field",
			body:       map[string]any{"client": "Acme"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "bad_request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{inv: sampleInvoice(), err: tt.err}
			rec := serve(NewHandler(svc, &fakeExporter{}), http.MethodPost, "/invoices/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantCode != "" {
				assert.Contains(t, rec.Body.String(), `"code":"`+tt.wantCode+`"`)
				return
			}

			var resp invoiceResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "INV-1", resp.Number)
			assert.EqualValues(t, 15000, resp.BalanceDue)
			assert.Len(t, resp.Warnings, 1)

			require.NotNil(t, svc.gotCreate.ClientID)
			assert.Equal(t, clientID, *svc.gotCreate.ClientID)
			require.NotNil(t, svc.gotCreate.IssueDate)
			assert.Equal(t, "2024-06-01", svc.gotCreate.IssueDate.Format(time.DateOnly))
			assert.Nil(t, svc.gotCreate.DueDate)
			assert.True(t, svc.gotCreate.Lines[0].Quantity.Equal(decimal.NewFromInt(2)))
		})
	}
}

func TestHandler_List(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		check      func(t *testing.T, f invoice.ListFilter)
	}{
		{
			name:       "all filters",
			query:      "?status=OVERDUE&client_id=" + clientID.String() + "&issued_from=2024-01-01",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, f invoice.ListFilter) {
				require.NotNil(t, f.Status)
				assert.Equal(t, invoice.StatusOverdue, *f.Status)
				assert.Equal(t, clientID, *f.ClientID)
				assert.Equal(t, "2024-01-01", f.IssuedFrom.Format(time.DateOnly))
			},
		},
		{
			name:       "no filters",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, f invoice.ListFilter) {
				assert.Equal(t, invoice.ListFilter{}, f)
			},
		},
		{name: "unknown status", query: "?status=LOST", wantStatus: http.StatusBadRequest},
		{name: "bad client id", query: "?client_id=nope", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{inv: sampleInvoice()}
			rec := serve(NewHandler(svc, &fakeExporter{}), http.MethodGet, "/invoices/"+tt.query, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.check != nil {
				tt.check(t, svc.gotFilter)
			}
		})
	}
}

func TestHandler_RecordPayment(t *testing.T) {
	id := uuid.New()

	t.Run("recorded", func(t *testing.T) {
		svc := &fakeService{inv: sampleInvoice()}
		rec := serve(NewHandler(svc, &fakeExporter{}), http.MethodPost, "/invoices/"+id.String()+"/payments",
			map[string]any{"amount": 10000, "date": "2024-06-10", "method": "bank_transfer", "note": "first"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, money.Money(10000), svc.gotPayment.Amount)
		assert.Equal(t, invoice.MethodBankTransfer, svc.gotPayment.Method)
		assert.Equal(t, "2024-06-10", svc.gotPayment.Date.Format(time.DateOnly))
	})

	t.Run("overpayment reports balance", func(t *testing.T) {
		svc := &fakeService{err: &invoice.InvalidPaymentAmountError{Amount: 30000, BalanceDue: 15000}}
		rec := serve(NewHandler(svc, &fakeExporter{}), http.MethodPost, "/invoices/"+id.String()+"/payments",
			map[string]any{"amount": 30000, "method": "cash"})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var p struct {
			Code       string `json:"code"`
			BalanceDue int64  `json:"balance_due"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
		assert.Equal(t, "invalid_payment_amount", p.Code)
		assert.EqualValues(t, 15000, p.BalanceDue)
	})

	t.Run("bad id", func(t *testing.T) {
		rec := serve(NewHandler(&fakeService{}, &fakeExporter{}), http.MethodPost, "/invoices/x/payments",
			map[string]any{"amount": 1})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Edit_Conflict(t *testing.T) {
	svc := &fakeService{err: invoice.ErrConflict}
	rec := serve(NewHandler(svc, &fakeExporter{}), http.MethodPut, "/invoices/"+uuid.NewString(),
		map[string]any{"client_id": uuid.New(), "version": 2})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, 2, svc.gotEdit.Version)
}

func TestHandler_MarkSent_InvalidTransition(t *testing.T) {
	svc := &fakeService{err: &invoice.TransitionError{Action: "send", From: invoice.StatusPaid}}
	rec := serve(NewHandler(svc, &fakeExporter{}), http.MethodPost, "/invoices/"+uuid.NewString()+"/send", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_transition")
}

func TestHandler_MarkPaidAndDelete(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	svc := &fakeService{inv: sampleInvoice()}
	h := NewHandler(svc, &fakeExporter{})

	rec := serve(h, http.MethodPost, "/invoices/mark-paid", map[string]any{"ids": ids})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ids, svc.gotIDs)

	rec = serve(h, http.MethodPost, "/invoices/mark-paid", map[string]any{"ids": []uuid.UUID{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodDelete, "/invoices/", map[string]any{"ids": ids})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":2}`, rec.Body.String())

	rec = serve(h, http.MethodDelete, "/invoices/"+ids[0].String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHandler_DocumentAndReminders(t *testing.T) {
	inv := sampleInvoice()
	exp := &fakeExporter{reminders: []export.Reminder{{Invoice: inv, DaysOverdue: 3}}}
	h := NewHandler(&fakeService{}, exp)

	rec := serve(h, http.MethodGet, "/invoices/"+inv.ID.String()+"/document", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance_due":"150.00 EUR"`)

	rec = serve(h, http.MethodGet, "/invoices/reminders?within=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp remindersResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Invoices, 1)
	assert.Contains(t, resp.Digest, "INV-1 | Acme | 2024-07-01 | 150.00 EUR | 3 days overdue")

	rec = serve(h, http.MethodGet, "/invoices/reminders?within=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
