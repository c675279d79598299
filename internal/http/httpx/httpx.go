// Package httpx writes JSON and RFC7807 problem responses and maps domain errors onto them.
package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/company"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

// Problem is an RFC7807 problem document with a few extension members.
type Problem struct {
	Type       string                  `json:"type,omitempty"`
	Title      string                  `json:"title"`
	Status     int                     `json:"status"`
	Detail     string                  `json:"detail,omitempty"`
	Code       string                  `json:"code,omitempty"`
	Fields     []validation.FieldError `json:"fields,omitempty"`
	BalanceDue *money.Money            `json:"balance_due,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteProblem(w http.ResponseWriter, p Problem) {
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)

	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Error("failed to encode problem", "error", err)
	}
}

func BadRequest(w http.ResponseWriter, detail string) {
	WriteProblem(w, Problem{Status: http.StatusBadRequest, Code: "bad_request", Detail: detail})
}

// Decode reads a JSON request body into dst, rejecting unknown fields.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	return dec.Decode(dst)
}

// Error writes the problem matching err. Unknown errors become a 500 and are logged.
func Error(w http.ResponseWriter, err error) {
	WriteProblem(w, problemFor(err))
}

func problemFor(err error) Problem {
	var (
		payErr   *invoice.InvalidPaymentAmountError
		fieldErr *invoice.ValidationError
		valErr   *validation.Error
	)

	switch {
	case errors.As(err, &payErr):
		return Problem{
			Status:     http.StatusUnprocessableEntity,
			Code:       "invalid_payment_amount",
			Detail:     payErr.Error(),
			BalanceDue: &payErr.BalanceDue,
		}
	case errors.Is(err, invoice.ErrClientRequired):
		return Problem{
			Status: http.StatusBadRequest,
			Code:   "client_required",
			Detail: err.Error(),
			Fields: []validation.FieldError{{Field: "client_id", Reason: "is required"}},
		}
	case errors.As(err, &fieldErr):
		return Problem{
			Status: http.StatusBadRequest,
			Code:   "validation",
			Detail: err.Error(),
			Fields: []validation.FieldError{{Field: fieldErr.Field, Reason: fieldErr.Reason}},
		}
	case errors.As(err, &valErr):
		return Problem{Status: http.StatusBadRequest, Code: "validation", Detail: err.Error(), Fields: valErr.Fields}
	case errors.Is(err, validation.ErrInvalid):
		return Problem{Status: http.StatusBadRequest, Code: "validation", Detail: err.Error()}
	case errors.Is(err, invoice.ErrNotFound), errors.Is(err, client.ErrNotFound), errors.Is(err, item.ErrNotFound):
		return Problem{Status: http.StatusNotFound, Code: "not_found", Detail: err.Error()}
	case errors.Is(err, company.ErrProfileMissing):
		return Problem{Status: http.StatusConflict, Code: "profile_missing", Detail: err.Error()}
	case errors.Is(err, company.ErrProfileExists):
		return Problem{Status: http.StatusConflict, Code: "profile_exists", Detail: err.Error()}
	case errors.Is(err, invoice.ErrConflict), errors.Is(err, company.ErrConflict):
		return Problem{Status: http.StatusConflict, Code: "conflict", Detail: err.Error()}
	case errors.Is(err, invoice.ErrInvalidTransition):
		return Problem{Status: http.StatusConflict, Code: "invalid_transition", Detail: err.Error()}
	default:
		slog.Error("request failed", "error", err)
		return Problem{Status: http.StatusInternalServerError, Code: "internal"}
	}
}
