package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

type partyResponse struct {
	ID        *uuid.UUID      `json:"id,omitempty"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Address   address.Address `json:"address"`
	TaxType   string          `json:"tax_type,omitempty"`
	TaxNumber string          `json:"tax_number,omitempty"`
}

type lineResponse struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   money.Money     `json:"unit_price"`
	Total       money.Money     `json:"total"`
}

type taxResponse struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount money.Money     `json:"amount"`
}

type paymentResponse struct {
	ID        uuid.UUID      `json:"id"`
	Amount    money.Money    `json:"amount"`
	Date      string         `json:"date"`
	Method    invoice.Method `json:"method"`
	Note      string         `json:"note,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

type invoiceResponse struct {
	ID         uuid.UUID         `json:"id"`
	Number     string            `json:"number"`
	Status     invoice.Status    `json:"status"`
	Client     partyResponse     `json:"client"`
	Company    partyResponse     `json:"company"`
	IssueDate  string            `json:"issue_date"`
	DueDate    string            `json:"due_date"`
	Lines      []lineResponse    `json:"lines"`
	Taxes      []taxResponse     `json:"taxes"`
	Subtotal   money.Money       `json:"subtotal"`
	Total      money.Money       `json:"total"`
	AmountPaid money.Money       `json:"amount_paid"`
	BalanceDue money.Money       `json:"balance_due"`
	Payments   []paymentResponse `json:"payments"`
	Notes      string            `json:"notes,omitempty"`
	Currency   string            `json:"currency"`
	Version    int64             `json:"version"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	resp := invoiceResponse{
		ID:     inv.ID,
		Number: inv.Number,
		Status: inv.Status,
		Client: partyResponse{
			ID:      &inv.Client.ClientID,
			Name:    inv.Client.Name,
			Email:   inv.Client.Email,
			Address: inv.Client.Address,
		},
		Company: partyResponse{
			Name:      inv.Company.Name,
			Email:     inv.Company.Email,
			Phone:     inv.Company.Phone,
			Address:   inv.Company.Address,
			TaxType:   inv.Company.TaxType,
			TaxNumber: inv.Company.TaxNumber,
		},
		IssueDate:  inv.IssueDate.Format(time.DateOnly),
		DueDate:    inv.DueDate.Format(time.DateOnly),
		Lines:      make([]lineResponse, 0, len(inv.Lines)),
		Taxes:      make([]taxResponse, 0, len(inv.Taxes)),
		Subtotal:   inv.Subtotal,
		Total:      inv.Total,
		AmountPaid: inv.AmountPaid,
		BalanceDue: inv.BalanceDue(),
		Payments:   make([]paymentResponse, 0, len(inv.Payments)),
		Notes:      inv.Notes,
		Currency:   inv.Currency,
		Version:    inv.Version,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
	}

	for _, l := range inv.Lines {
		resp.Lines = append(resp.Lines, lineResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total(),
		})
	}

	for _, t := range inv.Taxes {
		resp.Taxes = append(resp.Taxes, taxResponse(t))
	}

	for _, p := range inv.Payments {
		resp.Payments = append(resp.Payments, paymentResponse{
			ID:        p.ID,
			Amount:    p.Amount,
			Date:      p.Date.Format(time.DateOnly),
			Method:    p.Method,
			Note:      p.Note,
			CreatedAt: p.CreatedAt,
		})
	}

	return resp
}

func toResultResponse(res *invoice.Result) invoiceResponse {
	resp := toResponse(res.Invoice)
	resp.Warnings = res.Warnings

	return resp
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		resp = append(resp, toResponse(inv))
	}

	return resp
}
