package export

import (
	"time"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

// Document is an invoice with every figure already computed and formatted, ready for a renderer.
type Document struct {
	Number     string       `json:"number"`
	Status     string       `json:"status"`
	Template   string       `json:"template,omitempty"`
	Logo       string       `json:"logo,omitempty"`
	IssueDate  string       `json:"issue_date"`
	DueDate    string       `json:"due_date"`
	From       Party        `json:"from"`
	To         Party        `json:"to"`
	Lines      []DocLine    `json:"lines"`
	Taxes      []DocTax     `json:"taxes,omitempty"`
	Subtotal   string       `json:"subtotal"`
	Total      string       `json:"total"`
	AmountPaid string       `json:"amount_paid"`
	BalanceDue string       `json:"balance_due"`
	Payments   []DocPayment `json:"payments,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
}

type Party struct {
	Name      string   `json:"name"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Address   []string `json:"address,omitempty"`
	TaxType   string   `json:"tax_type,omitempty"`
	TaxNumber string   `json:"tax_number,omitempty"`
}

type DocLine struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Total       string `json:"total"`
}

type DocTax struct {
	Name   string `json:"name"`
	Rate   string `json:"rate"`
	Amount string `json:"amount"`
}

type DocPayment struct {
	Date   string `json:"date"`
	Method string `json:"method"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// Build lays out inv for rendering. Totals come from the invoice as saved, never recomputed.
func Build(inv *invoice.Invoice) Document {
	f := func(m money.Money) string { return money.Format(m, inv.Currency) }

	doc := Document{
		Number:     inv.Number,
		Status:     string(inv.Status),
		Template:   inv.Company.Template,
		Logo:       inv.Company.Logo,
		IssueDate:  inv.IssueDate.Format(time.DateOnly),
		DueDate:    inv.DueDate.Format(time.DateOnly),
		Subtotal:   f(inv.Subtotal),
		Total:      f(inv.Total),
		AmountPaid: f(inv.AmountPaid),
		BalanceDue: f(inv.BalanceDue()),
		Notes:      inv.Notes,
		Warnings:   invoice.Warnings(inv),
		From: Party{
			Name:      inv.Company.Name,
			Email:     inv.Company.Email,
			Phone:     inv.Company.Phone,
			Address:   inv.Company.Address.Lines(),
			TaxType:   inv.Company.TaxType,
			TaxNumber: inv.Company.TaxNumber,
		},
		To: Party{
			Name:    inv.Client.Name,
			Email:   inv.Client.Email,
			Address: inv.Client.Address.Lines(),
		},
	}

	doc.Lines = make([]DocLine, len(inv.Lines))
	for i, l := range inv.Lines {
		doc.Lines[i] = DocLine{
			Description: l.Description,
			Quantity:    l.Quantity.String(),
			UnitPrice:   f(l.UnitPrice),
			Total:       f(l.Total()),
		}
	}

	for _, t := range inv.Taxes {
		doc.Taxes = append(doc.Taxes, DocTax{Name: t.Name, Rate: t.Rate.String() + "%", Amount: f(t.Amount)})
	}

	for _, p := range inv.Payments {
		doc.Payments = append(doc.Payments, DocPayment{
			Date:   p.Date.Format(time.DateOnly),
			Method: methodLabels[p.Method],
			Amount: f(p.Amount),
			Note:   p.Note,
		})
	}

	return doc
}

var methodLabels = map[invoice.Method]string{
	invoice.MethodBankTransfer: "Bank transfer",
	invoice.MethodCreditCard:   "Credit card",
	invoice.MethodCash:         "Cash",
	invoice.MethodOther:        "Other",
}
