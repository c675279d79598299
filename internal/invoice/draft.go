package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

// Draft is the user-editable content of an invoice. Totals are always derived from it.
type Draft struct {
	Client    ClientSnapshot
	Lines     []LineItem
	Taxes     []TaxLine
	IssueDate time.Time
	DueDate   time.Time
	Notes     string
}

func (d Draft) validate() error {
	if d.Client.ClientID == uuid.Nil {
		return ErrClientRequired
	}

	if strings.TrimSpace(d.Client.Name) == "" {
		return &ValidationError{Field: "client.name", Reason: "is required"}
	}

	for i, l := range d.Lines {
		if l.Quantity.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("lines[%d].quantity", i), Reason: "must not be negative"}
		}

		if l.UnitPrice < 0 {
			return &ValidationError{Field: fmt.Sprintf("lines[%d].unit_price", i), Reason: "must not be negative"}
		}
	}

	for i, t := range d.Taxes {
		if strings.TrimSpace(t.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("taxes[%d].name", i), Reason: "is required"}
		}

		if t.Rate.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("taxes[%d].rate", i), Reason: "must not be negative"}
		}
	}

	if d.IssueDate.IsZero() {
		return &ValidationError{Field: "issue_date", Reason: "is required"}
	}

	if d.DueDate.IsZero() {
		return &ValidationError{Field: "due_date", Reason: "is required"}
	}

	return nil
}

// apply copies the draft into inv and recomputes subtotal, taxes and total.
func (d Draft) apply(inv *Invoice) {
	lines := make([]LineItem, len(d.Lines))
	calcLines := make([]money.Line, len(d.Lines))

	for i, l := range d.Lines {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}

		l.Description = strings.TrimSpace(l.Description)
		lines[i] = l
		calcLines[i] = money.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}

	rates := make([]money.TaxRate, len(d.Taxes))
	for i, t := range d.Taxes {
		rates[i] = money.TaxRate{Name: strings.TrimSpace(t.Name), Rate: t.Rate}
	}

	totals := money.Calculate(calcLines, rates)

	taxes := make([]TaxLine, len(totals.Taxes))
	for i, t := range totals.Taxes {
		taxes[i] = TaxLine{Name: t.Name, Rate: t.Rate, Amount: t.Amount}
	}

	inv.Client = d.Client
	inv.Client.Name = strings.TrimSpace(d.Client.Name)
	inv.Lines = lines
	inv.Taxes = taxes
	inv.IssueDate = Date(d.IssueDate)
	inv.DueDate = Date(d.DueDate)
	inv.Notes = strings.TrimSpace(d.Notes)
	inv.Subtotal = totals.Subtotal
	inv.Total = totals.Total
}

// Warnings lists non-blocking problems with the invoice dates.
func Warnings(inv *Invoice) []string {
	var warnings []string

	if Date(inv.DueDate).Before(Date(inv.IssueDate)) {
		warnings = append(warnings, fmt.Sprintf("due date %s is before issue date %s",
			inv.DueDate.Format(time.DateOnly), inv.IssueDate.Format(time.DateOnly)))
	}

	return warnings
}

// Edit replaces the editable content of inv and recomputes its totals. The ledger is kept as is,
// so a new total below the amount already paid is refused.
func Edit(inv *Invoice, d Draft, today time.Time) (*Invoice, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	out := inv.Clone()
	d.apply(out)

	if out.Total < out.AmountPaid {
		return nil, &ValidationError{
			Field:  "total",
			Reason: fmt.Sprintf("%s is below the amount already paid %s", out.Total, out.AmountPaid),
		}
	}

	out.Status = Evaluate(out, today)

	return out, nil
}
