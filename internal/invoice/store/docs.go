package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

// JSONB column layouts. Payments are rows of their own; the aggregate below is read-only.

type clientDoc struct {
	ClientID uuid.UUID       `json:"client_id"`
	Name     string          `json:"name"`
	Email    string          `json:"email,omitempty"`
	Address  address.Address `json:"address"`
}

type companyDoc struct {
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Address   address.Address `json:"address"`
	TaxType   string          `json:"tax_type,omitempty"`
	TaxNumber string          `json:"tax_number,omitempty"`
	Logo      string          `json:"logo,omitempty"`
	Template  string          `json:"template,omitempty"`
}

type lineDoc struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   money.Money     `json:"unit_price"`
}

type taxDoc struct {
	Name   string          `json:"name"`
	Rate   decimal.Decimal `json:"rate"`
	Amount money.Money     `json:"amount"`
}

type paymentDoc struct {
	ID        uuid.UUID   `json:"id"`
	Amount    money.Money `json:"amount"`
	Date      string      `json:"date"`
	Method    string      `json:"method"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"created_at"`
}

type encoded struct {
	client, company, lines, taxes []byte
}

func encode(inv *invoice.Invoice) (encoded, error) {
	var (
		e   encoded
		err error
	)

	if e.client, err = json.Marshal(clientDoc(inv.Client)); err != nil {
		return e, fmt.Errorf("encoding client snapshot: %w", err)
	}

	if e.company, err = json.Marshal(companyDoc(inv.Company)); err != nil {
		return e, fmt.Errorf("encoding company snapshot: %w", err)
	}

	lines := make([]lineDoc, len(inv.Lines))
	for i, l := range inv.Lines {
		lines[i] = lineDoc(l)
	}

	if e.lines, err = json.Marshal(lines); err != nil {
		return e, fmt.Errorf("encoding lines: %w", err)
	}

	taxes := make([]taxDoc, len(inv.Taxes))
	for i, t := range inv.Taxes {
		taxes[i] = taxDoc(t)
	}

	if e.taxes, err = json.Marshal(taxes); err != nil {
		return e, fmt.Errorf("encoding taxes: %w", err)
	}

	return e, nil
}

func decode(inv *invoice.Invoice, e encoded, payments []byte) error {
	var (
		c   clientDoc
		co  companyDoc
		ls  []lineDoc
		ts  []taxDoc
		ps  []paymentDoc
		err error
	)

	if err = unmarshal(e.client, &c); err != nil {
		return fmt.Errorf("decoding client snapshot: %w", err)
	}

	if err = unmarshal(e.company, &co); err != nil {
		return fmt.Errorf("decoding company snapshot: %w", err)
	}

	if err = unmarshal(e.lines, &ls); err != nil {
		return fmt.Errorf("decoding lines: %w", err)
	}

	if err = unmarshal(e.taxes, &ts); err != nil {
		return fmt.Errorf("decoding taxes: %w", err)
	}

	if err = unmarshal(payments, &ps); err != nil {
		return fmt.Errorf("decoding payments: %w", err)
	}

	inv.Client = invoice.ClientSnapshot(c)
	inv.Company = invoice.CompanySnapshot(co)

	for _, l := range ls {
		inv.Lines = append(inv.Lines, invoice.LineItem(l))
	}

	for _, t := range ts {
		inv.Taxes = append(inv.Taxes, invoice.TaxLine(t))
	}

	for _, p := range ps {
		date, err := time.Parse(time.DateOnly, p.Date)
		if err != nil {
			return fmt.Errorf("decoding payment date %q: %w", p.Date, err)
		}

		inv.Payments = append(inv.Payments, invoice.PaymentRecord{
			ID:        p.ID,
			Amount:    p.Amount,
			Date:      date,
			Method:    invoice.Method(p.Method),
			Note:      p.Note,
			CreatedAt: p.CreatedAt,
		})
	}

	return nil
}

func unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}

	return json.Unmarshal(data, v)
}
