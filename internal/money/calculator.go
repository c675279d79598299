package money

import "github.com/shopspring/decimal"

// Line is the part of a line item the calculator needs.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice Money
}

// TaxRate is a named tax expressed as a percentage of the subtotal.
type TaxRate struct {
	Name string
	Rate decimal.Decimal
}

// TaxAmount is a TaxRate applied to a concrete subtotal.
type TaxAmount struct {
	Name   string
	Rate   decimal.Decimal
	Amount Money
}

// Totals is the result of Calculate.
type Totals struct {
	Subtotal Money
	Taxes    []TaxAmount
	Total    Money
}

// TaxTotal sums all tax amounts.
func (t Totals) TaxTotal() Money {
	var sum Money
	for _, tx := range t.Taxes {
		sum += tx.Amount
	}

	return sum
}

// LineTotal returns quantity × unitPrice rounded to cents.
func LineTotal(quantity decimal.Decimal, unitPrice Money) Money {
	return Money(quantity.Mul(decimal.NewFromInt(int64(unitPrice))).Round(0).IntPart())
}

// Subtotal sums the line totals. An empty slice yields zero.
func Subtotal(lines []Line) Money {
	var sum Money
	for _, l := range lines {
		sum += LineTotal(l.Quantity, l.UnitPrice)
	}

	return sum
}

// Calculate computes subtotal, each tax and the grand total.
// Taxes are applied to the subtotal, never compounded.
func Calculate(lines []Line, taxes []TaxRate) Totals {
	subtotal := Subtotal(lines)
	base := decimal.NewFromInt(int64(subtotal))

	t := Totals{Subtotal: subtotal, Total: subtotal}

	for _, rate := range taxes {
		amount := Money(base.Mul(rate.Rate).Div(hundred).Round(0).IntPart())
		t.Taxes = append(t.Taxes, TaxAmount{Name: rate.Name, Rate: rate.Rate, Amount: amount})
		t.Total += amount
	}

	return t
}
