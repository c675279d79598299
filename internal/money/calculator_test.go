package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

func qty(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name  string
		qty   string
		price money.Money
		want  money.Money
	}{
		{name: "whole quantity", qty: "2", price: 10000, want: 20000},
		{name: "fractional quantity", qty: "1.5", price: 999, want: 1499}, // 14.985 rounds half away
		{name: "zero quantity", qty: "0", price: 5000, want: 0},
		{name: "free item", qty: "3", price: 0, want: 0},
		{name: "hours", qty: "7.25", price: 8000, want: 58000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, money.LineTotal(qty(tt.qty), tt.price))
		})
	}
}

func TestCalculate(t *testing.T) {
	type args struct {
		lines []money.Line
		taxes []money.TaxRate
	}

	tests := []struct {
		name         string
		args         args
		wantSubtotal money.Money
		wantTaxes    []money.Money
		wantTotal    money.Money
	}{
		{
			name:         "Empty",
			args:         args{},
			wantSubtotal: 0,
			wantTotal:    0,
		},
		{
			name: "NoTaxes",
			args: args{lines: []money.Line{
				{Quantity: qty("2"), UnitPrice: 10000},
				{Quantity: qty("1"), UnitPrice: 5000},
			}},
			wantSubtotal: 25000,
			wantTotal:    25000,
		},
		{
			name: "SingleTax",
			args: args{
				lines: []money.Line{{Quantity: qty("1"), UnitPrice: 10000}},
				taxes: []money.TaxRate{{Name: "VAT", Rate: qty("23")}},
			},
			wantSubtotal: 10000,
			wantTaxes:    []money.Money{2300},
			wantTotal:    12300,
		},
		{
			name: "TaxesAreNotCompounded",
			args: args{
				lines: []money.Line{{Quantity: qty("4"), UnitPrice: 2500}},
				taxes: []money.TaxRate{
					{Name: "GST", Rate: qty("5")},
					{Name: "PST", Rate: qty("7")},
				},
			},
			wantSubtotal: 10000,
			wantTaxes:    []money.Money{500, 700},
			wantTotal:    11200,
		},
		{
			name: "TaxRounding",
			args: args{
				lines: []money.Line{{Quantity: qty("1"), UnitPrice: 1999}},
				taxes: []money.TaxRate{{Name: "VAT", Rate: qty("19")}},
			},
			wantSubtotal: 1999,
			wantTaxes:    []money.Money{380}, // 379.81
			wantTotal:    2379,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.Calculate(tt.args.lines, tt.args.taxes)

			assert.Equal(t, tt.wantSubtotal, got.Subtotal)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Len(t, got.Taxes, len(tt.wantTaxes))

			for i, want := range tt.wantTaxes {
				assert.Equal(t, want, got.Taxes[i].Amount)
			}

			assert.Equal(t, got.Total, got.Subtotal+got.TaxTotal())
		})
	}
}

func TestSubtotal_MatchesSumOfProducts(t *testing.T) {
	lines := []money.Line{
		{Quantity: qty("3"), UnitPrice: 1234},
		{Quantity: qty("10"), UnitPrice: 1},
		{Quantity: qty("1"), UnitPrice: 99999},
	}

	var want money.Money
	for _, l := range lines {
		want += money.Money(l.Quantity.IntPart()) * l.UnitPrice
	}

	assert.Equal(t, want, money.Subtotal(lines))
	assert.Equal(t, money.Money(0), money.Subtotal(nil))
}
