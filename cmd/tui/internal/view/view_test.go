package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/importer"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

func TestCreateForm_Params(t *testing.T) {
	clientID := uuid.New()
	itemID := uuid.New()

	tests := []struct {
		name    string
		form    createForm
		check   func(t *testing.T, p invoice.CreateParams)
		wantErr string
	}{
		{
			name: "catalog item keeps its price",
			form: createForm{ClientID: clientID, ItemID: itemID, Quantity: "2"},
			check: func(t *testing.T, p invoice.CreateParams) {
				require.Len(t, p.Lines, 1)
				assert.Equal(t, clientID, *p.ClientID)
				assert.Equal(t, itemID, *p.Lines[0].ItemID)
				assert.Nil(t, p.Lines[0].UnitPrice)
				assert.True(t, decimal.NewFromInt(2).Equal(p.Lines[0].Quantity))
				assert.Empty(t, p.Taxes)
				assert.Nil(t, p.DueDate)
			},
		},
		{
			name: "custom line with tax and due date",
			form: createForm{
				ClientID: clientID, Description: " Consulting ", Quantity: "1.5",
				UnitPrice: "1.234,50", TaxRate: "23", DueDate: "2026-11-30",
			},
			check: func(t *testing.T, p invoice.CreateParams) {
				assert.Nil(t, p.Lines[0].ItemID)
				assert.Equal(t, "Consulting", p.Lines[0].Description)
				assert.Equal(t, money.Money(123450), *p.Lines[0].UnitPrice)
				require.Len(t, p.Taxes, 1)
				assert.Equal(t, "VAT", p.Taxes[0].Name)
				assert.Equal(t, time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC), *p.DueDate)
			},
		},
		{
			name:    "custom line needs a price",
			form:    createForm{ClientID: clientID, Quantity: "1"},
			wantErr: "lines[0].unit_price",
		},
		{
			name:    "bad quantity",
			form:    createForm{ClientID: clientID, ItemID: itemID, Quantity: "two"},
			wantErr: "lines[0].quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.form.params()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, invoice.ErrValidation)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestSelectedBatch(t *testing.T) {
	b := &importer.Batch{
		Kind: importer.KindItems,
		Items: []item.CreateParams{
			{Name: "Hosting"}, {Name: "Support"}, {Name: "Domain"},
		},
	}

	out := selectedBatch(b, map[int]bool{0: true, 2: true})

	require.Len(t, out.Items, 2)
	assert.Equal(t, "Hosting", out.Items[0].Name)
	assert.Equal(t, "Domain", out.Items[1].Name)
	assert.Equal(t, importer.KindItems, out.Kind)

	clients := &importer.Batch{Kind: importer.KindClients, Clients: []client.CreateParams{{Name: "Acme"}}}
	assert.Equal(t, 0, selectedBatch(clients, map[int]bool{}).Len())
}

func TestDescribeError(t *testing.T) {
	err := fmt.Errorf("recording: %w", &invoice.InvalidPaymentAmountError{Amount: 50000, BalanceDue: 12000})
	assert.Equal(t, "Payment must be between 0.01 and 120.00.", describeError(err))

	assert.Contains(t, describeError(invoice.ErrConflict), "changed elsewhere")
	assert.Equal(t, "Error: invoice not found", describeError(invoice.ErrNotFound))
}
