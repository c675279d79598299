package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/encoding"
	"github.com/MrJamesThe3rd/invoicer/internal/importer/catalog"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

func TestParser_ParseItems(t *testing.T) {
	type testCase struct {
		name    string
		content string
		want    []item.CreateParams
		wantErr string
	}

	tests := []testCase{
		{
			name: "HeaderWithEuropeanPrices",
			content: `Catálogo exportado 2024
name;description;unit_price
Consulting hour;Senior consultant;85,00
Licence;Annual;1.234,56
`,
			want: []item.CreateParams{
				{Name: "Consulting hour", Description: "Senior consultant", UnitPrice: 8500},
				{Name: "Licence", Description: "Annual", UnitPrice: 123456},
			},
		},
		{
			name: "PortugueseHeaderReordered",
			content: `Preço;Nome
12.50;Widget
`,
			want: []item.CreateParams{{Name: "Widget", UnitPrice: 1250}},
		},
		{
			name:    "NoHeaderPositional",
			content: "Widget;Steel;3.00\n\nGadget;;0\n",
			want: []item.CreateParams{
				{Name: "Widget", Description: "Steel", UnitPrice: 300},
				{Name: "Gadget", UnitPrice: 0},
			},
		},
		{
			name:    "CommaSeparated",
			content: "name,unit_price\nWidget,9.99\n",
			want:    []item.CreateParams{{Name: "Widget", UnitPrice: 999}},
		},
		{
			name:    "BadPrice",
			content: "name;unit_price\nWidget;abc\n",
			wantErr: "row 2",
		},
		{
			name:    "MissingName",
			content: "name;unit_price\n;10\n",
			wantErr: "row 2: missing name",
		},
		{
			name:    "Empty",
			content: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := catalog.NewParser().ParseItems(strings.NewReader(tt.content))

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParser_ParseItems_Windows1252(t *testing.T) {
	// "name;unit_price\nCafé;1,50\n" with é = 0xE9
	content := []byte("name;unit_price\nCaf\xe9;1,50\n")

	got, charset, err := catalog.NewParser().ParseItems(bytes.NewReader(content))
	require.NoError(t, err)

	assert.Contains(t, []encoding.Charset{encoding.Windows1252, encoding.ISO88599}, charset)
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0].Name)
	assert.Equal(t, money.Money(150), got[0].UnitPrice)
}

func TestParser_ParseClients(t *testing.T) {
	content := `name;email;street;city;state;postal_code;country
Globex;ap@globex.test;Rua A 1;Porto;;4000-001;PT
Initech;;;;;;
`

	got, _, err := catalog.NewParser().ParseClients(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Globex", got[0].Name)
	assert.Equal(t, "ap@globex.test", got[0].Email)
	assert.Equal(t, address.Address{Street: "Rua A 1", City: "Porto", PostalCode: "4000-001", Country: "PT"}, got[0].Address)
	assert.True(t, got[1].Address.IsZero())
}
