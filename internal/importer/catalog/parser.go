// Package catalog parses item and client lists exported from spreadsheets.
package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/client"
	enc "github.com/MrJamesThe3rd/invoicer/internal/encoding"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// ParseItems reads name;description;unit_price rows. Prices may use a dot or a European decimal comma.
func (p *Parser) ParseItems(r io.Reader) ([]item.CreateParams, enc.Charset, error) {
	rows, charset, err := readRows(r)
	if err != nil {
		return nil, "", err
	}

	cols, data := locate(itemLayout, rows)

	var params []item.CreateParams

	for i, row := range data.rows {
		if blank(row) {
			continue
		}

		rowNum := data.offset + i + 1
		name := cols.value(row, fieldName)

		if name == "" {
			return nil, charset, fmt.Errorf("row %d: missing name", rowNum)
		}

		price, err := money.Parse(cols.value(row, fieldUnitPrice))
		if err != nil {
			return nil, charset, fmt.Errorf("row %d: %w", rowNum, err)
		}

		params = append(params, item.CreateParams{
			Name:        name,
			Description: cols.value(row, fieldDescription),
			UnitPrice:   price,
		})
	}

	return params, charset, nil
}

// ParseClients reads name;email;street;city;state;postal_code;country rows.
func (p *Parser) ParseClients(r io.Reader) ([]client.CreateParams, enc.Charset, error) {
	rows, charset, err := readRows(r)
	if err != nil {
		return nil, "", err
	}

	cols, data := locate(clientLayout, rows)

	var params []client.CreateParams

	for i, row := range data.rows {
		if blank(row) {
			continue
		}

		name := cols.value(row, fieldName)
		if name == "" {
			return nil, charset, fmt.Errorf("row %d: missing name", data.offset+i+1)
		}

		params = append(params, client.CreateParams{
			Name:  name,
			Email: cols.value(row, fieldEmail),
			Address: address.Address{
				Street:     cols.value(row, fieldStreet),
				City:       cols.value(row, fieldCity),
				State:      cols.value(row, fieldState),
				PostalCode: cols.value(row, fieldPostalCode),
				Country:    cols.value(row, fieldCountry),
			},
		})
	}

	return params, charset, nil
}

func readRows(r io.Reader) ([][]string, enc.Charset, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, "", fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	reader := csv.NewReader(br)
	reader.Comma = sniffComma(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, "", fmt.Errorf("read csv: %w", err)
	}

	return rows, charset, nil
}

// sniffComma picks ';' unless the first line only uses ','.
func sniffComma(br *bufio.Reader) rune {
	line, _ := br.Peek(br.Size())
	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	if !strings.ContainsRune(string(line), ';') && strings.ContainsRune(string(line), ',') {
		return ','
	}

	return ';'
}

// colIndex maps fields to their index in a row.
type colIndex map[field]int

func (c colIndex) value(row []string, f field) string {
	idx, ok := c[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

type dataRows struct {
	rows   [][]string
	offset int // rows before the first data row
}

// locate finds the header row of l. Without one, every row is data in positional order.
func locate(l layout, rows [][]string) (colIndex, dataRows) {
	for rowIdx, row := range rows {
		cols := matchHeader(l, row)
		if cols != nil {
			return cols, dataRows{rows: rows[rowIdx+1:], offset: rowIdx + 1}
		}
	}

	cols := make(colIndex, len(l.positional))
	for i, f := range l.positional {
		cols[f] = i
	}

	return cols, dataRows{rows: rows}
}

func matchHeader(l layout, row []string) colIndex {
	cols := make(colIndex)

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))

		for f, aliases := range l.aliases {
			for _, a := range aliases {
				if name == a {
					cols[f] = i
				}
			}
		}
	}

	for _, f := range l.required {
		if _, ok := cols[f]; !ok {
			return nil
		}
	}

	return cols
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
