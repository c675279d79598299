package company_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/invoicer/internal/company"
)

func TestIssueNumber(t *testing.T) {
	tests := []struct {
		name       string
		profile    company.Profile
		wantNumber string
		wantNext   int64
	}{
		{
			name:       "Prefixed",
			profile:    company.Profile{InvoiceNumberPrefix: "INV-", NextInvoiceNumber: 5},
			wantNumber: "INV-5",
			wantNext:   6,
		},
		{
			name:       "NoPrefix",
			profile:    company.Profile{NextInvoiceNumber: 42},
			wantNumber: "42",
			wantNext:   43,
		},
		{
			name:       "UnsetCounterStartsAtOne",
			profile:    company.Profile{InvoiceNumberPrefix: "2024/"},
			wantNumber: "2024/1",
			wantNext:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.profile

			number, updated := company.IssueNumber(tt.profile)

			assert.Equal(t, tt.wantNumber, number)
			assert.Equal(t, tt.wantNext, updated.NextInvoiceNumber)
			assert.Equal(t, before, tt.profile)
		})
	}
}

func TestIssueNumber_Sequence(t *testing.T) {
	p := company.Profile{InvoiceNumberPrefix: "A", NextInvoiceNumber: 1}
	seen := make(map[string]bool)

	for range 100 {
		var number string

		number, p = company.IssueNumber(p)
		assert.False(t, seen[number], "duplicate number %s", number)

		seen[number] = true
	}

	assert.Equal(t, int64(101), p.NextInvoiceNumber)
}
