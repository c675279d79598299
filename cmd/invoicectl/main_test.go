package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/http/auth"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := run(t, "token", "--ttl", "1h")
	require.NoError(t, err)
	require.NoError(t, auth.Verify("cli-secret", string(bytes.TrimSpace([]byte(out)))))
}

func TestToken_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := run(t, "token")
	require.Error(t, err)
}

func TestReport_BadRange(t *testing.T) {
	_, err := run(t, "report", "--range", "7d")
	require.ErrorContains(t, err, "unknown report range")
}

func TestPrintReport(t *testing.T) {
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	invoices := []*invoice.Invoice{
		{Client: invoice.ClientSnapshot{ClientID: uuid.New(), Name: "Acme"}, Status: invoice.StatusPaid,
			IssueDate: today, DueDate: today, Total: 10000, AmountPaid: 10000},
		{Client: invoice.ClientSnapshot{ClientID: uuid.New(), Name: "Globex"}, Status: invoice.StatusOverdue,
			IssueDate: today.AddDate(0, 0, -40), DueDate: today.AddDate(0, 0, -10), Total: 25000},
	}

	rep := &report.Report{
		Range:    report.RangeAll,
		AsOf:     today,
		Summary:  report.Summarize(invoices, report.RangeAll, today),
		ByClient: report.RevenueByClient(invoices, report.RangeAll, today),
		Aging:    report.Aging(invoices, today),
	}

	var out bytes.Buffer
	printReport(&out, rep, "EUR")

	s := out.String()
	assert.Contains(t, s, "2024-06-15")
	assert.Contains(t, s, "Globex")
	assert.Contains(t, s, "250.00 EUR")
	assert.Regexp(t, `Outstanding\s+250\.00 EUR`, s)
}
