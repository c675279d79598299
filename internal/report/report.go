// Package report computes read-only rollups over invoices. Nothing here is cached; every call
// reflects the invoices passed in.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

// Range selects invoices by issue date relative to today.
type Range string

const (
	RangeAll     Range = "all"
	Range30Days  Range = "30d"
	Range90Days  Range = "90d"
	Range365Days Range = "365d"
)

var Ranges = []Range{RangeAll, Range30Days, Range90Days, Range365Days}

func ParseRange(s string) (Range, error) {
	if s == "" {
		return RangeAll, nil
	}

	r := Range(s)
	if !slices.Contains(Ranges, r) {
		return "", fmt.Errorf("unknown report range %q", s)
	}

	return r, nil
}

func (r Range) days() int {
	switch r {
	case Range30Days:
		return 30
	case Range90Days:
		return 90
	case Range365Days:
		return 365
	default:
		return 0
	}
}

// Since returns the first issue date included in the range, or nil for RangeAll.
func (r Range) Since(today time.Time) *time.Time {
	d := r.days()
	if d == 0 {
		return nil
	}

	return new(invoice.Date(today).AddDate(0, 0, -d))
}

func (r Range) includes(inv *invoice.Invoice, today time.Time) bool {
	since := r.Since(today)
	return since == nil || !invoice.Date(inv.IssueDate).Before(*since)
}

type Summary struct {
	TotalRevenue   money.Money
	TotalCollected money.Money
	Outstanding    money.Money
	InvoiceCount   int
	StatusCounts   map[invoice.Status]int
}

// Summarize totals the invoices issued within rng. Revenue counts paid and partially paid invoices
// at their full total; outstanding counts the open balance of sent, overdue and partially paid ones.
func Summarize(invoices []*invoice.Invoice, rng Range, today time.Time) Summary {
	s := Summary{StatusCounts: make(map[invoice.Status]int)}

	for _, inv := range invoices {
		if !rng.includes(inv, today) {
			continue
		}

		s.InvoiceCount++
		s.StatusCounts[inv.Status]++
		s.TotalCollected += inv.AmountPaid

		switch inv.Status {
		case invoice.StatusPaid:
			s.TotalRevenue += inv.Total
		case invoice.StatusPartiallyPaid:
			s.TotalRevenue += inv.Total
			s.Outstanding += inv.Total - inv.AmountPaid
		case invoice.StatusSent, invoice.StatusOverdue:
			s.Outstanding += inv.Total - inv.AmountPaid
		}
	}

	return s
}

type ClientRevenue struct {
	ClientID     uuid.UUID
	ClientName   string
	InvoiceCount int
	TotalBilled  money.Money
}

// RevenueByClient groups the invoices issued within rng by client, largest total first.
func RevenueByClient(invoices []*invoice.Invoice, rng Range, today time.Time) []ClientRevenue {
	byClient := make(map[uuid.UUID]*ClientRevenue)

	for _, inv := range invoices {
		if !rng.includes(inv, today) {
			continue
		}

		cr, ok := byClient[inv.Client.ClientID]
		if !ok {
			cr = &ClientRevenue{ClientID: inv.Client.ClientID, ClientName: inv.Client.Name}
			byClient[inv.Client.ClientID] = cr
		}

		cr.InvoiceCount++
		cr.TotalBilled += inv.Total
	}

	out := make([]ClientRevenue, 0, len(byClient))
	for _, cr := range byClient {
		out = append(out, *cr)
	}

	slices.SortFunc(out, func(a, b ClientRevenue) int {
		return cmp.Or(
			cmp.Compare(b.TotalBilled, a.TotalBilled),
			cmp.Compare(a.ClientName, b.ClientName),
			cmp.Compare(a.ClientID.String(), b.ClientID.String()),
		)
	})

	return out
}

// AgingBuckets splits open balances by days past due.
type AgingBuckets struct {
	Current  money.Money // not yet due
	Days30   money.Money // 1-30 days past due
	Days60   money.Money
	Days90   money.Money
	Over90   money.Money
	Invoices int
}

func (a AgingBuckets) Total() money.Money {
	return a.Current + a.Days30 + a.Days60 + a.Days90 + a.Over90
}

// Aging buckets the balance due of every sent, overdue or partially paid invoice.
func Aging(invoices []*invoice.Invoice, today time.Time) AgingBuckets {
	var a AgingBuckets

	asOf := invoice.Date(today)

	for _, inv := range invoices {
		switch inv.Status {
		case invoice.StatusSent, invoice.StatusOverdue, invoice.StatusPartiallyPaid:
		default:
			continue
		}

		balance := inv.BalanceDue()
		if balance == 0 {
			continue
		}

		a.Invoices++

		days := invoice.DaysBetween(inv.DueDate, asOf)

		switch {
		case days <= 0:
			a.Current += balance
		case days <= 30:
			a.Days30 += balance
		case days <= 60:
			a.Days60 += balance
		case days <= 90:
			a.Days90 += balance
		default:
			a.Over90 += balance
		}
	}

	return a
}
