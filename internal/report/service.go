package report

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

//go:generate mockgen -source=service.go -destination=lister_mock.go -package=report
type InvoiceLister interface {
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

type Service struct {
	invoices InvoiceLister
	now      func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(invoices InvoiceLister, opts ...Option) *Service {
	s := &Service{invoices: invoices, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Report bundles every rollup for one range.
type Report struct {
	Range    Range
	AsOf     time.Time
	Summary  Summary
	ByClient []ClientRevenue
	Aging    AgingBuckets
}

func (s *Service) Build(ctx context.Context, rng Range) (*Report, error) {
	today := s.now()

	invoices, err := s.invoices.List(ctx, invoice.ListFilter{IssuedFrom: rng.Since(today)})
	if err != nil {
		return nil, fmt.Errorf("listing invoices for report: %w", err)
	}

	return &Report{
		Range:    rng,
		AsOf:     invoice.Date(today),
		Summary:  Summarize(invoices, rng, today),
		ByClient: RevenueByClient(invoices, rng, today),
		Aging:    Aging(invoices, today),
	}, nil
}
