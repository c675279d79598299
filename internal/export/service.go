package export

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

type InvoiceReader interface {
	Get(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error)
	List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error)
}

// Service prepares invoice data for external renderers and reminder mails.
type Service struct {
	invoices InvoiceReader
	now      func() time.Time
}

func NewService(invoices InvoiceReader) *Service {
	return &Service{invoices: invoices, now: time.Now}
}

func (s *Service) Document(ctx context.Context, id uuid.UUID) (Document, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return Document{}, err
	}

	return Build(inv), nil
}

// Reminder is one open invoice in a reminder digest.
type Reminder struct {
	Invoice     *invoice.Invoice
	DaysOverdue int // negative while not yet due
}

// Reminders lists every open invoice due within the next `within` days or already overdue,
// most overdue first.
func (s *Service) Reminders(ctx context.Context, within int) ([]Reminder, error) {
	invoices, err := s.invoices.List(ctx, invoice.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	today := invoice.Date(s.now())

	var out []Reminder

	for _, inv := range invoices {
		switch inv.Status {
		case invoice.StatusSent, invoice.StatusOverdue, invoice.StatusPartiallyPaid:
		default:
			continue
		}

		days := invoice.DaysBetween(inv.DueDate, today)
		if days < -within {
			continue
		}

		out = append(out, Reminder{Invoice: inv, DaysOverdue: days})
	}

	slices.SortFunc(out, func(a, b Reminder) int {
		return cmp.Or(cmp.Compare(b.DaysOverdue, a.DaysOverdue), cmp.Compare(a.Invoice.Number, b.Invoice.Number))
	})

	return out, nil
}

// Digest renders reminders as a plain-text mail body, one line per invoice.
func Digest(reminders []Reminder) string {
	var sb strings.Builder

	for _, r := range reminders {
		inv := r.Invoice

		due := fmt.Sprintf("due in %d days", -r.DaysOverdue)

		switch {
		case r.DaysOverdue > 0:
			due = fmt.Sprintf("%d days overdue", r.DaysOverdue)
		case r.DaysOverdue == 0:
			due = "due today"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s | %s\n",
			inv.Number,
			inv.Client.Name,
			inv.DueDate.Format(time.DateOnly),
			money.Format(inv.BalanceDue(), inv.Currency),
			due,
		)
	}

	return sb.String()
}
