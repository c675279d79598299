package invoice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/company"
	"github.com/MrJamesThe3rd/invoicer/internal/event"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	ListInvoices(ctx context.Context, filter ListFilter) ([]*Invoice, error)
	// UpdateInvoice writes inv if its version still matches, replacing lines and taxes.
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	// AppendPayment stores p and the new ledger totals of inv in one transaction.
	AppendPayment(ctx context.Context, inv *Invoice, p PaymentRecord) error
	DeleteInvoices(ctx context.Context, ids []uuid.UUID) (int64, error)

	BeginIssue(ctx context.Context) (IssueTx, error)
}

// IssueTx holds the company profile row locked while an invoice number is minted and the invoice is stored.
type IssueTx interface {
	LockProfile(ctx context.Context) (*company.Profile, error)
	AdvanceCounter(ctx context.Context, profileID uuid.UUID, from, to int64) error
	CreateInvoice(ctx context.Context, inv *Invoice) error
	Commit() error
	Rollback() error
}

type Publisher interface {
	Publish(ctx context.Context, events ...event.Event)
}

type ClientFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*client.Client, error)
}

type ItemFinder interface {
	Get(ctx context.Context, id uuid.UUID) (*item.Item, error)
}

type Service struct {
	repo    Repository
	clients ClientFinder
	items   ItemFinder
	events  Publisher
	now     func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the source of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, clients ClientFinder, items ItemFinder, events Publisher, opts ...Option) *Service {
	s := &Service{repo: repo, clients: clients, items: items, events: events, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type LineParams struct {
	ItemID      *uuid.UUID      `json:"item_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	// UnitPrice overrides the catalog price when ItemID is set.
	UnitPrice *money.Money `json:"unit_price,omitempty"`
}

type TaxParams struct {
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

type CreateParams struct {
	ClientID  *uuid.UUID   `json:"client_id"`
	Lines     []LineParams `json:"lines"`
	Taxes     []TaxParams  `json:"taxes"`
	IssueDate *time.Time   `json:"issue_date,omitempty"`
	DueDate   *time.Time   `json:"due_date,omitempty"`
	Notes     string       `json:"notes"`
}

type UpdateParams struct {
	CreateParams
	// Version, when set, must match the stored invoice.
	Version int64 `json:"version"`
}

type ListFilter struct {
	Status     *Status
	ClientID   *uuid.UUID
	IssuedFrom *time.Time
}

type PaymentParams struct {
	Amount money.Money `json:"amount"`
	Date   *time.Time  `json:"date,omitempty"`
	Method Method      `json:"method"`
	Note   string      `json:"note"`
}

// Result is a saved invoice plus any non-blocking warnings about it.
type Result struct {
	Invoice  *Invoice
	Warnings []string
}

// Create mints the next invoice number and stores the invoice in the same transaction, so a failed
// insert never consumes a number.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Result, error) {
	now := s.now()

	draft, err := s.draft(ctx, params, now)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginIssue(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	profile, err := tx.LockProfile(ctx)
	if err != nil {
		return nil, err
	}

	if params.DueDate == nil {
		draft.DueDate = draft.IssueDate.AddDate(0, 0, profile.PaymentTermsDays)
	}

	if err := draft.validate(); err != nil {
		return nil, err
	}

	number, next := company.IssueNumber(*profile)

	inv := &Invoice{
		Number:   number,
		Status:   StatusDraft,
		Currency: profile.Currency,
		Company: CompanySnapshot{
			Name:      profile.Name,
			Email:     profile.Email,
			Phone:     profile.Phone,
			Address:   profile.Address,
			TaxType:   profile.TaxType,
			TaxNumber: profile.TaxNumber,
			Logo:      profile.Logo,
			Template:  profile.Template,
		},
	}
	draft.apply(inv)
	inv.Status = Evaluate(inv, now)

	if err := tx.AdvanceCounter(ctx, profile.ID, profile.NextInvoiceNumber, next.NextInvoiceNumber); err != nil {
		return nil, err
	}

	if err := tx.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing invoice %s: %w", number, err)
	}

	s.publish(ctx,
		event.InvoiceCreated{InvoiceID: inv.ID, Number: inv.Number, ClientName: inv.Client.Name, Total: inv.Total, At: now},
		event.ProfileUpdated{Name: profile.Name, NextInvoiceNumber: next.NextInvoiceNumber, At: now},
	)

	return &Result{Invoice: inv, Warnings: Warnings(inv)}, nil
}

// Get returns the invoice with its status evaluated for today.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	inv, _ = Refresh(inv, s.now())

	return inv, nil
}

// List evaluates every status before applying the status filter, so stale stored statuses never leak.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	status := filter.Status
	filter.Status = nil

	invoices, err := s.repo.ListInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}

	today := s.now()
	out := invoices[:0]

	for _, inv := range invoices {
		inv, _ = Refresh(inv, today)
		if status != nil && inv.Status != *status {
			continue
		}

		out = append(out, inv)
	}

	return out, nil
}

func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, params PaymentParams) (*Invoice, error) {
	now := s.now()

	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	p := PaymentRecord{Amount: params.Amount, Method: params.Method, Note: params.Note}
	if params.Date != nil {
		p.Date = *params.Date
	}

	updated, err := RecordPayment(inv, p, now)
	if err != nil {
		return nil, err
	}

	payment := updated.Payments[len(updated.Payments)-1]

	if err := s.repo.AppendPayment(ctx, updated, payment); err != nil {
		return nil, err
	}

	s.publish(ctx, event.PaymentRecorded{
		InvoiceID:  updated.ID,
		Number:     updated.Number,
		Amount:     payment.Amount,
		BalanceDue: updated.BalanceDue(),
		At:         now,
	})
	s.publishStatus(ctx, inv.Status, updated, false, now)

	return updated, nil
}

func (s *Service) MarkSent(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	now := s.now()

	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := MarkSent(inv, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInvoice(ctx, updated); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, inv.Status, updated, false, now)

	return updated, nil
}

// MarkPaid settles each invoice without writing ledger records. It stops at the first failure;
// invoices before it stay settled.
func (s *Service) MarkPaid(ctx context.Context, ids ...uuid.UUID) ([]*Invoice, error) {
	now := s.now()
	out := make([]*Invoice, 0, len(ids))

	for _, id := range ids {
		inv, err := s.repo.GetInvoice(ctx, id)
		if err != nil {
			return out, fmt.Errorf("marking invoice %s paid: %w", id, err)
		}

		updated := MarkPaid(inv)

		if err := s.repo.UpdateInvoice(ctx, updated); err != nil {
			return out, fmt.Errorf("marking invoice %s paid: %w", id, err)
		}

		s.publishStatus(ctx, inv.Status, updated, true, now)

		out = append(out, updated)
	}

	return out, nil
}

func (s *Service) Edit(ctx context.Context, id uuid.UUID, params UpdateParams) (*Result, error) {
	now := s.now()

	inv, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Version != 0 && params.Version != inv.Version {
		return nil, ErrConflict
	}

	draft, err := s.draft(ctx, params.CreateParams, now)
	if err != nil {
		return nil, err
	}

	if params.IssueDate == nil {
		draft.IssueDate = inv.IssueDate
	}

	if params.DueDate == nil {
		draft.DueDate = inv.DueDate
	}

	updated, err := Edit(inv, draft, now)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInvoice(ctx, updated); err != nil {
		return nil, err
	}

	s.publish(ctx, event.InvoiceUpdated{InvoiceID: updated.ID, Number: updated.Number, Total: updated.Total, At: now})
	s.publishStatus(ctx, inv.Status, updated, false, now)

	return &Result{Invoice: updated, Warnings: Warnings(updated)}, nil
}

func (s *Service) Delete(ctx context.Context, ids ...uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.repo.DeleteInvoices(ctx, ids)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, event.InvoicesDeleted{InvoiceIDs: ids, At: s.now()})

	return n, nil
}

// SweepOverdue persists every status that drifted with the calendar and returns how many were updated.
// Invoices changed concurrently are skipped; the next sweep picks them up.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	now := s.now()

	invoices, err := s.repo.ListInvoices(ctx, ListFilter{})
	if err != nil {
		return 0, fmt.Errorf("listing invoices: %w", err)
	}

	var updated int

	for _, inv := range invoices {
		refreshed, changed := Refresh(inv, now)
		if !changed {
			continue
		}

		if err := s.repo.UpdateInvoice(ctx, refreshed); err != nil {
			if errors.Is(err, ErrConflict) {
				slog.Warn("skipping invoice modified during sweep", "invoice", inv.Number)
				continue
			}

			return updated, fmt.Errorf("updating invoice %s: %w", inv.Number, err)
		}

		s.publishStatus(ctx, inv.Status, refreshed, false, now)
		updated++
	}

	return updated, nil
}

// draft resolves client and catalog references into a Draft. Dates default to today.
func (s *Service) draft(ctx context.Context, params CreateParams, now time.Time) (Draft, error) {
	if params.ClientID == nil || *params.ClientID == uuid.Nil {
		return Draft{}, ErrClientRequired
	}

	c, err := s.clients.Get(ctx, *params.ClientID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return Draft{}, &ValidationError{Field: "client_id", Reason: "unknown client"}
		}

		return Draft{}, fmt.Errorf("loading client: %w", err)
	}

	d := Draft{
		Client:    ClientSnapshot{ClientID: c.ID, Name: c.Name, Email: c.Email, Address: c.Address},
		IssueDate: Date(now),
		Notes:     params.Notes,
	}

	if params.IssueDate != nil {
		d.IssueDate = *params.IssueDate
	}

	if params.DueDate != nil {
		d.DueDate = *params.DueDate
	}

	for i, lp := range params.Lines {
		line := LineItem{Description: lp.Description, Quantity: lp.Quantity}

		if lp.ItemID != nil {
			it, err := s.items.Get(ctx, *lp.ItemID)
			if err != nil {
				if errors.Is(err, item.ErrNotFound) {
					return Draft{}, &ValidationError{Field: fmt.Sprintf("lines[%d].item_id", i), Reason: "unknown item"}
				}

				return Draft{}, fmt.Errorf("loading item: %w", err)
			}

			line.UnitPrice = it.UnitPrice
			if line.Description == "" {
				line.Description = it.Name
			}
		}

		if lp.UnitPrice != nil {
			line.UnitPrice = *lp.UnitPrice
		}

		d.Lines = append(d.Lines, line)
	}

	for _, tp := range params.Taxes {
		d.Taxes = append(d.Taxes, TaxLine{Name: tp.Name, Rate: tp.Rate})
	}

	return d, nil
}

func (s *Service) publish(ctx context.Context, events ...event.Event) {
	if s.events == nil {
		return
	}

	s.events.Publish(ctx, events...)
}

func (s *Service) publishStatus(ctx context.Context, from Status, inv *Invoice, override bool, now time.Time) {
	if from == inv.Status {
		return
	}

	s.publish(ctx, event.StatusChanged{
		InvoiceID: inv.ID,
		Number:    inv.Number,
		From:      string(from),
		To:        string(inv.Status),
		Override:  override,
		At:        now,
	})
}
