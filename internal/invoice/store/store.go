package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/company"
	companystore "github.com/MrJamesThe3rd/invoicer/internal/company/store"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// scanInvoice reads a row selected with selectInvoiceColumns.
func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var (
		inv      invoice.Invoice
		e        encoded
		status   string
		payments []byte
	)

	if err := s.Scan(
		&inv.ID, &inv.Number, &e.client, &e.company, &e.lines, &e.taxes, &status,
		&inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.Total, &inv.AmountPaid,
		&inv.Notes, &inv.Currency, &inv.Version, &inv.CreatedAt, &inv.UpdatedAt, &payments,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(status)

	if err := decode(&inv, e, payments); err != nil {
		return nil, err
	}

	return &inv, nil
}

const selectInvoiceColumns = `
	i.id, i.number, i.client, i.company, i.lines, i.taxes, i.status,
	i.issue_date, i.due_date, i.subtotal, i.total, i.amount_paid,
	i.notes, i.currency, i.version, i.created_at, i.updated_at,
	COALESCE((
		SELECT json_agg(json_build_object(
			'id', p.id, 'amount', p.amount, 'date', p.paid_on,
			'method', p.method, 'note', p.note, 'created_at', p.created_at
		) ORDER BY p.seq)
		FROM payments p WHERE p.invoice_id = i.id
	), '[]') AS payments
`

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices i WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices i WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND i.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.IssuedFrom != nil {
		query += fmt.Sprintf(" AND i.issue_date >= $%d", argIdx)

		args = append(args, *filter.IssuedFrom)
		argIdx++
	}

	query += " ORDER BY i.issue_date DESC, i.number DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoice rows: %w", err)
	}

	return invoices, nil
}

// UpdateInvoice writes the editable fields, ledger totals and status. It fails with
// invoice.ErrConflict when inv.Version is stale. On success inv.Version is advanced.
func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	stamp, err := updateInvoice(ctx, s.db, inv)
	if err != nil {
		return err
	}

	stamp.apply(inv)

	return nil
}

// versionStamp is what a successful update returns; it is copied onto the invoice only once
// the write is durable.
type versionStamp struct {
	version   int64
	updatedAt time.Time
}

func (v versionStamp) apply(inv *invoice.Invoice) {
	inv.Version = v.version
	inv.UpdatedAt = new(v.updatedAt)
}

func updateInvoice(ctx context.Context, q queryer, inv *invoice.Invoice) (versionStamp, error) {
	var stamp versionStamp

	e, err := encode(inv)
	if err != nil {
		return stamp, err
	}

	query := `
		UPDATE invoices
		SET client_id = $1, client = $2, lines = $3, taxes = $4, status = $5,
			issue_date = $6, due_date = $7, subtotal = $8, total = $9, amount_paid = $10,
			notes = $11, version = version + 1, updated_at = NOW()
		WHERE id = $12 AND version = $13
		RETURNING version, updated_at
	`

	err = q.QueryRowContext(ctx, query,
		inv.Client.ClientID, e.client, e.lines, e.taxes, inv.Status,
		inv.IssueDate, inv.DueDate, inv.Subtotal, inv.Total, inv.AmountPaid,
		inv.Notes, inv.ID, inv.Version,
	).Scan(&stamp.version, &stamp.updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stamp, invoice.ErrConflict
		}

		return stamp, fmt.Errorf("updating invoice: %w", err)
	}

	return stamp, nil
}

func (s *Store) AppendPayment(ctx context.Context, inv *invoice.Invoice, p invoice.PaymentRecord) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	stamp, err := updateInvoice(ctx, dbTx, inv)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO payments (id, invoice_id, amount, paid_on, method, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := dbTx.ExecContext(ctx, query, p.ID, inv.ID, p.Amount, p.Date, p.Method, p.Note, p.CreatedAt); err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	stamp.apply(inv)

	return nil
}

// DeleteInvoices removes the invoices and, through the foreign key, their payments.
func (s *Store) DeleteInvoices(ctx context.Context, ids []uuid.UUID) (int64, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var deleted int64

	for _, id := range ids {
		res, err := dbTx.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
		if err != nil {
			return 0, fmt.Errorf("deleting invoice %s: %w", id, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("deleting invoice %s: %w", id, err)
		}

		deleted += n
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return deleted, nil
}

type issueTx struct {
	tx *sql.Tx
}

func (s *Store) BeginIssue(ctx context.Context) (invoice.IssueTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning issue tx: %w", err)
	}

	return &issueTx{tx: dbTx}, nil
}

func (itx *issueTx) Commit() error   { return itx.tx.Commit() }
func (itx *issueTx) Rollback() error { return itx.tx.Rollback() }

// LockProfile reads the profile row FOR UPDATE; concurrent issuers queue on it until commit.
func (itx *issueTx) LockProfile(ctx context.Context) (*company.Profile, error) {
	query := `SELECT ` + companystore.ProfileColumns + ` FROM company_profile LIMIT 1 FOR UPDATE`

	p, err := companystore.ScanProfile(itx.tx.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrProfileMissing
		}

		return nil, fmt.Errorf("locking company profile: %w", err)
	}

	return p, nil
}

func (itx *issueTx) AdvanceCounter(ctx context.Context, profileID uuid.UUID, from, to int64) error {
	query := `
		UPDATE company_profile
		SET next_invoice_number = $1, version = version + 1, updated_at = NOW()
		WHERE id = $2 AND next_invoice_number = $3
	`

	res, err := itx.tx.ExecContext(ctx, query, to, profileID, from)
	if err != nil {
		return fmt.Errorf("advancing invoice counter: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("advancing invoice counter: %w", err)
	}

	if n == 0 {
		return company.ErrConflict
	}

	return nil
}

func (itx *issueTx) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	e, err := encode(inv)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO invoices (
			number, client_id, client, company, lines, taxes, status, issue_date, due_date,
			subtotal, total, amount_paid, notes, currency, version, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, 1, NOW())
		RETURNING id, version, created_at
	`

	err = itx.tx.QueryRowContext(ctx, query,
		inv.Number, inv.Client.ClientID, e.client, e.company, e.lines, e.taxes, inv.Status,
		inv.IssueDate, inv.DueDate, inv.Subtotal, inv.Total, inv.AmountPaid, inv.Notes, inv.Currency,
	).Scan(&inv.ID, &inv.Version, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}
