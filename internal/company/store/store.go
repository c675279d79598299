package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrJamesThe3rd/invoicer/internal/company"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ProfileColumns is the column list expected by ScanProfile.
const ProfileColumns = `
	id, name, email, phone, address, logo, invoice_number_prefix, next_invoice_number,
	tax_type, tax_number, template, payment_terms_days, currency, version, created_at, updated_at
`

// ScanProfile reads a company_profile row selected with ProfileColumns.
func ScanProfile(s Scanner) (*company.Profile, error) {
	var p company.Profile

	var addr []byte

	if err := s.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &addr, &p.Logo, &p.InvoiceNumberPrefix, &p.NextInvoiceNumber,
		&p.TaxType, &p.TaxNumber, &p.Template, &p.PaymentTermsDays, &p.Currency, &p.Version,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(addr) > 0 {
		if err := json.Unmarshal(addr, &p.Address); err != nil {
			return nil, fmt.Errorf("decoding address: %w", err)
		}
	}

	return &p, nil
}

func (s *Store) GetProfile(ctx context.Context) (*company.Profile, error) {
	query := `SELECT ` + ProfileColumns + ` FROM company_profile LIMIT 1`

	p, err := ScanProfile(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrProfileMissing
		}

		return nil, fmt.Errorf("getting company profile: %w", err)
	}

	return p, nil
}

func (s *Store) CreateProfile(ctx context.Context, p *company.Profile) error {
	addr, err := json.Marshal(p.Address)
	if err != nil {
		return fmt.Errorf("encoding address: %w", err)
	}

	query := `
		INSERT INTO company_profile (
			name, email, phone, address, logo, invoice_number_prefix, next_invoice_number,
			tax_type, tax_number, template, payment_terms_days, currency, version, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 1, NOW())
		RETURNING id, version, created_at
	`

	err = s.db.QueryRowContext(ctx, query,
		p.Name, p.Email, p.Phone, addr, p.Logo, p.InvoiceNumberPrefix, p.NextInvoiceNumber,
		p.TaxType, p.TaxNumber, p.Template, p.PaymentTermsDays, p.Currency,
	).Scan(&p.ID, &p.Version, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return company.ErrProfileExists
		}

		return fmt.Errorf("creating company profile: %w", err)
	}

	return nil
}

// UpdateProfile writes p if its version still matches the stored row. On success p.Version is advanced.
func (s *Store) UpdateProfile(ctx context.Context, p *company.Profile) error {
	addr, err := json.Marshal(p.Address)
	if err != nil {
		return fmt.Errorf("encoding address: %w", err)
	}

	query := `
		UPDATE company_profile
		SET name = $1, email = $2, phone = $3, address = $4, logo = $5, invoice_number_prefix = $6,
			next_invoice_number = $7, tax_type = $8, tax_number = $9, template = $10,
			payment_terms_days = $11, currency = $12, version = version + 1, updated_at = NOW()
		WHERE id = $13 AND version = $14
		RETURNING version, updated_at
	`

	err = s.db.QueryRowContext(ctx, query,
		p.Name, p.Email, p.Phone, addr, p.Logo, p.InvoiceNumberPrefix,
		p.NextInvoiceNumber, p.TaxType, p.TaxNumber, p.Template,
		p.PaymentTermsDays, p.Currency, p.ID, p.Version,
	).Scan(&p.Version, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return company.ErrConflict
		}

		return fmt.Errorf("updating company profile: %w", err)
	}

	return nil
}
