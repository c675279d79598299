package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/company"
	"github.com/MrJamesThe3rd/invoicer/internal/company/store"
)

var profileColumns = []string{
	"id", "name", "email", "phone", "address", "logo", "invoice_number_prefix", "next_invoice_number",
	"tax_type", "tax_number", "template", "payment_terms_days", "currency", "version", "created_at", "updated_at",
}

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_GetProfile(t *testing.T) {
	id := uuid.New()
	created := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(`SELECT .+ FROM company_profile`).
			WillReturnRows(sqlmock.NewRows(profileColumns).AddRow(
				id, "Acme", "billing@acme.test", "", []byte(`{"city":"Lisbon","country":"PT"}`), "", "INV-", int64(5),
				"VAT", "PT123", "classic", int64(30), "EUR", int64(3), created, nil,
			))

		p, err := s.GetProfile(context.Background())
		require.NoError(t, err)

		assert.Equal(t, id, p.ID)
		assert.Equal(t, "INV-", p.InvoiceNumberPrefix)
		assert.Equal(t, int64(5), p.NextInvoiceNumber)
		assert.Equal(t, address.Address{City: "Lisbon", Country: "PT"}, p.Address)
		assert.Equal(t, 30, p.PaymentTermsDays)
		assert.Equal(t, int64(3), p.Version)
		assert.Nil(t, p.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(`SELECT .+ FROM company_profile`).WillReturnError(sql.ErrNoRows)

		_, err := s.GetProfile(context.Background())
		assert.ErrorIs(t, err, company.ErrProfileMissing)
	})
}

func TestStore_CreateProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, mock := newStore(t)
		id := uuid.New()

		mock.ExpectQuery(`INSERT INTO company_profile`).
			WithArgs("Acme", "", "", []byte(`{}`), "", "INV-", int64(1), "", "", "", 30, "EUR").
			WillReturnRows(sqlmock.NewRows([]string{"id", "version", "created_at"}).AddRow(id, int64(1), time.Now()))

		p := &company.Profile{Name: "Acme", InvoiceNumberPrefix: "INV-", NextInvoiceNumber: 1, PaymentTermsDays: 30, Currency: "EUR"}
		require.NoError(t, s.CreateProfile(context.Background(), p))

		assert.Equal(t, id, p.ID)
		assert.Equal(t, int64(1), p.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SecondProfile", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(`INSERT INTO company_profile`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		err := s.CreateProfile(context.Background(), &company.Profile{Name: "Acme"})
		assert.ErrorIs(t, err, company.ErrProfileExists)
	})
}

func TestStore_UpdateProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		s, mock := newStore(t)
		p := &company.Profile{ID: uuid.New(), Name: "Acme", NextInvoiceNumber: 9, Version: 2}

		mock.ExpectQuery(`UPDATE company_profile`).
			WillReturnRows(sqlmock.NewRows([]string{"version", "updated_at"}).AddRow(int64(3), time.Now()))

		require.NoError(t, s.UpdateProfile(context.Background(), p))
		assert.Equal(t, int64(3), p.Version)
		assert.NotNil(t, p.UpdatedAt)
	})

	t.Run("StaleVersion", func(t *testing.T) {
		s, mock := newStore(t)

		mock.ExpectQuery(`UPDATE company_profile`).WillReturnError(sql.ErrNoRows)

		err := s.UpdateProfile(context.Background(), &company.Profile{ID: uuid.New(), Version: 1})
		assert.ErrorIs(t, err, company.ErrConflict)
	})
}
