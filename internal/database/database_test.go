package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 2)

	for _, f := range files {
		body, err := fs.ReadFile(migrations, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", f)
		assert.Contains(t, string(body), "-- +goose Down", f)
	}
}

func TestMigrations_InvoiceClientIsNotForeignKey(t *testing.T) {
	body, err := fs.ReadFile(migrations, "migrations/00002_invoices.sql")
	require.NoError(t, err)

	assert.NotContains(t, string(body), "REFERENCES clients")
	assert.Contains(t, string(body), "REFERENCES invoices (id) ON DELETE CASCADE")
}
