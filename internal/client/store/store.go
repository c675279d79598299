package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, email, address, created_at, updated_at
func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	var addr []byte

	if err := s.Scan(&c.ID, &c.Name, &c.Email, &addr, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	if len(addr) > 0 {
		if err := json.Unmarshal(addr, &c.Address); err != nil {
			return nil, fmt.Errorf("decoding address: %w", err)
		}
	}

	return &c, nil
}

const selectClientColumns = `id, name, email, address, created_at, updated_at`

const insertClient = `
	INSERT INTO clients (name, email, address, created_at)
	VALUES ($1, $2, $3, NOW())
	RETURNING id, created_at
`

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	addr, err := json.Marshal(c.Address)
	if err != nil {
		return fmt.Errorf("encoding address: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, insertClient, c.Name, c.Email, addr).Scan(&c.ID, &c.CreatedAt); err != nil {
		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

// CreateClients inserts all clients in one transaction.
func (s *Store) CreateClients(ctx context.Context, cs []*client.Client) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, c := range cs {
		addr, err := json.Marshal(c.Address)
		if err != nil {
			return fmt.Errorf("encoding address: %w", err)
		}

		if err := dbTx.QueryRowContext(ctx, insertClient, c.Name, c.Email, addr).Scan(&c.ID, &c.CreatedAt); err != nil {
			return fmt.Errorf("creating client %q: %w", c.Name, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) ListClients(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients`

	var args []any

	if filter.Search != "" {
		query += ` WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'`

		args = append(args, filter.Search)
	}

	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return clients, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	addr, err := json.Marshal(c.Address)
	if err != nil {
		return fmt.Errorf("encoding address: %w", err)
	}

	query := `
		UPDATE clients
		SET name = $1, email = $2, address = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err = s.db.QueryRowContext(ctx, query, c.Name, c.Email, addr, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return client.ErrNotFound
		}

		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) DeleteClient(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	if n == 0 {
		return client.ErrNotFound
	}

	return nil
}
