package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/item"
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

// Expected column order: id, name, description, unit_price, created_at, updated_at
func scanItem(s scanner) (*item.Item, error) {
	var it item.Item

	if err := s.Scan(&it.ID, &it.Name, &it.Description, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}

	return &it, nil
}

const selectItemColumns = `id, name, description, unit_price, created_at, updated_at`

const insertItem = `
	INSERT INTO items (name, description, unit_price, created_at)
	VALUES ($1, $2, $3, NOW())
	RETURNING id, created_at
`

func (s *Store) CreateItem(ctx context.Context, it *item.Item) error {
	err := s.db.QueryRowContext(ctx, insertItem, it.Name, it.Description, it.UnitPrice).Scan(&it.ID, &it.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

// CreateItems inserts all items in one transaction.
func (s *Store) CreateItems(ctx context.Context, items []*item.Item) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, it := range items {
		err := dbTx.QueryRowContext(ctx, insertItem, it.Name, it.Description, it.UnitPrice).Scan(&it.ID, &it.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating item %q: %w", it.Name, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetItem(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items WHERE id = $1`

	it, err := scanItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, item.ErrNotFound
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return it, nil
}

func (s *Store) ListItems(ctx context.Context) ([]*item.Item, error) {
	query := `SELECT ` + selectItemColumns + ` FROM items ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []*item.Item

	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item rows: %w", err)
	}

	return items, nil
}

func (s *Store) UpdateItem(ctx context.Context, it *item.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, unit_price = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, it.Name, it.Description, it.UnitPrice, it.ID).Scan(&it.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item.ErrNotFound
		}

		return fmt.Errorf("updating item: %w", err)
	}

	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if n == 0 {
		return item.ErrNotFound
	}

	return nil
}
