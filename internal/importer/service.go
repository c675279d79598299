package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/importer/catalog"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
)

type ItemStore interface {
	Import(ctx context.Context, params []item.CreateParams) ([]*item.Item, error)
}

type ClientStore interface {
	Import(ctx context.Context, params []client.CreateParams) ([]*client.Client, error)
}

type Service struct {
	parser  *catalog.Parser
	items   ItemStore
	clients ClientStore
}

func NewService(items ItemStore, clients ClientStore) *Service {
	return &Service{
		parser:  catalog.NewParser(),
		items:   items,
		clients: clients,
	}
}

// Parse reads r without storing anything, so callers can review the rows first.
func (s *Service) Parse(kind Kind, r io.Reader) (*Batch, error) {
	b := &Batch{Kind: kind}

	var err error

	switch kind {
	case KindItems:
		b.Items, b.Charset, err = s.parser.ParseItems(r)
	case KindClients:
		b.Clients, b.Charset, err = s.parser.ParseClients(r)
	default:
		return nil, fmt.Errorf("unknown import kind: %s", kind)
	}

	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", kind, err)
	}

	return b, nil
}

// Store writes a parsed batch. Either every row is stored or none is.
func (s *Service) Store(ctx context.Context, b *Batch) (int, error) {
	switch b.Kind {
	case KindItems:
		items, err := s.items.Import(ctx, b.Items)
		return len(items), err
	case KindClients:
		clients, err := s.clients.Import(ctx, b.Clients)
		return len(clients), err
	default:
		return 0, fmt.Errorf("unknown import kind: %s", b.Kind)
	}
}

func (s *Service) Import(ctx context.Context, kind Kind, r io.Reader) (*Batch, int, error) {
	b, err := s.Parse(kind, r)
	if err != nil {
		return nil, 0, err
	}

	n, err := s.Store(ctx, b)
	if err != nil {
		return b, 0, err
	}

	return b, n, nil
}
