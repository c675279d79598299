package item

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/money"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=item
type Repository interface {
	CreateItem(ctx context.Context, it *Item) error
	CreateItems(ctx context.Context, items []*Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	UpdateItem(ctx context.Context, it *Item) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	UnitPrice   money.Money `json:"unit_price" validate:"gte=0"`
}

func (p CreateParams) build() (*Item, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	return &Item{Name: p.Name, Description: strings.TrimSpace(p.Description), UnitPrice: p.UnitPrice}, nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Item, error) {
	it, err := params.build()
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

// Import validates every row before writing any of them.
func (s *Service) Import(ctx context.Context, params []CreateParams) ([]*Item, error) {
	items := make([]*Item, 0, len(params))

	for i, p := range params {
		it, err := p.build()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, nil
	}

	if err := s.repo.CreateItems(ctx, items); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Item, error) {
	return s.repo.ListItems(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Item, error) {
	updated, err := params.build()
	if err != nil {
		return nil, err
	}

	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	it.Name = updated.Name
	it.Description = updated.Description
	it.UnitPrice = updated.UnitPrice

	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return nil, err
	}

	return it, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteItem(ctx, id)
}
