package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	CreateClient(ctx context.Context, c *Client) error
	CreateClients(ctx context.Context, cs []*Client) error
	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	ListClients(ctx context.Context, filter ListFilter) ([]*Client, error)
	UpdateClient(ctx context.Context, c *Client) error
	DeleteClient(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name    string          `json:"name" validate:"required"`
	Email   string          `json:"email" validate:"omitempty,email"`
	Address address.Address `json:"address"`
}

type ListFilter struct {
	Search string
}

func (p CreateParams) normalize() CreateParams {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)

	return p
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	params = params.normalize()
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c := &Client{Name: params.Name, Email: params.Email, Address: params.Address}
	if err := s.repo.CreateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// Import validates every row before writing any of them.
func (s *Service) Import(ctx context.Context, params []CreateParams) ([]*Client, error) {
	clients := make([]*Client, 0, len(params))

	for i, p := range params {
		p = p.normalize()
		if err := validation.Struct(p); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		clients = append(clients, &Client{Name: p.Name, Email: p.Email, Address: p.Address})
	}

	if len(clients) == 0 {
		return nil, nil
	}

	if err := s.repo.CreateClients(ctx, clients); err != nil {
		return nil, err
	}

	return clients, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.repo.GetClient(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Client, error) {
	return s.repo.ListClients(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Client, error) {
	params = params.normalize()
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	c, err := s.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Name = params.Name
	c.Email = params.Email
	c.Address = params.Address

	if err := s.repo.UpdateClient(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteClient(ctx, id)
}
