package company

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/event"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=company
type Repository interface {
	GetProfile(ctx context.Context) (*Profile, error)
	CreateProfile(ctx context.Context, p *Profile) error
	UpdateProfile(ctx context.Context, p *Profile) error
}

type Publisher interface {
	Publish(ctx context.Context, events ...event.Event)
}

type Service struct {
	repo   Repository
	events Publisher
	now    func() time.Time
}

func NewService(repo Repository, events Publisher) *Service {
	return &Service{repo: repo, events: events, now: time.Now}
}

type SetupParams struct {
	Name                string          `json:"name" validate:"required"`
	Email               string          `json:"email" validate:"omitempty,email"`
	Phone               string          `json:"phone"`
	Address             address.Address `json:"address"`
	Logo                string          `json:"logo"`
	InvoiceNumberPrefix string          `json:"invoice_number_prefix"`
	NextInvoiceNumber   int64           `json:"next_invoice_number" validate:"gte=0"`
	TaxType             string          `json:"tax_type"`
	TaxNumber           string          `json:"tax_number"`
	Template            string          `json:"template"`
	PaymentTermsDays    int             `json:"payment_terms_days" validate:"gte=0"`
	Currency            string          `json:"currency"`
}

// Setup creates the company profile. It fails with ErrProfileExists when one is already configured.
func (s *Service) Setup(ctx context.Context, params SetupParams) (*Profile, error) {
	if err := validation.Struct(params); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetProfile(ctx)
	if err != nil && !errors.Is(err, ErrProfileMissing) {
		return nil, fmt.Errorf("checking existing profile: %w", err)
	}

	if existing != nil {
		return nil, ErrProfileExists
	}

	p := &Profile{
		Name:                params.Name,
		Email:               params.Email,
		Phone:               params.Phone,
		Address:             params.Address,
		Logo:                params.Logo,
		InvoiceNumberPrefix: params.InvoiceNumberPrefix,
		NextInvoiceNumber:   params.NextInvoiceNumber,
		TaxType:             params.TaxType,
		TaxNumber:           params.TaxNumber,
		Template:            params.Template,
		PaymentTermsDays:    params.PaymentTermsDays,
		Currency:            params.Currency,
	}

	if p.NextInvoiceNumber < 1 {
		p.NextInvoiceNumber = 1
	}

	if p.PaymentTermsDays == 0 {
		p.PaymentTermsDays = DefaultPaymentTermsDays
	}

	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}

	if err := s.repo.CreateProfile(ctx, p); err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, p)

	return p, nil
}

func (s *Service) Get(ctx context.Context) (*Profile, error) {
	return s.repo.GetProfile(ctx)
}

// Exists reports whether a profile has been set up.
func (s *Service) Exists(ctx context.Context) (bool, error) {
	_, err := s.repo.GetProfile(ctx)
	if errors.Is(err, ErrProfileMissing) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

type UpdateParams struct {
	Name                *string          `json:"name,omitempty"`
	Email               *string          `json:"email,omitempty"`
	Phone               *string          `json:"phone,omitempty"`
	Address             *address.Address `json:"address,omitempty"`
	Logo                *string          `json:"logo,omitempty"`
	InvoiceNumberPrefix *string          `json:"invoice_number_prefix,omitempty"`
	NextInvoiceNumber   *int64           `json:"next_invoice_number,omitempty"`
	TaxType             *string          `json:"tax_type,omitempty"`
	TaxNumber           *string          `json:"tax_number,omitempty"`
	Template            *string          `json:"template,omitempty"`
	PaymentTermsDays    *int             `json:"payment_terms_days,omitempty"`
	Currency            *string          `json:"currency,omitempty"`
}

// Update applies a settings edit. The invoice counter may be moved forward but never back.
func (s *Service) Update(ctx context.Context, params UpdateParams) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	if params.NextInvoiceNumber != nil && *params.NextInvoiceNumber < p.NextInvoiceNumber {
		return nil, validation.New("next_invoice_number",
			fmt.Sprintf("must not be lower than the current value %d", p.NextInvoiceNumber))
	}

	apply(&p.Name, params.Name)
	apply(&p.Email, params.Email)
	apply(&p.Phone, params.Phone)
	apply(&p.Address, params.Address)
	apply(&p.Logo, params.Logo)
	apply(&p.InvoiceNumberPrefix, params.InvoiceNumberPrefix)
	apply(&p.NextInvoiceNumber, params.NextInvoiceNumber)
	apply(&p.TaxType, params.TaxType)
	apply(&p.TaxNumber, params.TaxNumber)
	apply(&p.Template, params.Template)
	apply(&p.PaymentTermsDays, params.PaymentTermsDays)
	apply(&p.Currency, params.Currency)

	if err := validation.Struct(SetupParams{
		Name:              p.Name,
		Email:             p.Email,
		NextInvoiceNumber: p.NextInvoiceNumber,
		PaymentTermsDays:  p.PaymentTermsDays,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}

	s.publishUpdated(ctx, p)

	return p, nil
}

func (s *Service) publishUpdated(ctx context.Context, p *Profile) {
	if s.events == nil {
		return
	}

	s.events.Publish(ctx, event.ProfileUpdated{
		Name:              p.Name,
		NextInvoiceNumber: p.NextInvoiceNumber,
		At:                s.now(),
	})
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
