package company

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/company"
)

type profileResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Name                string          `json:"name"`
	Email               string          `json:"email,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Address             address.Address `json:"address"`
	Logo                string          `json:"logo,omitempty"`
	InvoiceNumberPrefix string          `json:"invoice_number_prefix"`
	NextInvoiceNumber   int64           `json:"next_invoice_number"`
	TaxType             string          `json:"tax_type,omitempty"`
	TaxNumber           string          `json:"tax_number,omitempty"`
	Template            string          `json:"template,omitempty"`
	PaymentTermsDays    int             `json:"payment_terms_days"`
	Currency            string          `json:"currency"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           *time.Time      `json:"updated_at,omitempty"`
}

func toResponse(p *company.Profile) profileResponse {
	return profileResponse{
		ID:                  p.ID,
		Name:                p.Name,
		Email:               p.Email,
		Phone:               p.Phone,
		Address:             p.Address,
		Logo:                p.Logo,
		InvoiceNumberPrefix: p.InvoiceNumberPrefix,
		NextInvoiceNumber:   p.NextInvoiceNumber,
		TaxType:             p.TaxType,
		TaxNumber:           p.TaxNumber,
		Template:            p.Template,
		PaymentTermsDays:    p.PaymentTermsDays,
		Currency:            p.Currency,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}
