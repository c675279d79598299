package company

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
)

var (
	// ErrProfileMissing is returned when an operation needs a company profile and none has been set up.
	ErrProfileMissing = errors.New("company profile missing")
	// ErrProfileExists is returned by Setup when a profile is already configured.
	ErrProfileExists = errors.New("company profile already exists")
	// ErrConflict is returned when the profile changed since it was read.
	ErrConflict = errors.New("company profile was modified concurrently")
)

const (
	DefaultPaymentTermsDays = 30
	DefaultCurrency         = "EUR"
)

// Profile is the single company configuration record. NextInvoiceNumber is the
// only source of truth for invoice numbering.
type Profile struct {
	ID                  uuid.UUID
	Name                string
	Email               string
	Phone               string
	Address             address.Address
	Logo                string // opaque reference, never interpreted
	InvoiceNumberPrefix string
	NextInvoiceNumber   int64
	TaxType             string
	TaxNumber           string
	Template            string
	PaymentTermsDays    int
	Currency            string
	Version             int64
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}
