package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

// Kind identifies an event type.
type Kind string

const (
	KindInvoiceCreated  Kind = "invoice.created"
	KindInvoiceUpdated  Kind = "invoice.updated"
	KindPaymentRecorded Kind = "invoice.payment_recorded"
	KindStatusChanged   Kind = "invoice.status_changed"
	KindInvoicesDeleted Kind = "invoice.deleted"
	KindProfileUpdated  Kind = "company.profile_updated"
)

// Event is implemented by every payload published on the bus.
type Event interface {
	Kind() Kind
	OccurredAt() time.Time
}

type InvoiceCreated struct {
	InvoiceID  uuid.UUID   `json:"invoice_id"`
	Number     string      `json:"number"`
	ClientName string      `json:"client_name"`
	Total      money.Money `json:"total"`
	At         time.Time   `json:"at"`
}

func (e InvoiceCreated) Kind() Kind            { return KindInvoiceCreated }
func (e InvoiceCreated) OccurredAt() time.Time { return e.At }

type InvoiceUpdated struct {
	InvoiceID uuid.UUID   `json:"invoice_id"`
	Number    string      `json:"number"`
	Total     money.Money `json:"total"`
	At        time.Time   `json:"at"`
}

func (e InvoiceUpdated) Kind() Kind            { return KindInvoiceUpdated }
func (e InvoiceUpdated) OccurredAt() time.Time { return e.At }

type PaymentRecorded struct {
	InvoiceID  uuid.UUID   `json:"invoice_id"`
	Number     string      `json:"number"`
	Amount     money.Money `json:"amount"`
	BalanceDue money.Money `json:"balance_due"`
	At         time.Time   `json:"at"`
}

func (e PaymentRecorded) Kind() Kind            { return KindPaymentRecorded }
func (e PaymentRecorded) OccurredAt() time.Time { return e.At }

// StatusChanged carries statuses as plain strings so this package stays free of invoice imports.
type StatusChanged struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
	Number    string    `json:"number"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Override  bool      `json:"override,omitempty"`
	At        time.Time `json:"at"`
}

func (e StatusChanged) Kind() Kind            { return KindStatusChanged }
func (e StatusChanged) OccurredAt() time.Time { return e.At }

type InvoicesDeleted struct {
	InvoiceIDs []uuid.UUID `json:"invoice_ids"`
	At         time.Time   `json:"at"`
}

func (e InvoicesDeleted) Kind() Kind            { return KindInvoicesDeleted }
func (e InvoicesDeleted) OccurredAt() time.Time { return e.At }

type ProfileUpdated struct {
	Name              string    `json:"name"`
	NextInvoiceNumber int64     `json:"next_invoice_number"`
	At                time.Time `json:"at"`
}

func (e ProfileUpdated) Kind() Kind            { return KindProfileUpdated }
func (e ProfileUpdated) OccurredAt() time.Time { return e.At }
