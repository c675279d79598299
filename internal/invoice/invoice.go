package invoice

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

// Status is the lifecycle state of an invoice. It is a cached value; Evaluate derives the current one.
type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusSent          Status = "SENT"
	StatusPaid          Status = "PAID"
	StatusOverdue       Status = "OVERDUE"
	StatusPartiallyPaid Status = "PARTIALLY_PAID"
)

var Statuses = []Status{StatusDraft, StatusSent, StatusPartiallyPaid, StatusOverdue, StatusPaid}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Method is how a payment was made.
type Method string

const (
	MethodBankTransfer Method = "bank_transfer"
	MethodCreditCard   Method = "credit_card"
	MethodCash         Method = "cash"
	MethodOther        Method = "other"
)

var Methods = []Method{MethodBankTransfer, MethodCreditCard, MethodCash, MethodOther}

func (m Method) Valid() bool {
	return slices.Contains(Methods, m)
}

type LineItem struct {
	ID          uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   money.Money
}

// Total is quantity × unit price rounded to cents.
func (l LineItem) Total() money.Money {
	return money.LineTotal(l.Quantity, l.UnitPrice)
}

type TaxLine struct {
	Name   string
	Rate   decimal.Decimal // percent
	Amount money.Money
}

// PaymentRecord is one ledger entry. Records are never edited or removed.
type PaymentRecord struct {
	ID        uuid.UUID
	Amount    money.Money
	Date      time.Time // calendar date
	Method    Method
	Note      string
	CreatedAt time.Time
}

// ClientSnapshot is the client as it was when the invoice was saved.
type ClientSnapshot struct {
	ClientID uuid.UUID
	Name     string
	Email    string
	Address  address.Address
}

// CompanySnapshot is the issuing company as it was when the invoice was created.
type CompanySnapshot struct {
	Name      string
	Email     string
	Phone     string
	Address   address.Address
	TaxType   string
	TaxNumber string
	Logo      string
	Template  string
}

type Invoice struct {
	ID         uuid.UUID
	Number     string
	Client     ClientSnapshot
	Company    CompanySnapshot
	Lines      []LineItem
	Taxes      []TaxLine
	Status     Status
	IssueDate  time.Time
	DueDate    time.Time
	Subtotal   money.Money
	Total      money.Money // frozen at save time
	AmountPaid money.Money
	Payments   []PaymentRecord
	Notes      string
	Currency   string
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// BalanceDue is what remains to be paid. It is never negative.
func (inv *Invoice) BalanceDue() money.Money {
	return max(inv.Total-inv.AmountPaid, 0)
}

// Clone returns a deep copy.
func (inv *Invoice) Clone() *Invoice {
	c := *inv
	c.Lines = slices.Clone(inv.Lines)
	c.Taxes = slices.Clone(inv.Taxes)
	c.Payments = slices.Clone(inv.Payments)

	if inv.UpdatedAt != nil {
		c.UpdatedAt = new(*inv.UpdatedAt)
	}

	return &c
}

// Date returns the calendar day of t, as seen in t's location, at midnight UTC. Every calendar
// date is compared in this form.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from from to to; negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)) / (24 * time.Hour))
}
