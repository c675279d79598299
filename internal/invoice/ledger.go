package invoice

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecordPayment appends p to the ledger of inv and returns the updated copy. inv is not modified.
// A zero payment date means today.
func RecordPayment(inv *Invoice, p PaymentRecord, now time.Time) (*Invoice, error) {
	balance := inv.BalanceDue()
	if p.Amount <= 0 || p.Amount > balance {
		return nil, &InvalidPaymentAmountError{Amount: p.Amount, BalanceDue: balance}
	}

	if !p.Method.Valid() {
		return nil, &ValidationError{Field: "method", Reason: "must be one of bank_transfer, credit_card, cash, other"}
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	if p.Date.IsZero() {
		p.Date = now
	}

	p.Date = Date(p.Date)
	p.Note = strings.TrimSpace(p.Note)

	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	out := inv.Clone()
	out.Payments = append(out.Payments, p)
	out.AmountPaid += p.Amount
	out.Status = Evaluate(out, now)

	return out, nil
}
