package invoice

import "time"

// Evaluate derives the status inv should have on the given day. Rules apply in order:
// fully paid, partially paid, past due (never for drafts), then the stored status is kept.
// An OVERDUE invoice that is no longer past due, or a paid status without payments, falls back to SENT.
func Evaluate(inv *Invoice, today time.Time) Status {
	if inv.AmountPaid >= inv.Total && (inv.Total > 0 || inv.Status != StatusDraft) {
		return StatusPaid
	}

	if inv.AmountPaid > 0 {
		return StatusPartiallyPaid
	}

	if inv.Status == StatusDraft {
		return StatusDraft
	}

	if Date(inv.DueDate).Before(Date(today)) {
		return StatusOverdue
	}

	return StatusSent
}

// Refresh returns inv with its status re-evaluated. The returned invoice is a copy when the status changed.
func Refresh(inv *Invoice, today time.Time) (*Invoice, bool) {
	status := Evaluate(inv, today)
	if status == inv.Status {
		return inv, false
	}

	out := inv.Clone()
	out.Status = status

	return out, true
}

// MarkSent moves a draft to SENT and re-evaluates it, so a draft already past due becomes OVERDUE.
func MarkSent(inv *Invoice, today time.Time) (*Invoice, error) {
	if inv.Status != StatusDraft {
		return nil, &TransitionError{Action: "send", From: inv.Status}
	}

	out := inv.Clone()
	out.Status = StatusSent
	out.Status = Evaluate(out, today)

	return out, nil
}

// MarkPaid settles the invoice outside the ledger: AmountPaid is set to Total and no payment record is written.
// Payments recorded afterwards are measured against the overridden balance.
func MarkPaid(inv *Invoice) *Invoice {
	out := inv.Clone()
	out.AmountPaid = out.Total
	out.Status = StatusPaid

	return out
}
