package invoice

import (
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/invoicer/internal/money"
	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

var (
	ErrNotFound = errors.New("invoice not found")
	// ErrConflict is returned when the invoice changed since it was read.
	ErrConflict             = errors.New("invoice was modified concurrently")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrClientRequired       = errors.New("invoice requires a client")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	// ErrValidation matches every ValidationError as well as validation.Error values.
	ErrValidation = validation.ErrInvalid
)

// InvalidPaymentAmountError reports a rejected payment together with the balance the caller can re-prompt with.
type InvalidPaymentAmountError struct {
	Amount     money.Money
	BalanceDue money.Money
}

func (e *InvalidPaymentAmountError) Error() string {
	if e.Amount <= 0 {
		return fmt.Sprintf("invalid payment amount %s: must be greater than zero (balance due %s)", e.Amount, e.BalanceDue)
	}

	return fmt.Sprintf("invalid payment amount %s: exceeds balance due %s", e.Amount, e.BalanceDue)
}

func (e *InvalidPaymentAmountError) Is(target error) bool {
	return target == ErrInvalidPaymentAmount
}

// ValidationError is a rejected field on an invoice or payment.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransitionError names the status an action was refused from.
type TransitionError struct {
	Action string
	From   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s an invoice in status %s", e.Action, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
