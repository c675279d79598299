package client

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/address"
)

var ErrNotFound = errors.New("client not found")

// Client is a billable party. Invoices keep their own snapshot, so edits here never rewrite history.
type Client struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Address   address.Address
	CreatedAt time.Time
	UpdatedAt *time.Time
}
