package item

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

var ErrNotFound = errors.New("item not found")

// Item is a catalog entry used to pre-fill invoice lines. Changing it never affects saved invoices.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	UnitPrice   money.Money
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
