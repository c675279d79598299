package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/invoicer/internal/validation"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Price int64  `json:"unit_price" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, validation.Struct(sample{Name: "Acme"}))

	err := validation.Struct(sample{Email: "nope", Price: -1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalid))

	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)
	assert.Equal(t, validation.FieldError{Field: "name", Reason: "is required"}, verr.Fields[0])
	assert.Equal(t, "email", verr.Fields[1].Field)
	assert.Equal(t, "unit_price", verr.Fields[2].Field)
}
