package validator_test

import (
	"testing"

	"storefront/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	ok := map[string]int{"1": 1, "100": 100, " 42 ": 42}
	for raw, want := range ok {
		got, err := validator.ParseQuantity(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"", "0", "-3", "101", "abc", "2.5", "1e2"} {
		_, err := validator.ParseQuantity(raw)
		assert.ErrorIs(t, err, validator.ErrInvalidQuantity, raw)
	}
}

func TestValidateAddToCart(t *testing.T) {
	f, err := validator.ValidateAddToCart("p1", "3")
	require.NoError(t, err)
	assert.True(t, f.Valid())
	assert.Equal(t, 3, f.Quantity)

	f, err = validator.ValidateAddToCart("", "3")
	assert.ErrorIs(t, err, validator.ErrProductRequired)
	assert.True(t, f.ProductInvalid)
	assert.False(t, f.QuantityInvalid)

	f, err = validator.ValidateAddToCart("p1", "500")
	assert.ErrorIs(t, err, validator.ErrInvalidQuantity)
	assert.False(t, f.ProductInvalid)
	assert.True(t, f.QuantityInvalid)
	assert.Equal(t, "500", f.RawQuantity)

	f, err = validator.ValidateAddToCart(" ", "x")
	assert.ErrorIs(t, err, validator.ErrProductRequired)
	assert.ErrorIs(t, err, validator.ErrInvalidQuantity)
	assert.False(t, f.Valid())
}
