package update_option_order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOrders_Valid(t *testing.T) {
	err := validateOrders([]OptionOrder{
		{OptionID: 30, PreferredOrder: 2},
		{OptionID: 10, PreferredOrder: 0},
		{OptionID: 20, PreferredOrder: 1},
	})
	assert.NoError(t, err)
}

func TestValidateOrders_Duplicate(t *testing.T) {
	err := validateOrders([]OptionOrder{
		{OptionID: 10, PreferredOrder: 0},
		{OptionID: 20, PreferredOrder: 0},
	})
	require.Error(t, err)

	var verr *OrderValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t,
		"Reservation Unit Option 10 has duplicate 'preferred_order' 0 with these Reservation Unit Options: 20",
		verr.Message)
}

func TestValidateOrders_DuplicateSeveral(t *testing.T) {
	err := validateOrders([]OptionOrder{
		{OptionID: 30, PreferredOrder: 1},
		{OptionID: 10, PreferredOrder: 1},
		{OptionID: 20, PreferredOrder: 1},
	})
	require.Error(t, err)

	var verr *OrderValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t,
		"Reservation Unit Option 10 has duplicate 'preferred_order' 1 with these Reservation Unit Options: 20, 30",
		verr.Message)
}

func TestValidateOrders_Gap(t *testing.T) {
	err := validateOrders([]OptionOrder{
		{OptionID: 10, PreferredOrder: 0},
		{OptionID: 20, PreferredOrder: 2},
	})
	require.Error(t, err)

	var verr *OrderValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t,
		"Reservation Unit Option 20 has 'preferred_order' 2, expected 1",
		verr.Message)
}
