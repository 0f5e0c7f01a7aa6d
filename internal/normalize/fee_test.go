package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntryFee_FreeWords(t *testing.T) {
	for _, input := range []string{"free", "FREE", "Free", "None", "n/a", "N/A"} {
		fee := ParseEntryFee(input)
		require.NotNil(t, fee.Amount, "input %q", input)
		assert.Zero(t, *fee.Amount, "input %q", input)
		assert.Empty(t, fee.Description, "input %q", input)
	}
}

func TestParseEntryFee_DollarAmount(t *testing.T) {
	fee := ParseEntryFee("$5")
	require.NotNil(t, fee.Amount)
	assert.Equal(t, 5.0, *fee.Amount)
}

func TestParseEntryFee_AmountWithCents(t *testing.T) {
	fee := ParseEntryFee("$7.50 per person")
	require.NotNil(t, fee.Amount)
	assert.Equal(t, 7.5, *fee.Amount)
}

func TestParseEntryFee_BareNumber(t *testing.T) {
	fee := ParseEntryFee("3")
	require.NotNil(t, fee.Amount)
	assert.Equal(t, 3.0, *fee.Amount)
}

func TestParseEntryFee_NoNumberKeepsText(t *testing.T) {
	fee := ParseEntryFee("donation")
	assert.Nil(t, fee.Amount)
	assert.Equal(t, "donation", fee.Description)
}

func TestParseEntryFee_Empty(t *testing.T) {
	fee := ParseEntryFee("  ")
	assert.Nil(t, fee.Amount)
	assert.Empty(t, fee.Description)
}
