package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSavingsTarget(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     float64
		found    bool
	}{
		{
			"plain amount",
			"Based on your finances.\nNEW SAVINGS TARGET: $1500",
			1500, true,
		},
		{
			"comma-grouped with cents",
			"NEW SAVINGS TARGET: $1,250.00 going forward.",
			1250, true,
		},
		{
			"large amount",
			"NEW SAVINGS TARGET: $12,345.67",
			12345.67, true,
		},
		{
			"no space after colon",
			"NEW SAVINGS TARGET:$800",
			800, true,
		},
		{
			"marker missing",
			"You should save more, roughly $1,500 per month.",
			0, false,
		},
		{
			"marker without dollar sign",
			"NEW SAVINGS TARGET: 1500",
			0, false,
		},
		{
			"first marker wins",
			"NEW SAVINGS TARGET: $900\nNEW SAVINGS TARGET: $2,000",
			900, true,
		},
		{
			"empty response",
			"",
			0, false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := ExtractSavingsTarget(tc.response)
			assert.Equal(t, tc.found, found)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestHighlightAmounts(t *testing.T) {
	in := "Save $1,250.00 monthly; you spent $300 on subscriptions."
	out := HighlightAmounts(in)
	assert.Equal(t, "Save **$1,250.00** monthly; you spent **$300** on subscriptions.", out)
}

func TestHighlightAmounts_NoAmounts(t *testing.T) {
	in := "No specific figures here."
	assert.Equal(t, in, HighlightAmounts(in))
}

func TestFormatDollars(t *testing.T) {
	assert.Equal(t, "$0.00", FormatDollars(0))
	assert.Equal(t, "$999.00", FormatDollars(999))
	assert.Equal(t, "$1,000.00", FormatDollars(1000))
	assert.Equal(t, "$1,234.56", FormatDollars(1234.56))
	assert.Equal(t, "$1,234,567.89", FormatDollars(1234567.89))
	assert.Equal(t, "-$1,500.00", FormatDollars(-1500))
}

func TestHighlight_RoundTripsWithFormat(t *testing.T) {
	// Amounts produced by FormatDollars must be matched by the highlighter.
	formatted := FormatDollars(12500)
	assert.Equal(t, "**"+formatted+"**", HighlightAmounts(formatted))
}
