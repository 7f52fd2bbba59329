package advisor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Marker the model is instructed to emit: "NEW SAVINGS TARGET: $1,250.00".
// The amount uses standard thousands separators and optional two-digit cents.
var targetMarkerPattern = regexp.MustCompile(`NEW SAVINGS TARGET:\s*\$([\d,]+(?:\.\d{2})?)`)

// Any dollar amount with comma-grouped thousands and optional cents, used for
// display emphasis only.
var dollarAmountPattern = regexp.MustCompile(`\$\d{1,3}(?:,\d{3})*(?:\.\d{2})?`)

// ExtractSavingsTarget searches the model response for the recommendation
// marker and returns the parsed dollar amount. A missing marker or a
// malformed number after it yields (0, false); model phrasing drift is never
// an error.
func ExtractSavingsTarget(response string) (float64, bool) {
	match := targetMarkerPattern.FindStringSubmatch(response)
	if match == nil {
		return 0, false
	}
	amount, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// HighlightAmounts wraps every dollar amount in the response in markdown bold
// markers for rendered output. It has no effect on extraction.
func HighlightAmounts(response string) string {
	return dollarAmountPattern.ReplaceAllStringFunc(response, func(match string) string {
		return "**" + match + "**"
	})
}

// FormatDollars renders an amount as "$1,234.56" with comma-grouped
// thousands, matching the format the prompts promise the model.
func FormatDollars(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteString(",")
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteString(",")
		}
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return sign + "$" + b.String() + fracPart
}
