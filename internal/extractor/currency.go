package extractor

import (
	"strconv"
	"strings"
)

const currencySymbol = "₹"

// formatINR renders a numeric amount as a currency display string: symbol,
// thousands grouping, exactly two decimal places. 300000 → "₹300,000.00".
func formatINR(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var sb strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	return currencySymbol + sign + sb.String() + "." + fracPart
}
