package currency

import (
	"fmt"
	"math"

	"github.com/NemoTravel/results/internal/money"
)

// Format renders a Money value for display: rounded amount with thousands
// separators followed by the currency code, e.g. "12 500 RUB".
func Format(m money.Money) string {
	rounded := math.Round(m.Amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addThousandsSeparator(intStr, " ")

	result := formatted + " " + m.Currency
	if negative {
		result = "-" + result
	}

	return result
}

// FormatDelta renders a price difference with an explicit sign, e.g. "+50 RUB".
// Zero deltas are rendered without a sign.
func FormatDelta(m money.Money) string {
	if math.Round(m.Amount) > 0 {
		return "+" + Format(m)
	}
	return Format(m)
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
