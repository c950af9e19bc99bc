package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

const displayPlaces = 2

type Totals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// FormattedTotals is the display form of Totals, both figures with two fractional digits.
type FormattedTotals struct {
	Subtotal string `json:"subtotal"`
	Total    string `json:"total"`
}

func (t Totals) Format() FormattedTotals {
	return FormattedTotals{
		Subtotal: FormatAmount(t.Subtotal),
		Total:    FormatAmount(t.Total),
	}
}

func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(displayPlaces)
}

// ParsePrice reads a currency formatted price such as "12,50 €" or "12.50".
// Anything that is not a digit, sign or separator is dropped and the first comma
// is taken as the decimal separator. Unparseable input yields zero.
func ParsePrice(text string) decimal.Decimal {
	d, ok := parseAmount(text)
	if !ok {
		return decimal.Zero
	}
	return d
}

// ParseCurrencyText is ParsePrice that also reports whether the text held a number.
func ParseCurrencyText(text string) (decimal.Decimal, bool) {
	return parseAmount(text)
}

func parseAmount(text string) (decimal.Decimal, bool) {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Replace(b.String(), ",", ".", 1)
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ComputeTotals sums price*quantity over items. The authoritative total, when present and
// parseable, replaces the computed figure as Total; Subtotal is always the computed sum.
func ComputeTotals(items []LineItem, authoritativeTotalText *string) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		lineTotal := ParsePrice(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	total := subtotal
	if authoritativeTotalText != nil {
		if parsed, ok := ParseCurrencyText(*authoritativeTotalText); ok {
			total = parsed
		}
	}

	return Totals{Subtotal: subtotal, Total: total}
}
