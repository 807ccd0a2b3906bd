// Package core provides the domain types of the sales journal and the
// money helpers shared by aggregation and display.
package core

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DisplayCurrency is the single fixed currency used for formatting.
const DisplayCurrency = money.USD

var hundred = decimal.NewFromInt(100)

// ParseAmount parses a non-negative decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators.
// Signs are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,5")  -> 12.5, nil
//	ParseAmount("-1")    -> 0, ErrInvalidPrice
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return decimal.Zero, ErrInvalidPrice
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

// LineTotal returns price * quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumTotals adds the stored totals of txs.
func SumTotals(txs []Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Total)
	}
	return sum
}

// Percent returns part as a percentage of whole. A zero whole yields 0.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// FormatCurrency renders an amount in the display currency, e.g. "$1,234.50".
// Amounts are rounded half away from zero to the currency's minor unit.
func FormatCurrency(amount decimal.Decimal) string {
	cur := money.GetCurrency(DisplayCurrency)
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, DisplayCurrency).Display()
}
