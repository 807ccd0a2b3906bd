package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Uncategorized is the category used when a transaction or product has none.
const Uncategorized = "Uncategorized"

// DateFormat is the ISO calendar date layout used for transaction dates.
const DateFormat = "2006-01-02"

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
)

type (
	// Period selects the dashboard window.
	Period string

	// Transaction is one recorded sale. It is never mutated after creation.
	Transaction struct {
		ID          string          `json:"id"`
		ProductID   string          `json:"productId"`
		ProductName string          `json:"productName"`
		Category    string          `json:"category"`
		UnitPrice   decimal.Decimal `json:"unitPrice"`
		Quantity    int             `json:"quantity"`
		Date        string          `json:"date"` // YYYY-MM-DD, no time of day
		Total       decimal.Decimal `json:"total"`
	}

	// Product is a catalog entry, immutable for the session.
	Product struct {
		ID          string          `json:"id"`
		Name        string          `json:"name"`
		Category    string          `json:"category"`
		Price       decimal.Decimal `json:"price"`
		Description string          `json:"description"`
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrEmptyProduct    = errors.New("empty product name")
	ErrEmptyID         = errors.New("empty transaction id")
)

// Periods returns the supported periods in display order.
func Periods() []Period {
	return []Period{Daily, Weekly, Monthly}
}

// ParsePeriod parses a period name. It accepts "daily", "weekly", "monthly"
// and their singular nouns, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	}
	return "", fmt.Errorf("%w %q: must be one of %v", ErrInvalidPeriod, s, Periods())
}

// IsValid reports whether p is one of the supported periods.
func (p Period) IsValid() bool {
	switch p {
	case Daily, Weekly, Monthly:
		return true
	default:
		return false
	}
}

func (p Period) String() string { return string(p) }

// Title returns the capitalized period name ("Weekly").
func (p Period) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: want format %s", ErrInvalidDate, s, DateFormat)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves a midnight by n calendar days. Unlike t.Add it is not
// affected by daylight saving transitions.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the ISO week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	diff := (int(t.Weekday()) + 6) % 7
	return AddDays(t, -diff)
}

// StartOfMonth returns the first day of t's month, at midnight.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// Day returns the sale date at midnight in loc. ok is false when the stored
// date is not a valid YYYY-MM-DD string.
func (t Transaction) Day(loc *time.Location) (day time.Time, ok bool) {
	day, err := ParseDate(t.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// CategoryOrDefault returns the category, or Uncategorized when empty.
func (t Transaction) CategoryOrDefault() string {
	if strings.TrimSpace(t.Category) == "" {
		return Uncategorized
	}
	return t.Category
}

// Consistent reports whether Total equals UnitPrice * Quantity.
// Aggregations never call it: the stored total is authoritative.
func (t Transaction) Consistent() bool {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity))).Equal(t.Total)
}

// Validate checks the fields every stored transaction must carry.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.ProductName) == "" {
		return ErrEmptyProduct
	}
	if t.Quantity < 1 {
		return ErrInvalidQuantity
	}
	if t.UnitPrice.IsNegative() || t.Total.IsNegative() {
		return ErrInvalidPrice
	}
	if _, err := ParseDate(t.Date, time.UTC); err != nil {
		return err
	}
	return nil
}
