package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want Period
		ok   bool
	}{
		{"daily", Daily, true},
		{" Weekly ", Weekly, true},
		{"MONTH", Monthly, true},
		{"day", Daily, true},
		{"yearly", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: got %q, %v; want %q", i, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("case %d: expected ErrInvalidPeriod, got %v", i, err)
		}
	}
}

func TestPeriodTitle(t *testing.T) {
	if got := Weekly.Title(); got != "Weekly" {
		t.Fatalf("Title() = %q", got)
	}
	if Period("hourly").IsValid() {
		t.Fatalf("hourly should not be valid")
	}
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	d, err := ParseDate("2024-06-15", loc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Location() != loc || d.Hour() != 0 || d.Day() != 15 {
		t.Fatalf("unexpected parsed date %v", d)
	}

	for _, bad := range []string{"", "2024-6-15", "2024-02-30", "15/06/2024", "2024-06-15T10:00:00"} {
		if _, err := ParseDate(bad, loc); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("ParseDate(%q) expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestCalendarHelpers(t *testing.T) {
	// 2024-06-15 is a Saturday.
	d := time.Date(2024, 6, 15, 17, 30, 0, 0, time.UTC)
	if got := FormatDate(StartOfDay(d)); got != "2024-06-15" {
		t.Fatalf("StartOfDay = %s", got)
	}
	if got := FormatDate(StartOfWeek(d)); got != "2024-06-10" {
		t.Fatalf("StartOfWeek = %s", got)
	}
	monday := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(StartOfWeek(monday)); got != "2024-06-10" {
		t.Fatalf("StartOfWeek(monday) = %s", got)
	}
	sunday := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(StartOfWeek(sunday)); got != "2024-06-10" {
		t.Fatalf("StartOfWeek(sunday) = %s", got)
	}
	if got := FormatDate(AddDays(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), -1)); got != "2024-02-29" {
		t.Fatalf("AddDays across leap day = %s", got)
	}
	if got := FormatDate(StartOfMonth(d)); got != "2024-06-01" {
		t.Fatalf("StartOfMonth = %s", got)
	}
}

func TestTransactionHelpers(t *testing.T) {
	tx := Transaction{
		ID:          "tx-1",
		ProductName: "Latte",
		UnitPrice:   decimal.RequireFromString("3.50"),
		Quantity:    2,
		Date:        "2024-06-15",
		Total:       decimal.RequireFromString("7"),
	}
	if tx.CategoryOrDefault() != Uncategorized {
		t.Fatalf("expected default category")
	}
	if !tx.Consistent() {
		t.Fatalf("expected consistent total")
	}
	if _, ok := tx.Day(time.UTC); !ok {
		t.Fatalf("expected valid day")
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	tx.Total = decimal.RequireFromString("8")
	if tx.Consistent() {
		t.Fatalf("expected inconsistent total")
	}

	bads := []Transaction{
		{ProductName: "a", Quantity: 1, Date: "2024-01-01"},
		{ID: "x", Quantity: 1, Date: "2024-01-01"},
		{ID: "x", ProductName: "a", Quantity: 0, Date: "2024-01-01"},
		{ID: "x", ProductName: "a", Quantity: 1, Date: "2024-01-01", UnitPrice: decimal.NewFromInt(-1)},
		{ID: "x", ProductName: "a", Quantity: 1, Date: "soon"},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
