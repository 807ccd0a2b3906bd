package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,5", "12.5", true},
		{"0", "0", true},
		{" 7 ", "7", true},
		{"", "", false},
		{"-1", "", false},
		{"+1", "", false},
		{"abc", "", false},
		{"1,234.50", "", false},
	}
	for i, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("case %d: got %s, %v; want %s", i, got, err, tc.want)
			}
			continue
		}
		if err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	cases := map[string]string{
		"0":       "$0.00",
		"7":       "$7.00",
		"12.5":    "$12.50",
		"1234.5":  "$1,234.50",
		"0.005":   "$0.01",
		"1999.99": "$1,999.99",
	}
	for in, want := range cases {
		if got := FormatCurrency(decimal.RequireFromString(in)); got != want {
			t.Fatalf("FormatCurrency(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decimal.NewFromInt(5), decimal.Zero); !got.IsZero() {
		t.Fatalf("expected 0 for zero whole, got %s", got)
	}
	if got := Percent(decimal.NewFromInt(1), decimal.NewFromInt(4)); !got.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected 25, got %s", got)
	}
}

func TestSumTotalsAndLineTotal(t *testing.T) {
	txs := []Transaction{
		{Total: decimal.RequireFromString("1.10")},
		{Total: decimal.RequireFromString("2.20")},
	}
	if got := SumTotals(txs); !got.Equal(decimal.RequireFromString("3.3")) {
		t.Fatalf("SumTotals = %s", got)
	}
	if got := SumTotals(nil); !got.IsZero() {
		t.Fatalf("SumTotals(nil) = %s", got)
	}
	if got := LineTotal(decimal.RequireFromString("2.25"), 4); !got.Equal(decimal.NewFromInt(9)) {
		t.Fatalf("LineTotal = %s", got)
	}
}
