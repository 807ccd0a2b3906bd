package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// NamedTotal is an amount aggregated under a product or category name.
type NamedTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// CategoryShare is a category rollup entry with its share of the period total.
type CategoryShare struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
	Share decimal.Decimal `json:"share"` // percentage, 0-100
}

// TrendPoint is one bucket of a trend series. Start and End are inclusive
// calendar days at midnight.
type TrendPoint struct {
	Label string          `json:"label"`
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Total decimal.Decimal `json:"total"`
}
