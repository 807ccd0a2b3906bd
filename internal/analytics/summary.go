package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"posjournal/internal/core"
)

const (
	// TopItemsLimit is the length of the "top selling items" list.
	TopItemsLimit = 5
	// TopBarsLimit is the number of products shown in the bar chart.
	TopBarsLimit = 6
)

// Summary holds every derived value shown on the dashboard for one period.
type Summary struct {
	Period         core.Period          `json:"period"`
	Today          string               `json:"today"`
	TotalSales     decimal.Decimal      `json:"totalSales"` // all time
	PeriodSales    decimal.Decimal      `json:"periodSales"`
	PeriodCount    int                  `json:"periodCount"`
	ActiveProducts int                  `json:"activeProducts"`
	Trend          []core.TrendPoint    `json:"trend"`
	ByProduct      []core.NamedTotal    `json:"byProduct"`
	ByCategory     []core.CategoryShare `json:"byCategory"`
	TopItems       []core.NamedTotal    `json:"topItems"`
	TopBars        []core.NamedTotal    `json:"topBars"`
}

// Summarize computes the dashboard for period as seen on now's calendar day.
// The trend covers the whole journal; rollups cover the period only.
func Summarize(all []core.Transaction, period core.Period, now time.Time) Summary {
	inPeriod := FilterByPeriod(all, period, now)
	periodSales := core.SumTotals(inPeriod)
	byProduct := RollupByProduct(inPeriod)

	return Summary{
		Period:         period,
		Today:          core.FormatDate(now),
		TotalSales:     core.SumTotals(all),
		PeriodSales:    periodSales,
		PeriodCount:    len(inPeriod),
		ActiveProducts: len(byProduct),
		Trend:          BuildTrend(all, period, now),
		ByProduct:      byProduct,
		ByCategory:     CategoryShares(RollupByCategory(inPeriod), periodSales),
		TopItems:       TopN(byProduct, TopItemsLimit),
		TopBars:        TopN(byProduct, TopBarsLimit),
	}
}
