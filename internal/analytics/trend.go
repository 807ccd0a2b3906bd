package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"posjournal/internal/core"
)

// BuildTrend returns the fixed-length trend series for period, oldest first:
// 7 daily points, 6 ISO weeks (Monday to Sunday) or 6 calendar months, the
// last point covering now. Each point sums the stored totals of the
// transactions dated inside it; unparseable dates are skipped.
func BuildTrend(txs []core.Transaction, period core.Period, now time.Time) []core.TrendPoint {
	today := core.StartOfDay(now)
	buckets := strategyFor(period).buckets(today)

	points := make([]core.TrendPoint, len(buckets))
	for i, b := range buckets {
		points[i] = core.TrendPoint{Label: b.label, Start: b.start, End: b.end, Total: decimal.Zero}
	}

	for _, tx := range txs {
		day, ok := tx.Day(today.Location())
		if !ok {
			continue
		}
		// Buckets never overlap.
		for i, b := range buckets {
			if b.includes(day) {
				points[i].Total = points[i].Total.Add(tx.Total)
				break
			}
		}
	}
	return points
}
