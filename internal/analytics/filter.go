package analytics

import (
	"time"

	"posjournal/internal/core"
)

// FilterByPeriod returns the transactions dated inside the period window
// ending on now's calendar day, preserving input order.
//
//   - daily: the same calendar day as now
//   - weekly: [today - 7 days, today], both ends inclusive
//   - monthly: [today - 30 days, today], both ends inclusive
//
// Transactions with an unparseable date are excluded.
func FilterByPeriod(txs []core.Transaction, period core.Period, now time.Time) []core.Transaction {
	today := core.StartOfDay(now)
	window := strategyFor(period)

	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		day, ok := tx.Day(today.Location())
		if !ok {
			continue
		}
		if window.contains(day, today) {
			out = append(out, tx)
		}
	}
	return out
}
