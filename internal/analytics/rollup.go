package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"posjournal/internal/core"
)

// RollupByProduct sums totals per product name, sorted by descending total.
// Ties keep first-seen order. Distinct product ids sharing a name are merged.
func RollupByProduct(txs []core.Transaction) []core.NamedTotal {
	out := rollup(txs, func(tx core.Transaction) string { return tx.ProductName })
	slices.SortStableFunc(out, func(a, b core.NamedTotal) int {
		return b.Total.Cmp(a.Total)
	})
	return out
}

// RollupByCategory sums totals per category in order of first occurrence.
// It is intentionally left unsorted. Empty categories count as Uncategorized.
func RollupByCategory(txs []core.Transaction) []core.NamedTotal {
	return rollup(txs, core.Transaction.CategoryOrDefault)
}

// TopN returns the first n entries of an already sorted rollup.
func TopN(rollup []core.NamedTotal, n int) []core.NamedTotal {
	n = min(max(n, 0), len(rollup))
	out := make([]core.NamedTotal, n)
	copy(out, rollup)
	return out
}

// CategoryShares attaches to each entry its percentage of whole.
// A zero whole gives every entry a zero share.
func CategoryShares(rollup []core.NamedTotal, whole decimal.Decimal) []core.CategoryShare {
	out := make([]core.CategoryShare, len(rollup))
	for i, r := range rollup {
		out[i] = core.CategoryShare{Name: r.Name, Total: r.Total, Share: core.Percent(r.Total, whole)}
	}
	return out
}

func rollup(txs []core.Transaction, key func(core.Transaction) string) []core.NamedTotal {
	index := make(map[string]int)
	out := make([]core.NamedTotal, 0)
	for _, tx := range txs {
		k := key(tx)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, core.NamedTotal{Name: k, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(tx.Total)
	}
	return out
}
