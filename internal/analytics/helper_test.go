package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"posjournal/internal/core"
)

func sale(name, category, date, total string) core.Transaction {
	return core.Transaction{
		ID:          name + "-" + date,
		ProductID:   name,
		ProductName: name,
		Category:    category,
		UnitPrice:   decimal.RequireFromString(total),
		Quantity:    1,
		Date:        date,
		Total:       decimal.RequireFromString(total),
	}
}

func at(date string) time.Time {
	d, err := core.ParseDate(date, time.UTC)
	if err != nil {
		panic(err)
	}
	return d.Add(10 * time.Hour)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func dates(txs []core.Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Date
	}
	return out
}
