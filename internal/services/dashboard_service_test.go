package services

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posjournal/internal/analytics"
	"posjournal/internal/cache"
	"posjournal/internal/core"
	"posjournal/internal/log"
)

func TestDashboardSummary(t *testing.T) {
	f := newFixture()
	ctx := testCtx()
	_, err := f.sales.Record(ctx, SaleInput{ProductID: "latte", Quantity: 2})
	require.NoError(t, err)
	_, err = f.sales.Record(ctx, SaleInput{ProductID: "scone", Quantity: 1, Date: "2024-06-12"})
	require.NoError(t, err)
	_, err = f.sales.Record(ctx, SaleInput{ProductID: "scone", Quantity: 1, Date: "2024-03-01"})
	require.NoError(t, err)

	dash := NewDashboardService(f.store, nil)
	s, err := dash.Summary(ctx, core.Weekly, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "14.5", s.TotalSales.String())
	assert.Equal(t, "11.5", s.PeriodSales.String())
	assert.Equal(t, 2, s.PeriodCount)
	assert.Len(t, s.Trend, 6)
	require.Len(t, s.TopItems, 2)
	assert.Equal(t, "Latte", s.TopItems[0].Name)
}

func TestDashboardSummary_InvalidPeriod(t *testing.T) {
	f := newFixture()
	_, err := NewDashboardService(f.store, nil).Summary(testCtx(), core.Period("hourly"), fixedNow)
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
}

func TestDashboardSummary_MemoizesPerVersionAndDay(t *testing.T) {
	f := newFixture()
	ctx := testCtx()
	lru := cache.NewLRUCache[analytics.Summary](16, time.Hour)
	dash := NewDashboardService(f.store, lru)

	_, err := f.sales.Record(ctx, SaleInput{ProductID: "latte", Quantity: 1})
	require.NoError(t, err)

	first, err := dash.Summary(ctx, core.Daily, fixedNow)
	require.NoError(t, err)
	// Same calendar day, later hour: served from the cache.
	again, err := dash.Summary(ctx, core.Daily, fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.PeriodSales.String(), again.PeriodSales.String())
	assert.Equal(t, uint64(1), lru.Stats().Hits)
	assert.Equal(t, 1, lru.Size())

	// A mutation bumps the journal version, so the next call recomputes.
	_, err = f.sales.Record(ctx, SaleInput{ProductID: "latte", Quantity: 1})
	require.NoError(t, err)
	updated, err := dash.Summary(ctx, core.Daily, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "8.5", updated.PeriodSales.String())
	assert.Equal(t, 2, lru.Size())

	// A different period or day is a different entry.
	_, err = dash.Summary(ctx, core.Monthly, fixedNow)
	require.NoError(t, err)
	_, err = dash.Summary(ctx, core.Daily, fixedNow.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 4, lru.Size())
}

func TestDashboardSummary_Concurrent(t *testing.T) {
	f := newFixture()
	ctx := testCtx()
	_, err := f.sales.Record(ctx, SaleInput{ProductID: "latte", Quantity: 3})
	require.NoError(t, err)

	dash := NewDashboardService(f.store, cache.NewLRUCache[analytics.Summary](4, time.Minute))

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := dash.Summary(ctx, core.Monthly, fixedNow)
			if err == nil {
				results[i] = s.PeriodSales.String()
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "12.75", r)
	}
}

func TestDashboardSummary_LogsSharedFlag(t *testing.T) {
	f := newFixture()
	var buf bytes.Buffer
	ctx := log.NewContext(context.Background(), log.New(log.Config{Level: slog.LevelDebug, Output: &buf}))

	_, err := NewDashboardService(f.store, nil).Summary(ctx, core.Daily, fixedNow)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "component=dashboard")
	assert.Contains(t, out, log.FieldShared+"=false")
}
