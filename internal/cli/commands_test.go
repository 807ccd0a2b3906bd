package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posjournal/internal/catalog"
	"posjournal/internal/config"
	"posjournal/internal/core"
	"posjournal/internal/kv/memory"
	"posjournal/internal/log"
)

var fixedNow = time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

type harness struct {
	app     *App
	session *Session
	backend *memory.Store
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := testCtx()
	backend := memory.New()
	products := catalog.New([]core.Product{
		{ID: "latte", Name: "Latte", Category: "Coffee", Price: decimal.RequireFromString("4.25")},
		{ID: "scone", Name: "Scone", Category: "Bakery", Price: decimal.RequireFromString("3")},
	})
	app := NewApp(ctx, backend, products, AppOptions{
		Location:  time.UTC,
		CacheSize: 8,
		CacheTTL:  time.Minute,
		Clock:     func() time.Time { return fixedNow },
	})
	h := &harness{app: app, session: SessionFor(app), backend: backend, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	app.Out, app.Err = h.out, h.errOut
	return h
}

func testCtx() context.Context {
	return log.NewContext(context.Background(), log.Discard())
}

func (h *harness) run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	h.out.Reset()
	h.errOut.Reset()
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return cmd.Execute(testCtx(), fs)
}

func TestRecordAndList(t *testing.T) {
	h := newHarness(t)

	status := h.run(t, &recordCmd{session: h.session}, "-product", "latte", "-qty", "2")
	require.Equal(t, subcommands.ExitSuccess, status, h.errOut.String())
	assert.Contains(t, h.out.String(), "2 x Latte (Coffee) = $8.50 on 2024-06-15")

	status = h.run(t, &recordCmd{session: h.session}, "-product", "scone", "-date", "2024-05-01", "-custom", "Seasonal")
	require.Equal(t, subcommands.ExitSuccess, status, h.errOut.String())

	status = h.run(t, &listCmd{session: h.session}, "-raw")
	require.Equal(t, subcommands.ExitSuccess, status)
	out := h.out.String()
	assert.Contains(t, out, "| 2024-05-01 | Scone | Seasonal | 1 | $3.00 | $3.00 |")
	assert.Less(t, strings.Index(out, "Scone"), strings.Index(out, "Latte"), "newest first")

	status = h.run(t, &listCmd{session: h.session}, "-raw", "-period", "weekly")
	require.Equal(t, subcommands.ExitSuccess, status)
	assert.NotContains(t, h.out.String(), "Scone")
	assert.Contains(t, h.out.String(), "Latte")
}

func TestRecord_Errors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, &recordCmd{session: h.session}))

	status := h.run(t, &recordCmd{session: h.session}, "-product", "tea")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, h.errOut.String(), "unknown product")

	status = h.run(t, &recordCmd{session: h.session}, "-product", "latte", "-custom", " ")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, h.errOut.String(), "custom category is empty")
	assert.Empty(t, h.app.Store.All())
}

func TestRemove(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, &recordCmd{session: h.session}, "-product", "latte"))
	id := h.app.Store.All()[0].ID

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, &removeCmd{session: h.session}))

	status := h.run(t, &removeCmd{session: h.session}, id, "tx-missing")
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, h.out.String(), "Removed "+id)
	assert.Contains(t, h.errOut.String(), "No transaction tx-missing")
	assert.Empty(t, h.app.Store.All())
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, subcommands.ExitSuccess, h.run(t, &recordCmd{session: h.session}, "-product", "latte", "-qty", "2"))
	require.Equal(t, subcommands.ExitSuccess, h.run(t, &recordCmd{session: h.session}, "-product", "scone", "-date", "2024-01-20"))

	status := h.run(t, &dashboardCmd{session: h.session}, "-period", "monthly", "-raw")
	require.Equal(t, subcommands.ExitSuccess, status, h.errOut.String())
	assert.Contains(t, h.out.String(), "# Monthly sales dashboard")
	assert.Contains(t, h.out.String(), "| Total sales | $11.50 |")
	assert.Contains(t, h.out.String(), "| Jan 24 | $3.00 |")

	status = h.run(t, &dashboardCmd{session: h.session}, "-period", "daily", "-now", "2024-01-20", "-json")
	require.Equal(t, subcommands.ExitSuccess, status, h.errOut.String())
	var got struct {
		Period      string `json:"period"`
		Today       string `json:"today"`
		PeriodSales string `json:"periodSales"`
		Trend       []any  `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, "daily", got.Period)
	assert.Equal(t, "2024-01-20", got.Today)
	assert.Equal(t, "3", got.PeriodSales)
	assert.Len(t, got.Trend, 7)

	assert.Equal(t, subcommands.ExitUsageError, h.run(t, &dashboardCmd{session: h.session}, "-period", "hourly"))
	assert.Equal(t, subcommands.ExitFailure, h.run(t, &dashboardCmd{session: h.session}, "-now", "yesterday"))
}

func TestProductsAndCategories(t *testing.T) {
	h := newHarness(t)

	require.Equal(t, subcommands.ExitSuccess, h.run(t, &productsCmd{session: h.session}, "-raw"))
	assert.Contains(t, h.out.String(), "| latte | Latte | Coffee | $4.25 |")

	require.Equal(t, subcommands.ExitSuccess, h.run(t, &categoriesCmd{session: h.session}, "-add", "Merch"))
	assert.Equal(t, "# Categories\n\n- Coffee\n- Bakery\n- Merch\n", h.out.String())

	assert.Equal(t, subcommands.ExitFailure, h.run(t, &categoriesCmd{session: h.session}, "-add", " "))
}

func TestSessionOpenError(t *testing.T) {
	calls := 0
	s := NewSession(func(context.Context) (*App, error) {
		calls++
		return nil, errors.New("disk missing")
	})
	_, err := s.App(testCtx())
	assert.ErrorContains(t, err, "open journal: disk missing")
	_, err = s.App(testCtx())
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.NoError(t, s.Close())
}

func TestOpenApp(t *testing.T) {
	cfg := &config.Config{
		DataBackend:        "sqlite",
		SQLiteDBPath:       t.TempDir() + "/journal.db",
		LogLevel:           "info",
		Timezone:           "UTC",
		DashboardCacheSize: 4,
		DashboardCacheTTL:  time.Minute,
	}
	app, err := OpenApp(testCtx(), cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Positive(t, app.Catalog.Len())
	assert.Empty(t, app.Store.All())
	assert.Equal(t, time.UTC, app.Now().Location())
}
