package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"posjournal/internal/catalog"
	"posjournal/internal/core"
	"posjournal/internal/journal"
	"posjournal/internal/kv/memory"
	"posjournal/internal/log"
)

var fixedNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func testCtx() context.Context {
	return log.NewContext(context.Background(), log.Discard())
}

func testCatalog() *catalog.Catalog {
	return catalog.New([]core.Product{
		{ID: "latte", Name: "Latte", Category: "Coffee", Price: decimal.RequireFromString("4.25")},
		{ID: "scone", Name: "Scone", Category: "Bakery", Price: decimal.RequireFromString("3")},
		{ID: "water", Name: "Water", Category: "", Price: decimal.RequireFromString("1.5")},
	})
}

type fixture struct {
	backend    *memory.Store
	store      *journal.Store
	categories *journal.Categories
	sales      *SalesService
}

func newFixture() fixture {
	ctx := testCtx()
	backend := memory.New()
	store := journal.Open(ctx, backend)
	categories := journal.OpenCategories(ctx, backend)
	seq := 0
	sales := NewSalesService(store, categories, testCatalog(),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return "tx-" + string(rune('a'+seq-1))
		}),
	)
	return fixture{backend: backend, store: store, categories: categories, sales: sales}
}
