package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"posjournal/internal/analytics"
	"posjournal/internal/backend"
	"posjournal/internal/cache"
	"posjournal/internal/catalog"
	"posjournal/internal/config"
	"posjournal/internal/journal"
	"posjournal/internal/kv"
	"posjournal/internal/log"
	"posjournal/internal/services"
)

// App holds everything a command needs.
type App struct {
	Store      *journal.Store
	Categories *journal.Categories
	Catalog    *catalog.Catalog
	Sales      *services.SalesService
	Dashboard  *services.DashboardService

	// Now returns the current time in the configured zone.
	Now func() time.Time
	Out io.Writer
	Err io.Writer

	cleanup backend.CleanupFunc
}

// AppOptions tunes NewApp.
type AppOptions struct {
	Location  *time.Location
	CacheSize int
	CacheTTL  time.Duration
	Clock     func() time.Time
}

// NewApp wires the journal, catalog and services over store.
func NewApp(ctx context.Context, store kv.Backend, products *catalog.Catalog, opts AppOptions) *App {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	now := func() time.Time { return clock().In(loc) }

	journalStore := journal.Open(ctx, store)
	categories := journal.OpenCategories(ctx, store)

	var summaries cache.Cache[analytics.Summary]
	if opts.CacheSize > 0 {
		summaries = cache.NewLRUCache[analytics.Summary](opts.CacheSize, opts.CacheTTL)
	}

	return &App{
		Store:      journalStore,
		Categories: categories,
		Catalog:    products,
		Sales:      services.NewSalesService(journalStore, categories, products, services.WithClock(now)),
		Dashboard:  services.NewDashboardService(journalStore, summaries),
		Now:        now,
		Out:        os.Stdout,
		Err:        os.Stderr,
	}
}

// OpenApp creates the configured backend, loads the catalog and wires the App.
func OpenApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := log.FromContext(ctx)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendConfig)
	if err != nil {
		return nil, err
	}

	products, err := catalog.Load(ctx, cfg.CatalogPath)
	if err != nil {
		result.Close()
		return nil, err
	}

	app := NewApp(ctx, result.Backend, products, AppOptions{
		Location:  cfg.Location(),
		CacheSize: cfg.DashboardCacheSize,
		CacheTTL:  cfg.DashboardCacheTTL,
	})
	app.cleanup = result.Cleanup
	return app, nil
}

// Close releases the backend.
func (a *App) Close() error {
	if a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}

// Session opens the App on first use, so commands such as help never touch
// storage.
type Session struct {
	open func(ctx context.Context) (*App, error)

	once sync.Once
	app  *App
	err  error
}

// NewSession returns a session that opens the App with open.
func NewSession(open func(ctx context.Context) (*App, error)) *Session {
	return &Session{open: open}
}

// SessionFor returns a session over an already built App.
func SessionFor(app *App) *Session {
	return NewSession(func(context.Context) (*App, error) { return app, nil })
}

// App returns the App, opening it on the first call.
func (s *Session) App(ctx context.Context) (*App, error) {
	s.once.Do(func() {
		s.app, s.err = s.open(ctx)
		if s.err != nil {
			s.err = fmt.Errorf("open journal: %w", s.err)
		}
	})
	return s.app, s.err
}

// Close closes the App if it was opened.
func (s *Session) Close() error {
	if s.app == nil {
		return nil
	}
	return s.app.Close()
}
