// Package services wires the journal, catalog and analytics into the
// operations exposed to the command line.
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"posjournal/internal/analytics"
	"posjournal/internal/cache"
	"posjournal/internal/core"
	"posjournal/internal/journal"
	"posjournal/internal/log"
)

// DashboardService computes dashboard summaries and memoizes them per
// journal version, period and calendar day.
type DashboardService struct {
	store *journal.Store
	cache cache.Cache[analytics.Summary]
	group singleflight.Group
}

// NewDashboardService returns a service backed by c. A nil cache disables
// memoization.
func NewDashboardService(store *journal.Store, c cache.Cache[analytics.Summary]) *DashboardService {
	return &DashboardService{store: store, cache: c}
}

// Summary returns the dashboard for period as of now. The returned slices
// may be shared with other callers and must not be modified.
func (s *DashboardService) Summary(ctx context.Context, period core.Period, now time.Time) (analytics.Summary, error) {
	if !period.IsValid() {
		return analytics.Summary{}, fmt.Errorf("%w %q", core.ErrInvalidPeriod, period)
	}
	logger := log.FromContext(ctx).WithComponent(log.ComponentDashboard)

	items, version := s.store.Snapshot()
	key := cacheKey(version, period, now)
	if s.cache != nil {
		if summary, ok := s.cache.Get(key); ok {
			logger.DebugContext(ctx, "Dashboard served from cache", log.FieldPeriod, period, log.FieldCacheHit, true)
			return summary, nil
		}
	}

	v, _, shared := s.group.Do(key, func() (any, error) {
		summary := analytics.Summarize(items, period, now)
		if s.cache != nil {
			s.cache.Set(key, summary)
		}
		return summary, nil
	})
	logger.DebugContext(ctx, "Dashboard computed",
		log.FieldPeriod, period, log.FieldDay, core.FormatDate(now), log.FieldCount, len(items), log.FieldShared, shared)
	return v.(analytics.Summary), nil
}

func cacheKey(version uint64, period core.Period, now time.Time) string {
	return fmt.Sprintf("%d|%s|%s|%s", version, period, core.FormatDate(now), now.Location())
}
