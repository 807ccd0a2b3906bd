package journal

import (
	"context"
	"slices"
	"strings"
	"sync"

	"posjournal/internal/kv"
	"posjournal/internal/log"
)

// Categories is the ordered set of user-defined category names,
// persisted under kv.CustomCategoriesKey.
type Categories struct {
	mu      sync.Mutex
	backend kv.Backend
	logger  *log.Logger
	names   []string
}

// OpenCategories loads the set from backend, tolerating missing or corrupt
// payloads the same way Open does.
func OpenCategories(ctx context.Context, backend kv.Backend) *Categories {
	c := &Categories{
		backend: backend,
		logger:  log.FromContext(ctx).WithComponent(log.ComponentJournal),
	}
	c.names = Dedupe(loadSequence[string](ctx, backend, kv.CustomCategoriesKey, c.logger))
	return c
}

// Add inserts name (trimmed) and persists. It reports whether the set
// changed; blank or already present names are ignored.
func (c *Categories) Add(ctx context.Context, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Contains(c.names, name) {
		return false
	}
	c.names = append(c.names, name)
	saveSequence(ctx, c.backend, kv.CustomCategoriesKey, c.names, c.logger)
	return true
}

// All returns the names in insertion order.
func (c *Categories) All() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.names)
}

// Dedupe trims names, drops blanks and duplicates, and preserves order.
func Dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
