package memory

import (
	"context"
	"sync"

	"posjournal/internal/kv"
)

// Store is an in-memory kv.Backend. Values are copied on the way in and out.
type Store struct {
	mu    sync.Mutex
	items map[string][]byte
	quota int // max total bytes, 0 means unlimited
}

func New() *Store {
	return &Store{items: make(map[string][]byte)}
}

// NewWithQuota returns a store that rejects writes once the sum of stored
// values would exceed maxBytes, like a browser's local storage quota.
func NewWithQuota(maxBytes int) *Store {
	s := New()
	s.quota = maxBytes
	return s
}

// Read implements kv.Backend
func (s *Store) Read(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Write implements kv.Backend
func (s *Store) Write(_ context.Context, key string, value []byte) error {
	if key == "" {
		return kv.ErrInvalidKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quota > 0 && s.sizeLocked()-len(s.items[key])+len(value) > s.quota {
		return kv.ErrQuotaExceeded
	}
	s.items[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) sizeLocked() int {
	n := 0
	for _, v := range s.items {
		n += len(v)
	}
	return n
}
