// Package kv defines the persistent store boundary: a byte store addressed
// by key, read and overwritten whole.
package kv

import (
	"context"
	"errors"
)

// Storage keys used by the journal.
const (
	TransactionsKey     = "pos_transactions_v1"
	CustomCategoriesKey = "pos_custom_categories_v1"
)

var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrInvalidKey    = errors.New("invalid storage key")
)

// Backend is a persistent key-value byte store.
type Backend interface {
	// Read returns the bytes last written under key. ok is false when the
	// key has never been written.
	Read(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, value []byte) error
}

// ValidKey reports whether key is non-empty and made of [A-Za-z0-9._-].
// File-backed stores use the key as a file name.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
