package journal

import (
	"bytes"
	"context"
	"encoding/json"

	"posjournal/internal/kv"
	"posjournal/internal/log"
)

// loadSequence reads key and decodes a JSON array. Missing keys, read
// failures and payloads that are not an array all yield an empty slice.
// Elements that do not decode into T are skipped one by one, so a single
// malformed record never hides the rest. Failures are logged, never returned.
func loadSequence[T any](ctx context.Context, backend kv.Backend, key string, logger *log.Logger) []T {
	raw, ok, err := backend.Read(ctx, key)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load from persistent store",
			log.NewFields().WithOperation(log.OpLoad).WithKey(key).WithError(err).ToSlice()...)
		return []T{}
	}
	if !ok || len(raw) == 0 {
		return []T{}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		logger.ErrorContext(ctx, "Discarding undecodable payload",
			log.NewFields().WithOperation(log.OpDecode).WithKey(key).WithError(err).ToSlice()...)
		return []T{}
	}

	items := make([]T, 0, len(elements))
	for i, element := range elements {
		if bytes.Equal(bytes.TrimSpace(element), []byte("null")) {
			logger.WarnContext(ctx, "Skipping null record",
				log.NewFields().WithOperation(log.OpDecode).WithKey(key).WithIndex(i).ToSlice()...)
			continue
		}
		var item T
		if err := json.Unmarshal(element, &item); err != nil {
			logger.WarnContext(ctx, "Skipping undecodable record",
				log.NewFields().WithOperation(log.OpDecode).WithKey(key).WithIndex(i).WithError(err).ToSlice()...)
			continue
		}
		items = append(items, item)
	}
	if skipped := len(elements) - len(items); skipped > 0 {
		logger.WarnContext(ctx, "Some records could not be decoded",
			log.NewFields().WithKey(key).WithCount(len(items)).WithSkipped(skipped).ToSlice()...)
	}
	return items
}

// saveSequence overwrites key with items encoded as a JSON array.
func saveSequence[T any](ctx context.Context, backend kv.Backend, key string, items []T, logger *log.Logger) bool {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to encode payload",
			log.NewFields().WithOperation(log.OpEncode).WithKey(key).WithError(err).ToSlice()...)
		return false
	}
	if err := backend.Write(ctx, key, raw); err != nil {
		logger.ErrorContext(ctx, "Failed to save to persistent store",
			log.NewFields().WithOperation(log.OpSave).WithKey(key).WithError(err).ToSlice()...)
		return false
	}
	return true
}
