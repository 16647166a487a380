package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/riverline/pkg/store"
)

// Collection keys in the KV store.
const (
	KeyBoats      = "boats"
	KeySchedules  = "schedules"
	KeyLogs       = "logs"
	KeyStops      = "stops"
	KeyTombstones = "tombstones"
)

// Keys lists every collection key in persistence order.
func Keys() []string {
	return []string{KeyBoats, KeySchedules, KeyLogs, KeyStops, KeyTombstones}
}

// readCollection decodes the JSON array under key into out. A missing key
// returns (false, nil). A value that does not decode, or is JSON null, is
// logged and also reported as missing, so the caller falls back to its default.
// An empty array is a real, empty collection.
func readCollection[T any](ctx context.Context, kv store.KV, logger *slog.Logger, key string, out *[]T) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("state: read %s: %w", key, err)
	}
	var decoded []T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		logger.Warn("discarding unreadable collection", "key", key, "err", err)
		return false, nil
	}
	if decoded == nil {
		logger.Warn("discarding null collection", "key", key)
		return false, nil
	}
	*out = decoded
	return true, nil
}

func encodeCollection[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
