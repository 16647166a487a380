package store

import (
	"context"
	"errors"
	"sort"
)

// ErrNotFound is returned by KV.Get when nothing is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// KV is the durable key-value boundary. Values are opaque byte strings; the
// state layer stores one JSON array per collection key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Batcher is implemented by backends that can write several keys in one
// transaction.
type Batcher interface {
	PutBatch(ctx context.Context, values map[string][]byte) error
}

// PutAll writes every value, in one transaction when kv is a Batcher and in
// key order otherwise. It stops at the first failed write.
func PutAll(ctx context.Context, kv KV, values map[string][]byte) error {
	if len(values) == 0 {
		return nil
	}
	if b, ok := kv.(Batcher); ok {
		return b.PutBatch(ctx, values)
	}
	for _, key := range sortedKeys(values) {
		if err := kv.Put(ctx, key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(values map[string][]byte) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
