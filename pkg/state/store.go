// Package state owns the in-memory collections of the application and mirrors
// every change to a store.KV.
package state

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"tableflip.dev/riverline/pkg/model"
	"tableflip.dev/riverline/pkg/seed"
	"tableflip.dev/riverline/pkg/store"
)

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Routes     []model.Route
	Stops      []model.Stop
	Boats      []model.Boat
	Schedules  []model.Schedule
	Logs       []model.ArrivalLog
	Tombstones []string
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Routes:     append([]model.Route(nil), s.Routes...),
		Stops:      model.CloneStops(s.Stops),
		Boats:      append([]model.Boat(nil), s.Boats...),
		Schedules:  append([]model.Schedule(nil), s.Schedules...),
		Logs:       append([]model.ArrivalLog(nil), s.Logs...),
		Tombstones: append([]string(nil), s.Tombstones...),
	}
}

// Store holds the collections. All mutation goes through Update.
type Store struct {
	mu     sync.RWMutex
	kv     store.KV
	seeds  seed.Seeds
	logger *slog.Logger
	data   Snapshot
}

// Load reads every collection from kv. Missing or unreadable values fall back
// to the seeds: seed boats and stops, empty schedules and logs. Persisted boats
// are merged with the seed boats by name. Only KV transport errors fail.
func Load(ctx context.Context, kv store.KV, seeds seed.Seeds, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Store{kv: kv, seeds: seeds, logger: logger}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every collection from the KV, replacing the in-memory state.
func (s *Store) Reload(ctx context.Context) error {
	data, err := s.read(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *Store) read(ctx context.Context) (Snapshot, error) {
	data := Snapshot{Routes: append([]model.Route(nil), s.seeds.Routes...)}

	if _, err := readCollection(ctx, s.kv, s.logger, KeyTombstones, &data.Tombstones); err != nil {
		return Snapshot{}, err
	}

	var boats []model.Boat
	if _, err := readCollection(ctx, s.kv, s.logger, KeyBoats, &boats); err != nil {
		return Snapshot{}, err
	}
	data.Boats, _ = seed.MergeBoats(boats, s.seeds.Boats, data.Tombstones)

	found, err := readCollection(ctx, s.kv, s.logger, KeyStops, &data.Stops)
	if err != nil {
		return Snapshot{}, err
	}
	if !found {
		data.Stops = model.CloneStops(s.seeds.Stops)
	}

	if _, err := readCollection(ctx, s.kv, s.logger, KeySchedules, &data.Schedules); err != nil {
		return Snapshot{}, err
	}
	if _, err := readCollection(ctx, s.kv, s.logger, KeyLogs, &data.Logs); err != nil {
		return Snapshot{}, err
	}
	return data, nil
}

// Seeds returns the seed catalog the store was loaded with.
func (s *Store) Seeds() seed.Seeds {
	return s.seeds
}

// Snapshot returns a deep copy of every collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.clone()
}

func (s *Store) Boats() []model.Boat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Boat(nil), s.data.Boats...)
}

func (s *Store) Schedules() []model.Schedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Schedule(nil), s.data.Schedules...)
}

func (s *Store) Logs() []model.ArrivalLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ArrivalLog(nil), s.data.Logs...)
}

func (s *Store) Stops() []model.Stop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneStops(s.data.Stops)
}

func (s *Store) Routes() []model.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Route(nil), s.data.Routes...)
}

// Tx is the working copy handed to an Update callback. Callbacks edit the
// slices freely; Routes edits are ignored.
type Tx struct {
	Snapshot
}

// Update runs fn against a working copy. When fn succeeds, every collection
// that differs from the current state is written to the KV and the copy then
// becomes the visible state. If fn or any write fails the visible state is
// unchanged. It returns the keys that were written.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{Snapshot: s.data.clone()}
	if err := fn(tx); err != nil {
		return nil, err
	}
	tx.Routes = s.data.Routes

	values, err := s.changed(tx.Snapshot)
	if err != nil {
		return nil, err
	}
	if err := store.PutAll(ctx, s.kv, values); err != nil {
		return nil, fmt.Errorf("state: persist: %w", err)
	}
	s.data = tx.Snapshot

	keys := make([]string, 0, len(values))
	for _, k := range Keys() {
		if _, ok := values[k]; ok {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		s.logger.Debug("state updated", "keys", keys)
	}
	return keys, nil
}

func (s *Store) changed(next Snapshot) (map[string][]byte, error) {
	values := make(map[string][]byte)
	prev := s.data
	for _, err := range []error{
		diff(values, KeyBoats, prev.Boats, next.Boats),
		diff(values, KeySchedules, prev.Schedules, next.Schedules),
		diff(values, KeyLogs, prev.Logs, next.Logs),
		diff(values, KeyStops, prev.Stops, next.Stops),
		diff(values, KeyTombstones, prev.Tombstones, next.Tombstones),
	} {
		if err != nil {
			return nil, err
		}
	}
	return values, nil
}

// diff encodes cur into values[key] when it differs from old. Nil and empty
// collections are equal.
func diff[T any](values map[string][]byte, key string, old, cur []T) error {
	if len(old) == 0 && len(cur) == 0 {
		return nil
	}
	if reflect.DeepEqual(old, cur) {
		return nil
	}
	b, err := encodeCollection(cur)
	if err != nil {
		return fmt.Errorf("state: encode %s: %w", key, err)
	}
	values[key] = b
	return nil
}
