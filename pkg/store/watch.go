package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification.
type EventType int

const (
	// EventKeyChanged indicates the value stored under Key was written or
	// removed.
	EventKeyChanged EventType = iota

	// EventInvalidated signals that the watcher could not attribute a change
	// to a key and callers should reload everything.
	EventInvalidated
)

// Event is emitted by Watch when the diskv tree changes.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events for the diskv tree at basePath until ctx is
// cancelled. Callers should drain the returned channel; events are dropped
// rather than blocking the watcher. The channel is closed once ctx is done or
// the watcher fails.
func Watch(ctx context.Context, basePath string) (<-chan Event, error) {
	if basePath == "" {
		return nil, errors.New("store: watch base path unknown")
	}
	dir := filepath.Join(basePath, collectionsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", dir, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer func() { _ = watcher.Close() }()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; the next event triggers a reload anyway.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				key := keyForPath(basePath, evt.Name)
				if key == "" {
					continue
				}
				throttle.Enqueue(Event{Type: EventKeyChanged, Key: key}, send)
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces bursts of notifications so a consumer reloads once
// per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Key] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, keys := range pending {
		if eventType == EventInvalidated {
			send(Event{Type: EventInvalidated})
			continue
		}
		for key := range keys {
			send(Event{Type: eventType, Key: key})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
