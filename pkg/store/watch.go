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

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventCollectionChanged indicates a single entity collection changed.
	EventCollectionChanged EventType = iota

	// EventStoreInvalidated signals a change that could not be attributed to
	// one collection; consumers should reload everything.
	EventStoreInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type       EventType
	Collection string
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel to avoid blocking the watcher. The channel is closed
// once ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	// The focus collection lives in its own subdirectory; make sure both
	// directories exist so they can be watched from the start.
	if err := os.MkdirAll(filepath.Join(p.basePath, "focus"), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	for _, dir := range []string{p.basePath, filepath.Join(p.basePath, "focus")} {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; a subsequent
				// reload picks up the changes anyway and a filesystem storm
				// must not block the watcher goroutine.
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
				throttle.Enqueue(Event{Type: EventStoreInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				collection := p.collectionForPath(evt.Name)
				if collection == "" {
					throttle.Enqueue(Event{Type: EventStoreInvalidated}, send)
					continue
				}
				throttle.Enqueue(Event{Type: EventCollectionChanged, Collection: collection}, send)
			}
		}
	}()

	return events, nil
}

// collectionForPath derives the logical collection key from a diskv path.
func (p *persistence) collectionForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	switch filepath.ToSlash(rel) {
	case keyGoals:
		return keyGoals
	case keyHabits:
		return keyHabits
	case keyJournal:
		return keyJournal
	case "focus/tasks":
		return keyFocus
	}
	return ""
}

// eventThrottle coalesces rapid change notifications so consumers see one
// event per burst of filesystem activity instead of one per write.
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
	t.pending[ev.Type][ev.Collection] = struct{}{}

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

	if collections, ok := pending[EventStoreInvalidated]; ok && len(collections) > 0 {
		send(Event{Type: EventStoreInvalidated})
		return
	}
	for collection := range pending[EventCollectionChanged] {
		send(Event{Type: EventCollectionChanged, Collection: collection})
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
