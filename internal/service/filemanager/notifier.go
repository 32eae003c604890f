package filemanager

import (
	"context"
	"log/slog"
	"sync"

	models "transcriptfolder/internal/domain/models/filemanager"
	fmSvc "transcriptfolder/internal/domain/services/filemanager"
)

// LogNotifier writes every event to the structured log
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by logger
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the event at info level (view_changed at debug)
func (n *LogNotifier) Notify(ctx context.Context, event models.Event) {
	level := slog.LevelInfo
	if event.Type == models.EventViewChanged {
		level = slog.LevelDebug
	}
	n.logger.Log(ctx, level, event.Title(),
		"event", event.Type,
		"description", event.Description(),
		"item_id", event.ItemID,
		"revision", event.Revision,
	)
}

// Broadcaster fans events out to any number of channel subscribers.
// Delivery never blocks: a subscriber whose buffer is full misses the event.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan models.Event
	closed bool
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan models.Event)}
}

// Subscribe returns a channel of events and a cancel func that closes it.
// buffer <= 0 uses a default of 16.
func (b *Broadcaster) Subscribe(buffer int) (<-chan models.Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan models.Event, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Notify delivers event to every subscriber that has room
func (b *Broadcaster) Notify(_ context.Context, event models.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			eventsDropped.Inc()
		}
	}
}

// Len returns the number of live subscribers
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// MultiNotifier forwards each event to several notifiers in order
type MultiNotifier []fmSvc.Notifier

// Notify implements fmSvc.Notifier
func (m MultiNotifier) Notify(ctx context.Context, event models.Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, event)
		}
	}
}
