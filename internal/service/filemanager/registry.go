package filemanager

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	models "transcriptfolder/internal/domain/models/filemanager"
)

// ItemSource supplies the starting collection for a new session
type ItemSource func(actor models.Actor) []models.Item

// Registry holds one Session per actor. Sessions are created on first use,
// evicted least-recently-used beyond size and expired after ttl; eviction
// closes the session and ends its event streams.
type Registry struct {
	mu       sync.Mutex
	sessions *expirable.LRU[string, *Session]
	source   ItemSource
	deps     SessionDeps
	logger   *slog.Logger
}

// NewRegistry creates a registry. size <= 0 means unbounded, ttl <= 0 means no expiry.
func NewRegistry(size int, ttl time.Duration, source ItemSource, deps SessionDeps) *Registry {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	onEvict := func(actorID string, s *Session) {
		s.Close()
		sessionsActive.Dec()
		logger.Info("session closed", "actor_id", actorID)
	}
	return &Registry{
		sessions: expirable.NewLRU[string, *Session](size, onEvict, ttl),
		source:   source,
		deps:     deps,
		logger:   logger,
	}
}

// Session returns the actor's session, creating it from the item source if needed
func (r *Registry) Session(actor models.Actor) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions.Get(actor.ID); ok {
		return s, nil
	}

	var items []models.Item
	if r.source != nil {
		items = r.source(actor)
	}
	s, err := NewSession(actor, items, r.deps)
	if err != nil {
		return nil, fmt.Errorf("create session for %q: %w", actor.ID, err)
	}
	r.sessions.Add(actor.ID, s)
	sessionsActive.Inc()

	r.logger.Info("session opened", "actor_id", actor.ID, "item_count", len(items))
	return s, nil
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	return r.sessions.Len()
}

// Purge closes every session
func (r *Registry) Purge() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions.Purge()
}
