package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/engine"
)

const defaultSessionTTL = 30 * time.Minute

type session struct {
	engine   *engine.Engine
	lastSeen time.Time
}

// SessionRegistry tracks one search engine per client session. Sessions are
// created on demand, touched on every access, and dropped after sitting
// idle for the TTL.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	factory  func() *engine.Engine
	logger   *zap.Logger
	done     chan struct{}
	stopOnce sync.Once
}

// NewSessionRegistry creates a registry. factory builds the engine for each
// new session.
func NewSessionRegistry(ttl time.Duration, factory func() *engine.Engine, logger *zap.Logger) *SessionRegistry {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRegistry{
		sessions: make(map[string]*session),
		ttl:      ttl,
		factory:  factory,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start runs the expiry sweep until ctx is cancelled or Stop is called.
func (r *SessionRegistry) Start(ctx context.Context) {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.done:
				return
			case <-ticker.C:
				r.sweep()
			}
		}
	}()
}

// Stop halts the expiry sweep.
func (r *SessionRegistry) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// GetOrCreate returns the engine for id, creating a session when id is
// empty, unknown, or expired. The returned ID identifies the session the
// engine belongs to.
func (r *SessionRegistry) GetOrCreate(id string) (string, *engine.Engine) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != "" {
		if s, ok := r.sessions[id]; ok && !r.expiredLocked(s) {
			s.lastSeen = time.Now()
			return id, s.engine
		}
	}
	if id == "" {
		id = uuid.NewString()
	}
	s := &session{engine: r.factory(), lastSeen: time.Now()}
	r.sessions[id] = s
	r.logger.Debug("session created", zap.String("session_id", id))
	return id, s.engine
}

// Get returns the engine for an existing, unexpired session.
func (r *SessionRegistry) Get(id string) (*engine.Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	if r.expiredLocked(s) {
		delete(r.sessions, id)
		return nil, false
	}
	s.lastSeen = time.Now()
	return s.engine, true
}

// Remove drops a session.
func (r *SessionRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.sessions {
		if !r.expiredLocked(s) {
			n++
		}
	}
	return n
}

func (r *SessionRegistry) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if r.expiredLocked(s) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug("expired sessions removed", zap.Int("count", removed))
	}
}

func (r *SessionRegistry) expiredLocked(s *session) bool {
	return time.Since(s.lastSeen) > r.ttl
}
