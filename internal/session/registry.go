package session

import (
	"context"
	"sync"
	"time"

	"pawmart-web/internal/appointment"
	"pawmart-web/internal/cart"
	"pawmart-web/internal/logger"
	"pawmart-web/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Registry struct {
	backend cart.Backend
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*State
}

// NewRegistry builds a registry whose sessions mirror carts held by backend.
func NewRegistry(backend cart.Backend) *Registry {
	return &Registry{
		backend:  backend,
		now:      time.Now,
		sessions: make(map[string]*State),
	}
}

// Open starts a session for u and returns its state.
func (r *Registry) Open(u user.SessionUser) *State {
	now := r.now()
	s := &State{
		ID:           uuid.NewString(),
		User:         u,
		Cart:         cart.NewStore(r.backend),
		Appointments: appointment.NewCollection(),
		CreatedAt:    now,
		lastSeen:     now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	logger.L().Info("session opened", zap.String("session_id", s.ID), zap.String("user_id", u.ID))
	return s
}

// Get returns the live session with id and marks it as seen.
func (r *Registry) Get(id string) (*State, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.touch(r.now())
	return s, true
}

// Close tears a session down. It reports whether the session existed.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return false
	}

	s.teardown()
	logger.L().Info("session closed", zap.String("session_id", id))
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep closes sessions idle for longer than maxIdle and returns how many
// were closed.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	var stale []string
	r.mu.RLock()
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if r.Close(id) {
			closed++
		}
	}
	return closed
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(maxIdle); n > 0 {
				logger.L().Info("idle sessions closed", zap.Int("count", n))
			}
		}
	}
}
