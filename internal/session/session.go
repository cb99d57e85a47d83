// Package session owns the client state of each signed-in browser session.
package session

import (
	"context"
	"sync"
	"time"

	"pawmart-web/internal/appointment"
	"pawmart-web/internal/cart"
	"pawmart-web/internal/checkout"
	"pawmart-web/internal/user"
)

// State is everything one session owns. It is created at login and torn
// down at logout.
type State struct {
	ID           string
	User         user.SessionUser
	Cart         *cart.Store
	Appointments *appointment.Collection
	CreatedAt    time.Time

	mu       sync.Mutex
	checkout *checkout.Orchestrator
	lastSeen time.Time
}

// Checkout returns the checkout started most recently, or nil.
func (s *State) Checkout() *checkout.Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout
}

// SetCheckout replaces the current checkout. A new checkout page mount
// always starts from a fresh orchestrator.
func (s *State) SetCheckout(o *checkout.Orchestrator) {
	s.mu.Lock()
	s.checkout = o
	s.mu.Unlock()
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *State) teardown() {
	s.Cart.Reset()
	s.Appointments.Reset()
	s.SetCheckout(nil)
}

type ctxKey struct{}

func WithState(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*State, bool) {
	s, ok := ctx.Value(ctxKey{}).(*State)
	return s, ok && s != nil
}
