package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuthEventType names an auth state change
type AuthEventType string

const (
	AuthEventInitialSession AuthEventType = "INITIAL_SESSION"
	AuthEventSignedIn       AuthEventType = "SIGNED_IN"
	AuthEventSignedOut      AuthEventType = "SIGNED_OUT"
)

// AuthEvent is delivered to every subscriber of the affected user
type AuthEvent struct {
	Type   AuthEventType `json:"type"`
	UserID uuid.UUID     `json:"user_id"`
	At     time.Time     `json:"at"`
}

const authEventBuffer = 8

type authSubscriber struct {
	ch chan AuthEvent
}

// AuthEvents fans auth state changes out to per-user subscribers
type AuthEvents struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*authSubscriber]struct{}
}

func NewAuthEvents() *AuthEvents {
	return &AuthEvents{subs: make(map[uuid.UUID]map[*authSubscriber]struct{})}
}

// Subscribe registers for the user's auth events. The returned func
// unsubscribes and closes the channel; calling it more than once is safe.
func (h *AuthEvents) Subscribe(userID uuid.UUID) (<-chan AuthEvent, func()) {
	sub := &authSubscriber{ch: make(chan AuthEvent, authEventBuffer)}

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*authSubscriber]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			if set := h.subs[userID]; set != nil {
				delete(set, sub)
				if len(set) == 0 {
					delete(h.subs, userID)
				}
			}
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// Publish delivers ev to the user's subscribers. Slow subscribers whose
// buffer is full miss the event.
func (h *AuthEvents) Publish(ev AuthEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[ev.UserID] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions for the user
func (h *AuthEvents) Subscribers(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
