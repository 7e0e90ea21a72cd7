// Package session holds per-conversation dialogue state and the store
// abstraction that owns it. The reference store is in-memory; a Redis
// store is provided for deployments that need sessions to survive a
// process restart.
package session

import (
	"context"
	"errors"

	"github.com/voltline/swapvoice/pkg/ai/nlu"
)

// ErrNotFound is returned by Store.Get for an unknown conversation id.
var ErrNotFound = errors.New("session not found")

// Status is the lifecycle state of a conversation. Escalated is terminal:
// a session never silently returns to Active.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusEscalated Status = "escalated"
)

// Session is the mutable state of one conversation. Slots accumulate
// monotonically across turns and RetryCount only ever increments.
type Session struct {
	ID            string            `json:"conversation_id"`
	DriverID      string            `json:"driver_id,omitempty"`
	CurrentIntent nlu.Intent        `json:"current_intent,omitempty"`
	Slots         map[string]string `json:"slots"`
	Status        Status            `json:"status"`
	History       []string          `json:"history"`
	RetryCount    int               `json:"retry_count"`
}

// New creates an Active session with empty slots and history.
func New(id string) *Session {
	return &Session{
		ID:     id,
		Slots:  map[string]string{},
		Status: StatusActive,
	}
}

// Clone returns a deep copy so callers can stage mutations and persist
// them in a single Put.
func (s *Session) Clone() *Session {
	out := *s
	out.Slots = make(map[string]string, len(s.Slots))
	for k, v := range s.Slots {
		out.Slots[k] = v
	}
	out.History = append([]string(nil), s.History...)
	return &out
}

// RecentHistory returns up to n of the most recent utterances, oldest first.
func (s *Session) RecentHistory(n int) []string {
	if len(s.History) <= n {
		return append([]string(nil), s.History...)
	}
	return append([]string(nil), s.History[len(s.History)-n:]...)
}

// Store owns all session state. Implementations must be safe for
// concurrent use across conversation ids; callers serialize operations on
// any single id.
type Store interface {
	// Get returns the session for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores the session, replacing any previous state for its id.
	Put(ctx context.Context, s *Session) error

	// Delete removes the session for id. Deleting an unknown id is not an
	// error; session expiry policy lives outside the dialogue core.
	Delete(ctx context.Context, id string) error
}
