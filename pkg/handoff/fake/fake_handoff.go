// Package fake provides a recording Handoff implementation for testing.
package fake

import (
	"context"
	"sync"

	"github.com/voltline/swapvoice/pkg/handoff"
)

// Escalation is one recorded escalation call.
type Escalation struct {
	ConversationID string
	Summary        handoff.Summary
}

// FakeHandoff records every escalation it receives.
type FakeHandoff struct {
	mu  sync.Mutex
	Err error

	Escalations []Escalation
}

// NewFakeHandoff creates a new recording handoff.
func NewFakeHandoff() *FakeHandoff {
	return &FakeHandoff{}
}

// Escalate records the call and reports success unless Err is set.
func (f *FakeHandoff) Escalate(ctx context.Context, conversationID string, summary handoff.Summary) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Escalations = append(f.Escalations, Escalation{ConversationID: conversationID, Summary: summary})
	if f.Err != nil {
		return false, f.Err
	}
	return true, nil
}

// Count returns the number of recorded escalations.
func (f *FakeHandoff) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Escalations)
}

// Last returns the most recent escalation and true, or false when none.
func (f *FakeHandoff) Last() (Escalation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Escalations) == 0 {
		return Escalation{}, false
	}
	return f.Escalations[len(f.Escalations)-1], true
}
