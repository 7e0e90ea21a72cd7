// Package handoff defines the human-agent escalation port. The dialogue
// engine forwards a conversation summary here when it gives up on a
// conversation; delivery is the collaborator's concern.
package handoff

import "context"

// Summary captures everything a human agent needs to pick up a conversation.
type Summary struct {
	Reason  string            `json:"reason"`
	Intent  string            `json:"intent,omitempty"`
	Slots   map[string]string `json:"slots,omitempty"`
	History []string          `json:"history,omitempty"`
}

// Handoff is the main interface for agent-escalation providers.
type Handoff interface {
	// Escalate forwards the summary for the conversation to a human agent
	// queue and reports whether it was accepted.
	Escalate(ctx context.Context, conversationID string, summary Summary) (bool, error)
}
