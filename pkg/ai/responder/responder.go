// Package responder defines the natural-language response generator port.
// Providers produce a context-aware phrasing for a dialogue branch; when
// no provider is configured or the provider errors, the dialogue engine
// falls back to its deterministic phrasebook.
package responder

import (
	"context"

	"github.com/voltline/swapvoice/pkg/ai"
)

// ErrUnavailable is returned when no generation backend is configured.
var ErrUnavailable = ai.ErrUnavailable

// Request carries the context for one generated phrasing.
type Request struct {
	UserMessage string
	Intent      string // dialogue branch label, e.g. "GREETING", "ESCALATE"
	Entities    map[string]string
	History     []string // most recent user utterances, oldest first
	Language    string   // dialogue language bucket: "en" or "hi"
}

// Responder is the main interface for response generation providers.
type Responder interface {
	// Generate returns a non-empty reply phrasing for the request, or an
	// error (ErrUnavailable when no backend is configured).
	Generate(ctx context.Context, req Request) (string, error)
}
