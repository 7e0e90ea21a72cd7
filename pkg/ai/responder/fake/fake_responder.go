// Package fake provides a scriptable responder implementation for testing.
package fake

import (
	"context"
	"sync"

	"github.com/voltline/swapvoice/pkg/ai/responder"
)

// FakeResponder returns a fixed reply, or ErrUnavailable when Unavailable
// is set, which exercises the engine's phrasebook fallback path.
type FakeResponder struct {
	mu          sync.Mutex
	Reply       string
	Unavailable bool

	// Requests records every generation request in order.
	Requests []responder.Request
}

// NewFakeResponder creates a fake responder that reports unavailable,
// matching a deployment with no generation backend configured.
func NewFakeResponder() *FakeResponder {
	return &FakeResponder{Unavailable: true}
}

// NewFakeResponderWithReply creates a fake responder returning reply.
func NewFakeResponderWithReply(reply string) *FakeResponder {
	return &FakeResponder{Reply: reply}
}

// Generate returns the configured reply or ErrUnavailable.
func (f *FakeResponder) Generate(ctx context.Context, req responder.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Requests = append(f.Requests, req)
	if f.Unavailable {
		return "", responder.ErrUnavailable
	}
	return f.Reply, nil
}
