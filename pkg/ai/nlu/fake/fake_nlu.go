// Package fake provides a scriptable NLU implementation for testing.
package fake

import (
	"context"
	"sync"

	"github.com/voltline/swapvoice/pkg/ai/nlu"
)

// FakeNLU returns queued results in order, falling back to a default
// result once the queue is drained. Safe for concurrent use.
type FakeNLU struct {
	mu      sync.Mutex
	queue   []nlu.Result
	Default nlu.Result
	Err     error // returned from every Analyze call when set

	// Calls records every analyzed utterance in order.
	Calls []string
}

// NewFakeNLU creates a fake NLU with an Unknown/neutral default result.
func NewFakeNLU() *FakeNLU {
	return &FakeNLU{
		Default: nlu.Result{
			Intent:     nlu.IntentUnknown,
			Confidence: 0.9,
			Entities:   map[string]string{},
			Sentiment:  nlu.SentimentNeutral,
		},
	}
}

// Enqueue appends results to be returned by subsequent Analyze calls.
func (f *FakeNLU) Enqueue(results ...nlu.Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, results...)
}

// Analyze pops the next queued result, or returns the default.
func (f *FakeNLU) Analyze(ctx context.Context, text string) (nlu.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, text)
	if f.Err != nil {
		return nlu.Result{}, f.Err
	}
	if len(f.queue) > 0 {
		r := f.queue[0]
		f.queue = f.queue[1:]
		return r, nil
	}
	return f.Default, nil
}
