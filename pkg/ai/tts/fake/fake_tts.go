// Package fake provides a deterministic TTS implementation for testing.
package fake

import (
	"context"
	"sync"
)

// FakeTTS echoes the text back as audio bytes, prefixed so tests can tell
// synthesized output from real audio.
type FakeTTS struct {
	mu  sync.Mutex
	Err error

	// Calls records every synthesized text in order.
	Calls []string
}

// NewFakeTTS creates a new fake TTS provider.
func NewFakeTTS() *FakeTTS {
	return &FakeTTS{}
}

// Synthesize returns "tts:" + text as bytes.
func (f *FakeTTS) Synthesize(ctx context.Context, text string, language string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, text)
	if f.Err != nil {
		return nil, f.Err
	}
	return []byte("tts:" + text), nil
}
