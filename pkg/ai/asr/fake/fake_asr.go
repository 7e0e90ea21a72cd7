// Package fake provides a scriptable ASR implementation for testing.
package fake

import (
	"context"
	"sync"
)

// FakeASR returns queued transcripts in order, then a fixed default.
type FakeASR struct {
	mu      sync.Mutex
	queue   []string
	Default string
	Err     error

	// Calls counts Transcribe invocations.
	Calls int
}

// NewFakeASR creates a fake ASR with the given default transcript.
func NewFakeASR(transcript string) *FakeASR {
	return &FakeASR{Default: transcript}
}

// Enqueue appends transcripts returned by subsequent Transcribe calls.
func (f *FakeASR) Enqueue(transcripts ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, transcripts...)
}

// Transcribe pops the next queued transcript, or returns the default.
func (f *FakeASR) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls++
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.queue) > 0 {
		t := f.queue[0]
		f.queue = f.queue[1:]
		return t, nil
	}
	return f.Default, nil
}
