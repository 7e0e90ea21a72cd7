// Package asr defines the speech-to-text port consumed by the voice turn
// pipeline. Providers turn a captured audio chunk into a transcript.
package asr

import (
	"context"

	"github.com/voltline/swapvoice/pkg/ai"
)

// ASR-specific error variables for convenience
var (
	ErrRecoverable = ai.ErrRecoverable
	ErrFatal       = ai.ErrFatal
)

// ASR is the main interface for speech-to-text providers.
type ASR interface {
	// Transcribe converts raw audio bytes to text. The language tag is a
	// BCP 47-style hint such as "en-US" or "hi-IN".
	Transcribe(ctx context.Context, audio []byte, language string) (string, error)
}
