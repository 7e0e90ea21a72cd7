// Package tts defines the text-to-speech port consumed by the voice turn
// pipeline. Providers turn reply text into synthesized audio bytes.
package tts

import (
	"context"

	"github.com/voltline/swapvoice/pkg/ai"
)

// TTS-specific error variables for convenience
var (
	ErrRecoverable = ai.ErrRecoverable
	ErrFatal       = ai.ErrFatal
)

// TTS is the main interface for text-to-speech providers.
type TTS interface {
	// Synthesize converts text to audio bytes in the provider's native
	// encoding. The language tag is a hint such as "en-US" or "hi-IN".
	Synthesize(ctx context.Context, text string, language string) ([]byte, error)
}
