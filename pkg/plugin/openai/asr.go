package openai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voltline/swapvoice/pkg/ai"
)

// WhisperASR transcribes audio with OpenAI's Whisper API.
type WhisperASR struct {
	client *openai.Client
	model  string
}

// NewWhisperASR creates a Whisper-backed ASR provider.
func NewWhisperASR(cfg Config) *WhisperASR {
	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperASR{client: openai.NewClient(cfg.APIKey), model: model}
}

// Transcribe sends the audio bytes to Whisper and returns the transcript.
// The language tag is reduced to its primary subtag ("hi-IN" -> "hi").
func (w *WhisperASR) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		Language: primarySubtag(language),
		Format:   openai.AudioResponseFormatJSON,
		Reader:   bytes.NewReader(audio),
		FilePath: "audio.wav",
	})
	if err != nil {
		return "", ai.NewRecoverableError(err, fmt.Sprintf("whisper transcription failed: %v", err))
	}
	return resp.Text, nil
}

func primarySubtag(tag string) string {
	if i := strings.IndexByte(tag, '-'); i > 0 {
		return tag[:i]
	}
	return tag
}
