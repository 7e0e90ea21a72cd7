package openai

import (
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voltline/swapvoice/pkg/ai"
)

// TTS synthesizes speech with OpenAI's speech endpoint.
type TTS struct {
	client *openai.Client
	model  string
	voice  string
}

// NewTTS creates an OpenAI TTS provider.
func NewTTS(cfg Config) *TTS {
	model := cfg.Model
	if model == "" {
		model = "tts-1"
	}
	voice := cfg.Voice
	if voice == "" {
		voice = "alloy"
	}
	return &TTS{client: openai.NewClient(cfg.APIKey), model: model, voice: voice}
}

// Synthesize converts text to audio bytes. The language tag is advisory;
// the OpenAI voices are multilingual.
func (t *TTS) Synthesize(ctx context.Context, text string, language string) ([]byte, error) {
	resp, err := t.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.SpeechModel(t.model),
		Input: text,
		Voice: openai.SpeechVoice(t.voice),
	})
	if err != nil {
		return nil, ai.NewRecoverableError(err, fmt.Sprintf("speech synthesis failed: %v", err))
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}
	return audio, nil
}
