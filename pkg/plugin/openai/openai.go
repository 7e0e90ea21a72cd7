// Package openai provides OpenAI-backed collaborator providers: GPT NLU,
// Whisper ASR, speech-endpoint TTS and the natural-response generator.
// Every provider degrades rather than fails: the NLU falls back to
// keyword analysis and the responder reports unavailable so the dialogue
// engine uses its phrasebook.
package openai

import (
	"fmt"
	"os"

	"github.com/voltline/swapvoice/pkg/plugin"
)

// Config holds shared configuration for the OpenAI providers.
type Config struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model,omitempty"`
	Voice  string `json:"voice,omitempty"`
}

func configFrom(cfg map[string]any) (Config, error) {
	out := Config{}
	if key, ok := cfg["api_key"].(string); ok {
		out.APIKey = key
	} else {
		out.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if out.APIKey == "" {
		return Config{}, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY or provide api_key in config)")
	}
	if model, ok := cfg["model"].(string); ok {
		out.Model = model
	}
	if voice, ok := cfg["voice"].(string); ok {
		out.Voice = voice
	}
	return out, nil
}

func init() {
	plugin.Register(plugin.KindNLU, "openai", func(cfg map[string]any) (any, error) {
		c, err := configFrom(cfg)
		if err != nil {
			return nil, err
		}
		return NewNLU(c), nil
	})
	plugin.Register(plugin.KindASR, "openai", func(cfg map[string]any) (any, error) {
		c, err := configFrom(cfg)
		if err != nil {
			return nil, err
		}
		return NewWhisperASR(c), nil
	})
	plugin.Register(plugin.KindTTS, "openai", func(cfg map[string]any) (any, error) {
		c, err := configFrom(cfg)
		if err != nil {
			return nil, err
		}
		return NewTTS(c), nil
	})
	plugin.Register(plugin.KindResponder, "openai", func(cfg map[string]any) (any, error) {
		c, err := configFrom(cfg)
		if err != nil {
			return nil, err
		}
		return NewResponder(c), nil
	})
}
