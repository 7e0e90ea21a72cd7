// Package voice orchestrates one voice turn: voice-activity gating, then
// transcription, the dialogue engine, and speech synthesis. Silent or
// unintelligible turns are answered with proactive nudge prompts instead
// of being dropped.
package voice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/voltline/swapvoice/pkg/ai/asr"
	"github.com/voltline/swapvoice/pkg/ai/tts"
	"github.com/voltline/swapvoice/pkg/dialog"
	"github.com/voltline/swapvoice/pkg/vad"
)

// minTranscriptLen is the shortest trimmed transcript accepted as a real
// utterance.
const minTranscriptLen = 2

// Handler is the slice of the dialogue engine the pipeline depends on.
type Handler interface {
	HandleMessage(ctx context.Context, conversationID, text, language string) (dialog.Response, error)
}

// TurnResult is the outcome of one voice turn.
type TurnResult struct {
	TranscribedText string
	ResponseText    string
	Audio           []byte // nil for proactive prompts; caller uses a local voice
	HasSpeech       bool
	ShouldEnd       bool
	NeedsEscalation bool
	ProactivePrompt bool
}

// Config holds the collaborators for a Pipeline.
type Config struct {
	Detector *vad.Detector // optional; defaults to vad.NewDetector()
	ASR      asr.ASR
	TTS      tts.TTS
	Engine   Handler
	Logger   *slog.Logger // optional

	Nudge      *NudgePolicy // optional; defaults to the built-in prompts
	SampleRate int          // informational, passed to VAD; defaults to 16000
}

// Pipeline runs voice turns. Safe for concurrent use across conversations.
type Pipeline struct {
	detector   *vad.Detector
	asr        asr.ASR
	tts        tts.TTS
	engine     Handler
	logger     *slog.Logger
	nudge      *NudgePolicy
	sampleRate int
}

// NewPipeline creates a Pipeline from the given configuration.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if cfg.ASR == nil {
		return nil, fmt.Errorf("ASR is required")
	}
	if cfg.TTS == nil {
		return nil, fmt.Errorf("TTS is required")
	}
	if cfg.Engine == nil {
		return nil, fmt.Errorf("dialogue engine is required")
	}

	p := &Pipeline{
		detector:   cfg.Detector,
		asr:        cfg.ASR,
		tts:        cfg.TTS,
		engine:     cfg.Engine,
		logger:     cfg.Logger,
		nudge:      cfg.Nudge,
		sampleRate: cfg.SampleRate,
	}
	if p.detector == nil {
		p.detector = vad.NewDetector()
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.nudge == nil {
		p.nudge = NewNudgePolicy()
	}
	if p.sampleRate == 0 {
		p.sampleRate = 16000
	}
	return p, nil
}

// ProcessVoiceInput runs one voice turn: VAD gate, transcription, the
// dialogue engine, then synthesis of the reply. ASR and TTS failures
// degrade (nudge prompt, text-only reply) rather than failing the turn.
func (p *Pipeline) ProcessVoiceInput(ctx context.Context, conversationID string, audio []byte, language string) (*TurnResult, error) {
	bucket := NormalizeLanguage(language)

	analysis := p.detector.Analyze(audio, p.sampleRate)
	if !analysis.HasSpeech {
		prompt := p.nudge.Next(conversationID, bucket)
		p.logger.Debug("no speech detected, nudging",
			slog.String("conversation_id", conversationID),
			slog.Float64("audio_level", analysis.AudioLevel),
			slog.Int("no_response_count", p.nudge.Count(conversationID)))
		return &TurnResult{ResponseText: prompt, ProactivePrompt: true}, nil
	}

	text, err := p.asr.Transcribe(ctx, audio, language)
	if err != nil {
		p.logger.Warn("transcription failed, treating turn as unintelligible",
			slog.String("conversation_id", conversationID),
			slog.String("error", err.Error()))
		text = ""
	}
	if len(strings.TrimSpace(text)) < minTranscriptLen {
		// Speech was detected but produced no usable transcript. Recording
		// HasSpeech distinguishes unintelligible speech from silence.
		prompt := p.nudge.Next(conversationID, bucket)
		return &TurnResult{ResponseText: prompt, HasSpeech: true, ProactivePrompt: true}, nil
	}

	p.nudge.Reset(conversationID)

	response, err := p.engine.HandleMessage(ctx, conversationID, text, bucket)
	if err != nil {
		return nil, fmt.Errorf("handle message: %w", err)
	}

	replyAudio, err := p.tts.Synthesize(ctx, response.Text, language)
	if err != nil {
		p.logger.Warn("speech synthesis failed, returning text-only reply",
			slog.String("conversation_id", conversationID),
			slog.String("error", err.Error()))
		replyAudio = nil
	}

	return &TurnResult{
		TranscribedText: text,
		ResponseText:    response.Text,
		Audio:           replyAudio,
		HasSpeech:       true,
		ShouldEnd:       response.ShouldEnd,
		NeedsEscalation: response.NeedsEscalation,
	}, nil
}

// NormalizeLanguage maps a channel language tag to a dialogue-language
// bucket: anything starting with "hi" is Hindi, everything else English.
func NormalizeLanguage(tag string) string {
	if strings.HasPrefix(tag, "hi") {
		return "hi"
	}
	return "en"
}
