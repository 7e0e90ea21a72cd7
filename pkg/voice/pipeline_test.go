package voice

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"

	asrfake "github.com/voltline/swapvoice/pkg/ai/asr/fake"
	ttsfake "github.com/voltline/swapvoice/pkg/ai/tts/fake"
	"github.com/voltline/swapvoice/pkg/dialog"
)

// stubEngine returns a canned response and records handled messages.
type stubEngine struct {
	response dialog.Response
	err      error
	messages []string
}

func (s *stubEngine) HandleMessage(ctx context.Context, conversationID, text, language string) (dialog.Response, error) {
	s.messages = append(s.messages, text)
	if s.err != nil {
		return dialog.Response{}, s.err
	}
	return s.response, nil
}

// speechAudio is a loud 440Hz tone, 200ms at 16kHz, 16-bit LE.
func speechAudio() []byte {
	const (
		sampleRate = 16000
		samples    = 3200
	)
	buf := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := 0.3 * math.Sin(2*math.Pi*440*float64(i)/sampleRate)
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(v*32767)))
	}
	return buf
}

// silenceAudio is 200ms of zero samples.
func silenceAudio() []byte {
	return make([]byte, 6400)
}

type pipelineEnv struct {
	pipeline *Pipeline
	asr      *asrfake.FakeASR
	tts      *ttsfake.FakeTTS
	engine   *stubEngine
}

func newPipelineEnv(t *testing.T, transcript string) *pipelineEnv {
	t.Helper()

	env := &pipelineEnv{
		asr:    asrfake.NewFakeASR(transcript),
		tts:    ttsfake.NewFakeTTS(),
		engine: &stubEngine{response: dialog.Response{Text: "here you go"}},
	}
	p, err := NewPipeline(Config{ASR: env.asr, TTS: env.tts, Engine: env.engine})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	env.pipeline = p
	return env
}

func TestNewPipeline_Validation(t *testing.T) {
	a := asrfake.NewFakeASR("hi")
	s := ttsfake.NewFakeTTS()
	e := &stubEngine{}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{ASR: a, TTS: s, Engine: e}, false},
		{"missing asr", Config{TTS: s, Engine: e}, true},
		{"missing tts", Config{ASR: a, Engine: e}, true},
		{"missing engine", Config{ASR: a, TTS: s}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPipeline(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPipeline() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPipeline_SuccessfulTurn(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "find nearest station")

	result, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", speechAudio(), "en-US")
	is.NoErr(err)
	is.True(result.HasSpeech)
	is.True(!result.ProactivePrompt)
	is.Equal(result.TranscribedText, "find nearest station")
	is.Equal(result.ResponseText, "here you go")
	is.Equal(result.Audio, []byte("tts:here you go"))
	is.Equal(env.engine.messages, []string{"find nearest station"})
}

func TestPipeline_SilenceNudgesWithoutTranscribing(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "should never be used")

	result, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", silenceAudio(), "en-US")
	is.NoErr(err)
	is.True(!result.HasSpeech)
	is.True(result.ProactivePrompt)
	is.Equal(result.ResponseText, defaultNudgePrompts["en"][0])
	is.Equal(result.Audio, nil)
	is.Equal(env.asr.Calls, 0)
	is.Equal(len(env.engine.messages), 0)
}

func TestPipeline_SilenceNudgesEscalateToFinalWarning(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	env := newPipelineEnv(t, "unused")

	var last *TurnResult
	for i := 0; i < 4; i++ {
		result, err := env.pipeline.ProcessVoiceInput(ctx, "c1", silenceAudio(), "en-US")
		is.NoErr(err)
		last = result
	}
	is.Equal(last.ResponseText, defaultFinalWarnings["en"])
}

func TestPipeline_UnintelligibleSpeechNudges(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "a")

	result, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", speechAudio(), "en-US")
	is.NoErr(err)
	is.True(result.HasSpeech)
	is.True(result.ProactivePrompt)
	is.Equal(result.ResponseText, defaultNudgePrompts["en"][0])
	is.Equal(len(env.engine.messages), 0)
}

func TestPipeline_ASRErrorNudges(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "unused")
	env.asr.Err = fmt.Errorf("whisper timeout")

	result, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", speechAudio(), "en-US")
	is.NoErr(err)
	is.True(result.HasSpeech)
	is.True(result.ProactivePrompt)
	is.Equal(result.ResponseText, defaultNudgePrompts["en"][0])
}

func TestPipeline_SuccessResetsNudgeCounter(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	env := newPipelineEnv(t, "find nearest station")

	for i := 0; i < 2; i++ {
		_, err := env.pipeline.ProcessVoiceInput(ctx, "c1", silenceAudio(), "en-US")
		is.NoErr(err)
	}

	_, err := env.pipeline.ProcessVoiceInput(ctx, "c1", speechAudio(), "en-US")
	is.NoErr(err)

	// The counter restarted, so the next silence gets the first prompt.
	result, err := env.pipeline.ProcessVoiceInput(ctx, "c1", silenceAudio(), "en-US")
	is.NoErr(err)
	is.Equal(result.ResponseText, defaultNudgePrompts["en"][0])
}

func TestPipeline_TTSErrorReturnsTextOnly(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "find nearest station")
	env.tts.Err = fmt.Errorf("synthesis backend down")

	result, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", speechAudio(), "en-US")
	is.NoErr(err)
	is.Equal(result.ResponseText, "here you go")
	is.Equal(result.Audio, nil)
}

func TestPipeline_EngineErrorPropagates(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "find nearest station")
	env.engine.err = fmt.Errorf("session store unavailable")

	_, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", speechAudio(), "en-US")
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "handle message"))
}

func TestPipeline_EscalationFlagsPassThrough(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "give me an agent")
	env.engine.response = dialog.Response{Text: "connecting you", NeedsEscalation: true, ShouldEnd: true}

	result, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", speechAudio(), "en-US")
	is.NoErr(err)
	is.True(result.NeedsEscalation)
	is.True(result.ShouldEnd)
}

func TestPipeline_HindiNudge(t *testing.T) {
	is := is.New(t)
	env := newPipelineEnv(t, "unused")

	result, err := env.pipeline.ProcessVoiceInput(context.Background(), "c1", silenceAudio(), "hi-IN")
	is.NoErr(err)
	is.Equal(result.ResponseText, defaultNudgePrompts["hi"][0])
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"hi", "hi"},
		{"hi-IN", "hi"},
		{"hinglish", "hi"},
		{"en", "en"},
		{"en-US", "en"},
		{"fr-FR", "en"},
		{"", "en"},
	}

	for _, tt := range tests {
		if got := NormalizeLanguage(tt.tag); got != tt.want {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
