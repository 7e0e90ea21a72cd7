// Package vad implements level-based voice activity detection over raw
// 16-bit PCM audio. It decides whether a captured chunk is worth sending
// to a transcription provider, erring toward false positives rather than
// dropping a real utterance.
package vad

import (
	"encoding/binary"
	"math"
)

// DefaultSilenceThreshold is the RMS level below which audio is treated
// as silence.
const DefaultSilenceThreshold = 0.01

// fallbackMinBytes is the minimum payload size for the undecodable-audio
// heuristic to assume speech.
const fallbackMinBytes = 100

// Result is the analysis of one audio buffer. Derived fresh per buffer,
// never persisted.
type Result struct {
	HasSpeech        bool
	AudioLevel       float64 // RMS of normalized samples, >= 0
	IsSilence        bool    // AudioLevel below the silence threshold
	ZeroCrossingRate float64 // fraction of adjacent-sample sign flips, >= 0
}

// Detector classifies audio buffers as speech or silence using RMS level,
// zero-crossing rate and dynamic range. Stateless and safe for concurrent use.
type Detector struct {
	silenceThreshold float64
}

// Option configures a Detector.
type Option func(*Detector)

// WithSilenceThreshold overrides the default RMS silence threshold.
func WithSilenceThreshold(threshold float64) Option {
	return func(d *Detector) { d.silenceThreshold = threshold }
}

// NewDetector creates a Detector with the default silence threshold.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{silenceThreshold: DefaultSilenceThreshold}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Analyze classifies audio as little-endian 16-bit signed PCM mono.
// sampleRate is informational only; the threshold math is rate-independent.
//
// Buffers shorter than one sample classify as silence with zero metrics.
// Buffers that do not decode as whole int16 samples (odd length) fall back
// to a size heuristic instead of failing: more than 100 bytes of payload is
// weak evidence of speech at a fixed low level.
func (d *Detector) Analyze(audio []byte, sampleRate int) Result {
	if len(audio) < 2 {
		return Result{IsSilence: true}
	}
	if len(audio)%2 != 0 {
		hasData := len(audio) > fallbackMinBytes
		return Result{
			HasSpeech:        hasData,
			AudioLevel:       fallbackLevel(hasData),
			IsSilence:        !hasData,
			ZeroCrossingRate: fallbackLevel(hasData),
		}
	}

	n := len(audio) / 2
	var (
		sumSquares    float64
		zeroCrossings int
		minSample     = 1.0
		maxSample     = -1.0
		prevNonNeg    bool
	)
	for i := 0; i < n; i++ {
		raw := int16(binary.LittleEndian.Uint16(audio[2*i:]))
		sample := float64(raw) / 32768.0

		sumSquares += sample * sample
		if sample < minSample {
			minSample = sample
		}
		if sample > maxSample {
			maxSample = sample
		}

		nonNeg := sample >= 0
		if i > 0 && nonNeg != prevNonNeg {
			zeroCrossings++
		}
		prevNonNeg = nonNeg
	}

	rms := math.Sqrt(sumSquares / float64(n))
	zcr := float64(zeroCrossings) / float64(n)
	hasVariation := maxSample-minSample > 0.01

	return Result{
		HasSpeech:        rms > d.silenceThreshold && zcr > 0.01 && hasVariation,
		AudioLevel:       rms,
		IsSilence:        rms < d.silenceThreshold,
		ZeroCrossingRate: zcr,
	}
}

// IsSpeechPresent reports whether the buffer contains usable speech.
func (d *Detector) IsSpeechPresent(audio []byte) bool {
	return d.Analyze(audio, 0).HasSpeech
}

func fallbackLevel(hasData bool) float64 {
	if hasData {
		return 0.05
	}
	return 0.0
}
