package vad

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/matryer/is"
)

// sineWave builds little-endian int16 PCM of a sine tone.
func sineWave(freq float64, sampleRate, samples int, amplitude float64) []byte {
	out := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v*32767)))
	}
	return out
}

func TestAnalyze_Silence(t *testing.T) {
	is := is.New(t)
	d := NewDetector()

	// All-zero buffers of any decodable length are silence.
	for _, n := range []int{2, 64, 3200} {
		result := d.Analyze(make([]byte, n), 16000)
		is.True(!result.HasSpeech)
		is.True(result.IsSilence)
		is.Equal(result.AudioLevel, 0.0)
		is.Equal(result.ZeroCrossingRate, 0.0)
	}
}

func TestAnalyze_Speech(t *testing.T) {
	is := is.New(t)
	d := NewDetector()

	audio := sineWave(440, 16000, 1600, 0.25)
	result := d.Analyze(audio, 16000)

	is.True(result.HasSpeech)
	is.True(!result.IsSilence)
	is.True(result.AudioLevel > DefaultSilenceThreshold)
	is.True(result.ZeroCrossingRate > 0.01)
}

func TestAnalyze_ShortBuffer(t *testing.T) {
	is := is.New(t)
	d := NewDetector()

	for _, audio := range [][]byte{nil, {}, {0x7f}} {
		result := d.Analyze(audio, 16000)
		is.True(!result.HasSpeech)
		is.True(result.IsSilence)
		is.Equal(result.AudioLevel, 0.0)
	}
}

func TestAnalyze_UndecodableFallback(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		hasSpeech bool
	}{
		{"large odd buffer assumes speech", 3201, true},
		{"small odd buffer stays silent", 51, false},
	}

	d := NewDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)

			result := d.Analyze(make([]byte, tt.size), 16000)
			is.Equal(result.HasSpeech, tt.hasSpeech)
			is.Equal(result.IsSilence, !tt.hasSpeech)
			if tt.hasSpeech {
				is.Equal(result.AudioLevel, 0.05)
			} else {
				is.Equal(result.AudioLevel, 0.0)
			}
		})
	}
}

func TestAnalyze_QuietToneBelowThreshold(t *testing.T) {
	is := is.New(t)
	d := NewDetector()

	// Amplitude well below the RMS threshold: crossings exist but level
	// does not.
	audio := sineWave(440, 16000, 1600, 0.004)
	result := d.Analyze(audio, 16000)

	is.True(!result.HasSpeech)
	is.True(result.IsSilence)
	is.True(result.ZeroCrossingRate > 0.01)
}

func TestAnalyze_CustomThreshold(t *testing.T) {
	is := is.New(t)

	audio := sineWave(440, 16000, 1600, 0.05)
	strict := NewDetector(WithSilenceThreshold(0.2))
	lenient := NewDetector(WithSilenceThreshold(0.001))

	is.True(!strict.Analyze(audio, 16000).HasSpeech)
	is.True(lenient.Analyze(audio, 16000).HasSpeech)
}

func TestIsSpeechPresent(t *testing.T) {
	is := is.New(t)
	d := NewDetector()

	is.True(d.IsSpeechPresent(sineWave(440, 16000, 1600, 0.25)))
	is.True(!d.IsSpeechPresent(make([]byte, 3200)))
}

func TestAnalyze_Deterministic(t *testing.T) {
	is := is.New(t)
	d := NewDetector()

	audio := sineWave(300, 16000, 800, 0.1)
	first := d.Analyze(audio, 16000)
	second := d.Analyze(audio, 16000)
	is.Equal(first, second)
}
