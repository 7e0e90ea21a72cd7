// Package wav reads 16-bit PCM WAV files for offline audio analysis.
package wav

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Header describes a WAV file's format.
type Header struct {
	SampleRate    uint32
	NumChannels   uint16
	BitsPerSample uint16
	DataSize      uint32
}

// Reader reads a WAV file and exposes its raw PCM payload.
type Reader struct {
	file   *os.File
	header Header
}

// NewReader opens and validates a WAV file.
func NewReader(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open WAV file: %w", err)
	}

	r := &Reader{file: file}
	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("read WAV header: %w", err)
	}
	return r, nil
}

// Header returns the parsed format information.
func (r *Reader) Header() Header {
	return r.header
}

// ReadAll returns the file's raw little-endian PCM sample data.
func (r *Reader) ReadAll() ([]byte, error) {
	data := make([]byte, r.header.DataSize)
	if _, err := io.ReadFull(r.file, data); err != nil {
		return nil, fmt.Errorf("read audio data: %w", err)
	}
	return data, nil
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

func (r *Reader) readHeader() error {
	var riff [12]byte
	if _, err := io.ReadFull(r.file, riff[:]); err != nil {
		return fmt.Errorf("read RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" {
		return fmt.Errorf("not a valid RIFF file")
	}
	if string(riff[8:12]) != "WAVE" {
		return fmt.Errorf("not a valid WAVE file")
	}

	foundFmt := false
	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r.file, chunkHeader[:]); err != nil {
			return fmt.Errorf("read chunk header: %w", err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return fmt.Errorf("fmt chunk too small: %d bytes", chunkSize)
			}
			var fmtData [16]byte
			if _, err := io.ReadFull(r.file, fmtData[:]); err != nil {
				return fmt.Errorf("read fmt chunk: %w", err)
			}
			r.header.NumChannels = binary.LittleEndian.Uint16(fmtData[2:4])
			r.header.SampleRate = binary.LittleEndian.Uint32(fmtData[4:8])
			r.header.BitsPerSample = binary.LittleEndian.Uint16(fmtData[14:16])
			if chunkSize > 16 {
				if _, err := r.file.Seek(int64(chunkSize-16), io.SeekCurrent); err != nil {
					return fmt.Errorf("skip fmt extension: %w", err)
				}
			}
			foundFmt = true
		case "data":
			if !foundFmt {
				return fmt.Errorf("data chunk before fmt chunk")
			}
			r.header.DataSize = chunkSize
			if r.header.BitsPerSample != 16 {
				return fmt.Errorf("only 16-bit samples are supported, got %d-bit", r.header.BitsPerSample)
			}
			return nil
		default:
			if _, err := r.file.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return fmt.Errorf("skip chunk %q: %w", chunkID, err)
			}
		}
	}
}
