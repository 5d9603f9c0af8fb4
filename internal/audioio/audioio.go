// Package audioio loads audio files into frames with one column per channel
// and writes filtered columns back out as PCM WAV.
package audioio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-iir/frame"
)

var (
	// ErrUnsupportedFormat is returned for file extensions without a decoder.
	ErrUnsupportedFormat = errors.New("audioio: unsupported format")

	// ErrInvalidFile is returned when a file fails format validation.
	ErrInvalidFile = errors.New("audioio: invalid file")

	// ErrInvalidSampleRate is returned for rates a WAV header cannot carry.
	ErrInvalidSampleRate = errors.New("audioio: invalid sample rate")
)

// Audio is a decoded file: one frame column per channel (ch0, ch1, ...).
type Audio struct {
	Frame      *frame.Frame
	SampleRate int
	BitDepth   int
}

// ChannelName returns the column name used for channel i.
func ChannelName(i int) string {
	return "ch" + strconv.Itoa(i)
}

// Decode reads path with the decoder chosen by its extension: .wav, .aif or
// .aiff, .mp3, .ogg. Samples are scaled to [-1, 1).
func Decode(path string) (*Audio, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var dec func(f *os.File) (*Audio, error)
	switch ext {
	case ".wav":
		dec = decodeWAV
	case ".aif", ".aiff":
		dec = decodeAIFF
	case ".mp3":
		dec = decodeMP3
	case ".ogg":
		dec = decodeOgg
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audioio: failed to open input file: %w", err)
	}
	defer f.Close()

	a, err := dec(f)
	if err != nil {
		return nil, fmt.Errorf("audioio: decoding %s: %w", path, err)
	}
	return a, nil
}

// deinterleave splits interleaved samples into per-channel columns.
func deinterleave(samples []float64, channels, sampleRate, bitDepth int) (*Audio, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}

	frames := len(samples) / channels
	fr := frame.New()
	for ch := range channels {
		col := make([]float64, frames)
		for i := range col {
			col[i] = samples[i*channels+ch]
		}
		if err := fr.SetColumn(ChannelName(ch), col); err != nil {
			return nil, err
		}
	}

	return &Audio{Frame: fr, SampleRate: sampleRate, BitDepth: bitDepth}, nil
}

func fullScale(bitDepth int) float64 {
	if bitDepth <= 0 {
		bitDepth = 16
	}
	return float64(int64(1) << (bitDepth - 1))
}
