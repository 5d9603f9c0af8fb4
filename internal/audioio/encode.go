package audioio

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-iir/frame"
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag.
const wavFormatPCM = 1

// WAVSampleRate converts hz to the whole-number rate stored in a WAV header.
// Fractional, non-positive and non-finite rates are rejected rather than
// truncated.
func WAVSampleRate(hz float64) (int, error) {
	if math.IsNaN(hz) || hz <= 0 || hz > math.MaxUint32 || hz != math.Trunc(hz) {
		return 0, fmt.Errorf("%w: %v Hz is not a positive whole number", ErrInvalidSampleRate, hz)
	}
	return int(hz), nil
}

// WriteWAV writes the named columns of fr as interleaved channels of a PCM
// WAV file. Samples are clipped to [-1, 1] before quantisation.
func WriteWAV(path string, fr *frame.Frame, columns []string, sampleRate, bitDepth int) error {
	if len(columns) == 0 {
		return fmt.Errorf("audioio: no columns to write")
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("audioio: unsupported bit depth %d", bitDepth)
	}

	chans := make([][]float64, len(columns))
	for i, name := range columns {
		col, err := fr.Column(name)
		if err != nil {
			return err
		}
		chans[i] = col
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audioio: failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(out, sampleRate, bitDepth, len(chans), wavFormatPCM)

	scale := fullScale(bitDepth) - 1
	data := make([]int, fr.Len()*len(chans))
	for i := range fr.Len() {
		for ch, col := range chans {
			v := math.Max(-1, math.Min(1, col[i]))
			data[i*len(chans)+ch] = int(math.Round(v * scale))
		}
	}

	buf := &goaudio.IntBuffer{
		Data:           data,
		Format:         &goaudio.Format{NumChannels: len(chans), SampleRate: sampleRate},
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(buf); err != nil {
		_ = out.Close()
		return fmt.Errorf("audioio: writing samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("audioio: finalising WAV: %w", err)
	}
	return out.Close()
}
