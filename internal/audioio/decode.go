package audioio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/aiff"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

func decodeWAV(f *os.File) (*Audio, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}

	return fromIntBuffer(buf, int(dec.BitDepth))
}

func decodeAIFF(f *os.File) (*Audio, error) {
	dec := aiff.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading PCM data: %w", err)
	}

	return fromIntBuffer(buf, int(dec.BitDepth))
}

func fromIntBuffer(buf *goaudio.IntBuffer, bitDepth int) (*Audio, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("%w: missing format", ErrInvalidFile)
	}

	scale := fullScale(bitDepth)
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}

	return deinterleave(samples, buf.Format.NumChannels, buf.Format.SampleRate, bitDepth)
}

// go-mp3 always produces 16-bit little-endian stereo.
const mp3Channels = 2

func decodeMP3(f *os.File) (*Audio, error) {
	dec, err := gomp3.NewDecoder(f)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("reading MP3 stream: %w", err)
	}

	samples := make([]float64, len(raw)/2)
	for i := range samples {
		samples[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	return deinterleave(samples, mp3Channels, dec.SampleRate(), 16)
}

func decodeOgg(f *os.File) (*Audio, error) {
	dec, err := oggvorbis.NewReader(f)
	if err != nil {
		return nil, err
	}

	channels := dec.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidFile, channels)
	}

	var samples []float64
	block := make([]float32, 4096*channels)
	for {
		n, err := dec.Read(block)
		for _, v := range block[:n] {
			samples = append(samples, float64(v))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading Ogg stream: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return deinterleave(samples, channels, dec.SampleRate(), 0)
}
