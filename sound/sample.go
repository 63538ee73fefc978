package sound

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep/wav"
)

var (
	ErrStereo = errors.New("only mono samples are supported")
	ErrEmpty  = errors.New("sample has no frames")
)

// Sample is a decoded mono buffer with its native rate.
type Sample struct {
	Name string
	Buf  []float32
	Rate float64
}

func NewSample(name string, buf []float32, rate float64) *Sample {
	return &Sample{Name: name, Buf: buf, Rate: rate}
}

// Silent returns a one-frame sample of silence.
func Silent(rate float64) *Sample {
	return &Sample{Name: "silent", Buf: []float32{0}, Rate: rate}
}

// Duration is the play length at rate 1.
func (s *Sample) Duration() float64 {
	if s.Rate <= 0 {
		return 0
	}
	return float64(len(s.Buf)) / s.Rate
}

const decodeChunk = 4096

// LoadSample decodes a mono WAV stream.
func LoadSample(r io.Reader, name string) (*Sample, error) {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("sound: decode %s: %w", name, err)
	}
	defer stream.Close()
	if format.NumChannels != 1 {
		return nil, fmt.Errorf("sound: %s has %d channels: %w", name, format.NumChannels, ErrStereo)
	}

	gain := decodeGain(format.Precision)
	buf := make([]float32, 0, stream.Len())
	chunk := make([][2]float64, decodeChunk)
	for {
		n, ok := stream.Stream(chunk)
		for _, frame := range chunk[:n] {
			buf = append(buf, float32(frame[0]*gain))
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("sound: read %s: %w", name, err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("sound: %s: %w", name, ErrEmpty)
	}
	return NewSample(name, buf, float64(format.SampleRate)), nil
}

// decodeGain undoes the wav decoder's scaling of signed samples, which
// divides by the full unsigned range and so leaves them at half amplitude.
func decodeGain(precision int) float64 {
	switch precision {
	case 2:
		return float64(1<<16-1) / (1 << 15)
	case 3:
		return float64(1<<24-1) / (1 << 23)
	default:
		return 1
	}
}

// LoadSampleOrSilent decodes a sample and falls back to silence on any
// failure so a broken asset only costs its effect.
func LoadSampleOrSilent(r io.Reader, name string, rate float64, logger *log.Logger) *Sample {
	s, err := LoadSample(r, name)
	if err != nil {
		if logger != nil {
			logger.Warn("using silent sample", "sample", name, "error", err)
		}
		silent := Silent(rate)
		silent.Name = name
		return silent
	}
	return s
}
