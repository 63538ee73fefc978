// Package sound is a software stereo mixer. Mono samples are positioned
// relative to a listener, panned and attenuated, then written to an output
// device as 16-bit stereo PCM alongside a small MIDI synthesizer for music.
package sound

// Source is anything with a position in level pixels.
type Source interface {
	Position() (x, y float64)
}

// FixedSource is a source that never moves.
type FixedSource struct {
	X, Y float64
}

func (s FixedSource) Position() (float64, float64) { return s.X, s.Y }

// Snapshot freezes the current position of src.
func Snapshot(src Source) FixedSource {
	x, y := src.Position()
	return FixedSource{X: x, Y: y}
}

// Producer is a mono sample stream.
type Producer interface {
	// Read fills buf with samples resampled to readRate.
	Read(buf []float32, readRate int) float32
	// Skip advances the stream by n output samples without producing them.
	Skip(n, readRate int)
	Live() bool
}

// StereoProducer fills a pair of channel buffers.
type StereoProducer interface {
	Read(left, right []float32, readRate int) float32
	Skip(n, readRate int)
}
