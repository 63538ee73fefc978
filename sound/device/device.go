// Package device opens the platform audio outputs the software mixer writes
// 16-bit little endian stereo PCM into.
package device

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	Ebiten = "ebiten"
	Beep   = "beep"
	None   = "none"
)

var ErrDisabled = errors.New("audio disabled")

// Open returns a blocking writer for the named backend. Each write returns
// once the backend has consumed the buffer, which paces the mixer.
func Open(backend string, rate, bufferFrames int) (io.WriteCloser, error) {
	switch strings.ToLower(backend) {
	case Ebiten, "":
		return OpenEbiten(rate, bufferFrames)
	case Beep:
		return OpenBeep(rate, bufferFrames)
	case None:
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("device: unknown backend %q", backend)
	}
}
