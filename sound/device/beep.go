package device

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// pcmStreamer decodes interleaved 16-bit stereo from a pipe for the speaker.
type pcmStreamer struct {
	r   io.Reader
	buf []byte
	err error
}

func (s *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	need := len(samples) * 4
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]
	n, err := io.ReadFull(s.r, buf)
	frames := n / 4
	for i := 0; i < frames; i++ {
		l := int16(binary.LittleEndian.Uint16(buf[i*4:]))
		r := int16(binary.LittleEndian.Uint16(buf[i*4+2:]))
		samples[i][0] = float64(l) / 32768
		samples[i][1] = float64(r) / 32768
	}
	if err != nil {
		if err != io.EOF && err != io.ErrUnexpectedEOF && err != io.ErrClosedPipe {
			s.err = err
		} else {
			s.err = io.EOF
		}
		return frames, frames > 0
	}
	return frames, true
}

func (s *pcmStreamer) Err() error {
	if s.err == io.EOF {
		return nil
	}
	return s.err
}

type beepDevice struct {
	pw   *io.PipeWriter
	once sync.Once
}

// OpenBeep initialises the beep speaker and plays the pipe through it.
func OpenBeep(rate, bufferFrames int) (io.WriteCloser, error) {
	if bufferFrames <= 0 {
		bufferFrames = rate / 10
	}
	if err := speaker.Init(beep.SampleRate(rate), bufferFrames); err != nil {
		return nil, fmt.Errorf("device: speaker init: %w", err)
	}
	pr, pw := io.Pipe()
	speaker.Play(&pcmStreamer{r: pr})
	return &beepDevice{pw: pw}, nil
}

func (d *beepDevice) Write(p []byte) (int, error) {
	return d.pw.Write(p)
}

func (d *beepDevice) Close() error {
	d.once.Do(func() {
		d.pw.Close()
		speaker.Clear()
	})
	return nil
}
