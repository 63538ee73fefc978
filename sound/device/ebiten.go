package device

import (
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

type ebitenDevice struct {
	pw     *io.PipeWriter
	player *audio.Player
}

// OpenEbiten streams into an ebiten audio player. The process wide audio
// context is reused when one already exists.
func OpenEbiten(rate, bufferFrames int) (io.WriteCloser, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(rate)
	}
	if ctx.SampleRate() != rate {
		return nil, fmt.Errorf("device: audio context runs at %d Hz, want %d", ctx.SampleRate(), rate)
	}

	pr, pw := io.Pipe()
	player, err := ctx.NewPlayer(pr)
	if err != nil {
		pw.Close()
		return nil, fmt.Errorf("device: new player: %w", err)
	}
	if bufferFrames > 0 {
		player.SetBufferSize(time.Duration(bufferFrames) * time.Second / time.Duration(rate) * 2)
	}
	player.Play()
	return &ebitenDevice{pw: pw, player: player}, nil
}

func (d *ebitenDevice) Write(p []byte) (int, error) {
	return d.pw.Write(p)
}

func (d *ebitenDevice) Close() error {
	d.pw.Close()
	return d.player.Close()
}
