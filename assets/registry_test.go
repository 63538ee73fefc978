package assets

import (
	"errors"
	"image"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumpscroller/sound"
)

func TestLoadEmbedded(t *testing.T) {
	r, err := Load(log.New(io.Discard), sound.DefaultSampleRate)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	sheets := []struct {
		name string
		cols int
		w, h int
	}{
		{name: "ember_idle", cols: 4, w: 32, h: 48},
		{name: "inferno_attack2", cols: 10, w: 48, h: 48},
		{name: "firebeam2", cols: 4, w: 96, h: 24},
		{name: "title", cols: 1, w: 800, h: 1280},
	}
	for _, tt := range sheets {
		t.Run(tt.name, func(t *testing.T) {
			s := r.Sheet(tt.name)
			if got := len(s.Row(0)); got != tt.cols {
				t.Fatalf("expected %d frames, got %d", tt.cols, got)
			}
			w, h := s.Frame(0, 0).Size()
			if w != tt.w || h != tt.h {
				t.Fatalf("expected %dx%d frames, got %dx%d", tt.w, tt.h, w, h)
			}
		})
	}

	if r.Sheet("tiles").Rows() != 2 {
		t.Fatalf("expected two tile rows")
	}
	for _, name := range []string{"player_jump", "player_punch", "player_firebeam", "evolve", "shell_bump", "get_coin"} {
		s := r.Sample(name)
		if len(s.Buf) < 100 {
			t.Fatalf("sample %s did not decode, %d frames", name, len(s.Buf))
		}
	}
	if fb := r.Sample("player_firebeam").Duration(); fb < 1.4 || fb > 1.5 {
		t.Fatalf("expected firebeam sample near 1.435s, got %v", fb)
	}
	for _, name := range []string{"title", "level1"} {
		seq := r.Sequence(name)
		if seq == nil || len(seq.Messages) == 0 || seq.Length <= 0 {
			t.Fatalf("song %s did not load", name)
		}
	}
}

func TestRegistryPlaceholders(t *testing.T) {
	r := NewRegistry(log.New(io.Discard), 22050)
	r.Freeze()

	s := r.Sheet("missing")
	if s.Name() != "missing" || len(s.Row(0)) != 1 {
		t.Fatalf("expected single frame placeholder, got %d frames", len(s.Row(0)))
	}
	sample := r.Sample("missing")
	if sample.Name != "missing" || len(sample.Buf) != 1 {
		t.Fatalf("expected silent placeholder sample")
	}
	if r.Sequence("missing") != nil {
		t.Fatalf("expected nil song")
	}
}

func TestRegistryFrozen(t *testing.T) {
	r := NewRegistry(log.New(io.Discard), 22050)
	if err := r.AddSheet("a", image.NewNRGBA(image.Rect(0, 0, 4, 4)), 2, 2); err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	r.Freeze()
	err := r.AddSample(sound.NewSample("b", []float32{0}, 22050))
	if !errors.Is(err, ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
	if got := len(r.Sheet("a").Row(1)); got != 2 {
		t.Fatalf("expected 2x2 grid, got %d frames in row 1", got)
	}
}

func TestSliceDropsPartialCells(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 70, 50))
	rows := Slice(img, 32, 24)
	if len(rows) != 2 || len(rows[0]) != 2 {
		t.Fatalf("expected 2x2 cells, got %d rows", len(rows))
	}
	f := rows[1][1].(Frame)
	if f.Bounds != image.Rect(32, 24, 64, 48) {
		t.Fatalf("unexpected cell bounds %v", f.Bounds)
	}
}
