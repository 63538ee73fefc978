package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/jumpscroller/assets"
	"github.com/milk9111/jumpscroller/sound"
)

func TestSongsMatchEmbedded(t *testing.T) {
	for _, s := range songs {
		t.Run(s.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := s.build().WriteTo(&buf); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := sound.LoadSequence(&buf, s.name)
			if err != nil {
				t.Fatalf("load generated: %v", err)
			}
			raw, err := assets.LoadFile("songs/" + s.name + ".mid")
			if err != nil {
				t.Fatalf("load embedded: %v", err)
			}
			want, err := sound.LoadSequence(bytes.NewReader(raw), s.name)
			if err != nil {
				t.Fatalf("read embedded: %v", err)
			}
			if len(got.Messages) != len(want.Messages) {
				t.Fatalf("messages = %d, want %d", len(got.Messages), len(want.Messages))
			}
			for i := range got.Messages {
				g, w := got.Messages[i], want.Messages[i]
				if !bytes.Equal(g.Msg, w.Msg) || math.Abs(g.At-w.At) > 1e-6 {
					t.Fatalf("message %d = %v at %.4f, want %v at %.4f", i, g.Msg, g.At, w.Msg, w.At)
				}
			}
			if math.Abs(got.Length-want.Length) > 1e-6 {
				t.Fatalf("length = %.4f, want %.4f", got.Length, want.Length)
			}
		})
	}
}

func TestWritesHeader(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--out", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, s := range songs {
		raw, err := os.ReadFile(filepath.Join(dir, s.name+".mid"))
		if err != nil {
			t.Fatalf("read %s: %v", s.name, err)
		}
		want := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 1, 0, byte(len(s.parts) + 1), 0x01, 0xe0}
		if len(raw) < len(want) || !bytes.Equal(raw[:len(want)], want) {
			t.Fatalf("%s header = % x, want % x", s.name, raw[:min(len(raw), len(want))], want)
		}
	}
}
