package sound

import (
	"math"
	"testing"
)

func constSample(v float32, n int, rate float64) *Sample {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = v
	}
	return NewSample("const", buf, rate)
}

func TestListenerMixerChannelCap(t *testing.T) {
	const rate = 1000
	m := NewListenerMixer(2)
	m.SetListener(FixedSource{X: 50, Y: 50})
	here := FixedSource{X: 50, Y: 50}

	values := []float32{1, 2, 4, 8, 16}
	priorities := []float64{1, 2, 3, 4, 5}
	playRates := []float64{2, 1, 1, 1, 1}
	players := make([]*SamplePlayer, len(values))
	for i, v := range values {
		players[i] = NewSamplePlayer(constSample(v, 1000, rate), playRates[i])
		m.Add(players[i], here, 1, priorities[i])
	}
	m.Update()

	left := make([]float32, 16)
	right := make([]float32, 16)
	peak := m.Read(left, right, rate)
	for j := range left {
		if left[j] != 24 || right[j] != 24 {
			t.Fatalf("frame %d: expected only the two highest scores (24), got %v/%v", j, left[j], right[j])
		}
	}
	if peak != 24 {
		t.Fatalf("expected peak 24, got %v", peak)
	}

	wantPos := []float64{32, 16, 16, 16, 16}
	for i, p := range players {
		if p.Position() != wantPos[i] {
			t.Fatalf("player %d at %v, want %v", i, p.Position(), wantPos[i])
		}
	}
}

func TestListenerMixerRemovesExhaustedSounds(t *testing.T) {
	m := NewListenerMixer(4)
	p := NewSamplePlayer(constSample(1, 4, 100), 1)
	m.Add(p, FixedSource{}, 1, 1)

	left := make([]float32, 8)
	right := make([]float32, 8)
	m.Read(left, right, 100)
	if left[3] != 1 || left[4] != 0 {
		t.Fatalf("unexpected tail %v", left)
	}
	if p.Live() {
		t.Fatalf("expected player to be dead after reading past its end")
	}

	m.Read(left, right, 100)
	for j := range left {
		if left[j] != 0 || right[j] != 0 {
			t.Fatalf("expected silence after exhaustion, got %v", left)
		}
	}

	m.Update()
	if m.Len() != 0 {
		t.Fatalf("expected dead sound removed, %d left", m.Len())
	}
}

func TestSoundUpdate(t *testing.T) {
	tests := []struct {
		name      string
		src       FixedSource
		volume    float64
		priority  float64
		wantPan   float64
		wantScore float64
		wantLeft  float32
		wantRight float32
	}{
		{
			name: "at listener", src: FixedSource{X: 0, Y: 0}, volume: 1, priority: 3,
			wantPan: 0, wantScore: 3, wantLeft: 1, wantRight: 1,
		},
		{
			name: "far right", src: FixedSource{X: 640, Y: 0}, volume: 1, priority: 1,
			wantPan: -1, wantScore: 1 - 20*math.Log10(1+2*639), wantLeft: 0, wantRight: 1,
		},
		{
			name: "far left", src: FixedSource{X: -640, Y: 0}, volume: 0.5, priority: 2,
			wantPan: 1, wantScore: 2 * (0.5 - 20*math.Log10(1+2*639)), wantLeft: 0.5, wantRight: 0,
		},
		{
			name: "close right pans softly", src: FixedSource{X: 2, Y: 0}, volume: 1, priority: 1,
			wantPan: -2.0 / 320 * 4 / 16, wantScore: 1 - 20*math.Log10(3), wantLeft: float32(1 - 2.0/320*4/16), wantRight: 1,
		},
		{
			name: "loud clamps to max", src: FixedSource{X: 0, Y: 1}, volume: 10, priority: 1,
			wantPan: 0, wantScore: 6, wantLeft: 10, wantRight: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSound(NewSamplePlayer(Silent(100), 1), tt.src, tt.volume, tt.priority)
			s.Update(FixedSource{})
			if math.Abs(s.Pan()-tt.wantPan) > 1e-9 {
				t.Fatalf("pan = %v, want %v", s.Pan(), tt.wantPan)
			}
			if math.Abs(s.Score()-tt.wantScore) > 1e-6 {
				t.Fatalf("score = %v, want %v", s.Score(), tt.wantScore)
			}
			if s.Amplitude() != tt.volume {
				t.Fatalf("amplitude = %v, want %v", s.Amplitude(), tt.volume)
			}
			l, r := s.gains()
			if math.Abs(float64(l-tt.wantLeft)) > 1e-6 || math.Abs(float64(r-tt.wantRight)) > 1e-6 {
				t.Fatalf("gains = %v/%v, want %v/%v", l, r, tt.wantLeft, tt.wantRight)
			}
		})
	}
}

func TestSamplePlayerResamples(t *testing.T) {
	s := NewSample("ramp", []float32{0, 1, 2, 3, 4, 5, 6, 7}, 200)
	p := NewSamplePlayer(s, 1)
	buf := make([]float32, 4)
	p.Read(buf, 100)
	want := []float32{0, 2, 4, 6}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("read %v, want %v", buf, want)
		}
	}
	if !p.Live() {
		t.Fatalf("player should still be live at position %v", p.Position())
	}

	slow := NewSamplePlayer(s, 0.5)
	buf = make([]float32, 4)
	slow.Read(buf, 400)
	want = []float32{0, 0, 0, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("slow read %v, want %v", buf, want)
		}
	}
	if slow.Position() != 1 {
		t.Fatalf("expected position 1, got %v", slow.Position())
	}

	p.Skip(10, 100)
	if p.Live() {
		t.Fatalf("skip past end should kill the player")
	}
}
