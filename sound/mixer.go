package sound

import (
	"math"
	"sort"
)

const (
	referenceDistance = 1.0
	rolloffFactor     = 2.0
	decibelFactor     = 20.0
	maxDecibels       = 6.0
	panDivider        = 320.0
	panDistanceDiv    = 16.0
)

var ln10 = math.Log(10)

// Sound is one producer placed in the level.
type Sound struct {
	producer Producer
	source   Source
	volume   float64
	priority float64

	score     float64
	pan       float64
	amplitude float64
}

func NewSound(p Producer, src Source, volume, priority float64) *Sound {
	return &Sound{producer: p, source: src, volume: volume, priority: priority, amplitude: volume}
}

// Update recomputes pan, amplitude and score for the listener position.
// Score only decides which sounds get a channel; the audible gain is the
// base volume redistributed between left and right by pan.
func (s *Sound) Update(listener Source) {
	sx, sy := s.source.Position()
	lx, ly := 0.0, 0.0
	if listener != nil {
		lx, ly = listener.Position()
	}
	x := sx - lx
	y := sy - ly
	distSqr := x*x + y*y
	dist := math.Max(math.Sqrt(distSqr), referenceDistance)

	db := s.volume - decibelFactor*math.Log(1+rolloffFactor*(dist-referenceDistance)/referenceDistance)/ln10
	db = math.Min(db, maxDecibels)
	s.score = db * s.priority

	p := -x / panDivider
	if p < -1 {
		p = -1
	}
	if p > 1 {
		p = 1
	}
	dd := distSqr / panDistanceDiv
	if dd > 1 {
		dd = 1
	}
	s.pan = p * dd
	s.amplitude = s.volume
}

func (s *Sound) Live() bool { return s.producer.Live() }

func (s *Sound) Score() float64     { return s.score }
func (s *Sound) Pan() float64       { return s.pan }
func (s *Sound) Amplitude() float64 { return s.amplitude }

// gains splits the amplitude into left and right channel gains.
func (s *Sound) gains() (l, r float32) {
	lp, rp := s.amplitude, s.amplitude
	if s.pan >= 0 {
		rp *= 1 - s.pan
	}
	if s.pan <= 0 {
		lp *= 1 + s.pan
	}
	return float32(lp), float32(rp)
}

// ListenerMixer mixes live sounds for one listener into a stereo pair. At most
// maxChannels sounds are audible per read; the rest are skipped so their
// streams stay in time.
type ListenerMixer struct {
	sounds      []*Sound
	buf         []float32
	maxChannels int
	listener    Source
}

func NewListenerMixer(maxChannels int) *ListenerMixer {
	if maxChannels < 1 {
		maxChannels = 1
	}
	return &ListenerMixer{maxChannels: maxChannels}
}

// Add places a producer in the mix.
func (m *ListenerMixer) Add(p Producer, src Source, volume, priority float64) *Sound {
	s := NewSound(p, src, volume, priority)
	s.Update(m.listener)
	m.sounds = append(m.sounds, s)
	return s
}

func (m *ListenerMixer) SetListener(l Source) { m.listener = l }

func (m *ListenerMixer) Listener() Source { return m.listener }

// Len is the number of live sounds.
func (m *ListenerMixer) Len() int { return len(m.sounds) }

func (m *ListenerMixer) Sounds() []*Sound { return m.sounds }

// Update repositions every sound and drops finished ones.
func (m *ListenerMixer) Update() {
	live := m.sounds[:0]
	for _, s := range m.sounds {
		s.Update(m.listener)
		if s.Live() {
			live = append(live, s)
		}
	}
	for i := len(live); i < len(m.sounds); i++ {
		m.sounds[i] = nil
	}
	m.sounds = live
}

// Read mixes into left and right and returns the peak sample value.
func (m *ListenerMixer) Read(left, right []float32, readRate int) float32 {
	if len(m.buf) != len(left) {
		m.buf = make([]float32, len(left))
	}
	if len(m.sounds) > m.maxChannels {
		sort.SliceStable(m.sounds, func(i, j int) bool {
			return m.sounds[i].score > m.sounds[j].score
		})
	}
	clear(left)
	clear(right)

	var peak float32
	for i, s := range m.sounds {
		if i >= m.maxChannels {
			s.producer.Skip(len(left), readRate)
			continue
		}
		s.producer.Read(m.buf, readRate)
		lp, rp := s.gains()
		for j, v := range m.buf {
			left[j] += v * lp
			right[j] += v * rp
			if left[j] > peak {
				peak = left[j]
			}
			if right[j] > peak {
				peak = right[j]
			}
		}
	}
	return peak
}

// Skip advances every sound.
func (m *ListenerMixer) Skip(n, readRate int) {
	for _, s := range m.sounds {
		s.producer.Skip(n, readRate)
	}
}
