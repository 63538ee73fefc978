package sound

import (
	"math"
	"math/rand/v2"

	"gitlab.com/gomidi/midi/v2"
)

const (
	midiChannels   = 16
	drumChannel    = 9
	maxVoices      = 24
	defaultVolume  = 100
	synthGain      = 0.18
	attackSeconds  = 0.005
	decaySeconds   = 0.12
	sustainLevel   = 0.6
	releaseSeconds = 0.15
	drumSeconds    = 0.09
)

var noteFrequencies [128]float64

func init() {
	for i := range noteFrequencies {
		noteFrequencies[i] = 440.0 * math.Pow(2, (float64(i)-69.0)/12.0)
	}
}

// NoteFreq returns the equal temperament frequency of a MIDI note.
func NoteFreq(note int) float64 {
	if note < 0 || note >= len(noteFrequencies) {
		return 0
	}
	return noteFrequencies[note]
}

type envelopeState int

const (
	envIdle envelopeState = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

type voice struct {
	channel  uint8
	key      uint8
	freq     float64
	velocity float64
	phase    float64
	drum     bool

	state envelopeState
	level float64
	from  float64
	pos   int
}

func (v *voice) active() bool { return v.state != envIdle }

func (v *voice) release() {
	if v.state != envIdle && !v.drum {
		v.state = envRelease
		v.from = v.level
		v.pos = 0
	}
}

func (v *voice) envelope(rate float64) float64 {
	switch v.state {
	case envAttack:
		n := int(attackSeconds * rate)
		if n > 0 {
			v.level = float64(v.pos) / float64(n)
		}
		v.pos++
		if v.pos >= n {
			v.state = envDecay
			v.pos = 0
			v.level = 1
		}
	case envDecay:
		n := int(decaySeconds * rate)
		if n > 0 {
			v.level = 1 - float64(v.pos)/float64(n)*(1-sustainLevel)
		}
		v.pos++
		if v.pos >= n {
			v.state = envSustain
			v.level = sustainLevel
		}
	case envSustain:
		v.level = sustainLevel
	case envRelease:
		n := int(releaseSeconds * rate)
		if v.drum {
			n = int(drumSeconds * rate)
		}
		if n <= 0 || v.pos >= n {
			v.state = envIdle
			v.level = 0
			return 0
		}
		v.level = v.from * (1 - float64(v.pos)/float64(n))
		v.pos++
	}
	return v.level
}

func (v *voice) sample(rate float64) float64 {
	var raw float64
	if v.drum {
		raw = rand.Float64()*2 - 1
	} else if v.channel%2 == 0 {
		raw = math.Sin(2 * math.Pi * v.phase)
	} else if v.phase < 0.5 {
		raw = 0.6
	} else {
		raw = -0.6
	}
	v.phase += v.freq / rate
	if v.phase >= 1 {
		v.phase -= math.Floor(v.phase)
	}
	return raw * v.envelope(rate) * v.velocity
}

// Synth is the built-in music receiver: a small polyphonic oscillator bank
// honouring note on, note off and channel volume.
type Synth struct {
	voices  [maxVoices]voice
	volumes [midiChannels]uint8
}

func NewSynth() *Synth {
	s := &Synth{}
	for i := range s.volumes {
		s.volumes[i] = defaultVolume
	}
	return s
}

// ChannelVolume returns the last CC7 value for ch.
func (s *Synth) ChannelVolume(ch uint8) uint8 {
	return s.volumes[ch%midiChannels]
}

// ActiveVoices counts sounding voices.
func (s *Synth) ActiveVoices() int {
	n := 0
	for i := range s.voices {
		if s.voices[i].active() {
			n++
		}
	}
	return n
}

func (s *Synth) Send(msg midi.Message) {
	var ch, key, vel, ctl, val uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		s.noteOn(ch, key, vel)
	case msg.GetNoteEnd(&ch, &key):
		for i := range s.voices {
			v := &s.voices[i]
			if v.active() && v.channel == ch && v.key == key {
				v.release()
			}
		}
	case msg.GetControlChange(&ch, &ctl, &val):
		if ctl == VolumeController {
			s.volumes[ch%midiChannels] = val
		}
	}
}

func (s *Synth) noteOn(ch, key, vel uint8) {
	slot := -1
	quietest := math.MaxFloat64
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active() {
			slot = i
			break
		}
		if v.level < quietest {
			quietest = v.level
			slot = i
		}
	}
	v := &s.voices[slot]
	*v = voice{
		channel:  ch,
		key:      key,
		freq:     NoteFreq(int(key)),
		velocity: float64(vel) / 127,
		drum:     ch == drumChannel,
		state:    envAttack,
	}
	if v.drum {
		v.state = envRelease
		v.level = 1
		v.from = 1
	}
}

// Reset silences every voice.
func (s *Synth) Reset() {
	for i := range s.voices {
		s.voices[i] = voice{}
	}
}

// Mix adds the synth output to both channels.
func (s *Synth) Mix(left, right []float32, readRate int) {
	rate := float64(readRate)
	for i := range s.voices {
		v := &s.voices[i]
		if !v.active() {
			continue
		}
		gain := synthGain * float64(s.volumes[v.channel%midiChannels]) / 127
		for j := range left {
			if !v.active() {
				break
			}
			out := float32(v.sample(rate) * gain)
			left[j] += out
			right[j] += out
		}
	}
}
