package sound

import (
	"fmt"
	"io"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// VolumeController is the MIDI channel volume controller number.
const VolumeController = 7

const defaultBPM = 120.0

// TimedMessage is a channel message at an absolute time in seconds.
type TimedMessage struct {
	At  float64
	Msg midi.Message
}

// Sequence is a flattened, tempo-resolved MIDI song.
type Sequence struct {
	Name     string
	Messages []TimedMessage
	Length   float64
}

// LoadSequence reads a standard MIDI file, strips channel volume changes so
// the engine keeps control of music volume, and flattens all tracks.
func LoadSequence(r io.Reader, name string) (*Sequence, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("sound: read sequence %s: %w", name, err)
	}
	PatchVolume(s)
	seq, err := Flatten(s)
	if err != nil {
		return nil, fmt.Errorf("sound: sequence %s: %w", name, err)
	}
	seq.Name = name
	return seq, nil
}

// PatchVolume removes every volume control change from s, folding the
// removed delta times into the following event. It returns how many events
// were removed.
func PatchVolume(s *smf.SMF) int {
	removed := 0
	for ti, track := range s.Tracks {
		patched := make(smf.Track, 0, len(track))
		var carry uint32
		for _, ev := range track {
			var ch, ctl, val uint8
			if midi.Message(ev.Message).GetControlChange(&ch, &ctl, &val) && ctl == VolumeController {
				carry += ev.Delta
				removed++
				continue
			}
			ev.Delta += carry
			carry = 0
			patched = append(patched, ev)
		}
		s.Tracks[ti] = patched
	}
	return removed
}

type tickedMessage struct {
	tick uint64
	msg  smf.Message
}

// Flatten merges all tracks into one time-ordered list using the tempo map.
func Flatten(s *smf.SMF) (*Sequence, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", s.TimeFormat)
	}
	resolution := float64(mt)
	if resolution <= 0 {
		return nil, fmt.Errorf("invalid resolution %v", resolution)
	}

	var all []tickedMessage
	var end uint64
	for _, track := range s.Tracks {
		var abs uint64
		for _, ev := range track {
			abs += uint64(ev.Delta)
			all = append(all, tickedMessage{tick: abs, msg: ev.Message})
		}
		if abs > end {
			end = abs
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].tick < all[j].tick })

	seq := &Sequence{}
	bpm := defaultBPM
	var lastTick uint64
	var now float64
	for _, tm := range all {
		now += float64(tm.tick-lastTick) / resolution * 60 / bpm
		lastTick = tm.tick
		var tempo float64
		if tm.msg.GetMetaTempo(&tempo) {
			if tempo > 0 {
				bpm = tempo
			}
			continue
		}
		if tm.msg.IsMeta() {
			continue
		}
		seq.Messages = append(seq.Messages, TimedMessage{At: now, Msg: midi.Message(tm.msg)})
	}
	seq.Length = now + float64(end-lastTick)/resolution*60/bpm
	return seq, nil
}
