package sound

import "gitlab.com/gomidi/midi/v2"

// Receiver consumes channel messages.
type Receiver interface {
	Send(msg midi.Message)
}

// Sequencer plays a Sequence into a Receiver as time is advanced.
type Sequencer struct {
	seq     *Sequence
	pos     float64
	next    int
	loop    bool
	running bool
}

// Start plays seq from the beginning. A looping sequence restarts when it
// reaches its end.
func (s *Sequencer) Start(seq *Sequence, loop bool) {
	s.seq = seq
	s.pos = 0
	s.next = 0
	s.loop = loop
	s.running = seq != nil
}

func (s *Sequencer) Stop() {
	s.running = false
}

func (s *Sequencer) Running() bool { return s.running }

// Position is the playback time in seconds.
func (s *Sequencer) Position() float64 { return s.pos }

// Advance moves playback forward by dt seconds and delivers every message
// that falls inside the window.
func (s *Sequencer) Advance(dt float64, r Receiver) {
	for s.running && dt > 0 {
		end := s.pos + dt
		msgs := s.seq.Messages
		for s.next < len(msgs) && msgs[s.next].At < end {
			r.Send(msgs[s.next].Msg)
			s.next++
		}
		if end < s.seq.Length || (s.next < len(msgs)) {
			s.pos = end
			return
		}
		if !s.loop || s.seq.Length <= 0 {
			s.pos = end
			s.running = false
			return
		}
		dt = end - s.seq.Length
		s.pos = 0
		s.next = 0
	}
}
