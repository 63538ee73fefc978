package main

import (
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerBeat = 480
	startVolume  = 100
)

// note sounds key for length ticks after rest ticks of silence.
type note struct {
	rest   uint32
	key    uint8
	length uint32
}

type part struct {
	channel  uint8
	program  uint8
	velocity uint8
	notes    []note
}

type song struct {
	name  string
	bpm   float64
	parts []part
}

// build lays the song out as a format 1 file: a tempo track followed by one
// track per part.
func (s song) build() *smf.SMF {
	f := smf.New()
	f.TimeFormat = smf.MetricTicks(ticksPerBeat)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(s.bpm))
	tempo.Close(0)
	f.Add(tempo)

	for _, p := range s.parts {
		var tr smf.Track
		tr.Add(0, midi.ProgramChange(p.channel, p.program))
		tr.Add(0, midi.ControlChange(p.channel, 7, startVolume))
		for _, n := range p.notes {
			tr.Add(n.rest, midi.NoteOn(p.channel, n.key, p.velocity))
			tr.Add(n.length, midi.NoteOff(p.channel, n.key))
		}
		tr.Close(0)
		f.Add(tr)
	}
	return f
}

var songs = []song{
	{
		name: "title",
		bpm:  100,
		parts: []part{
			{channel: 0, program: 80, velocity: 100, notes: []note{
				{0, 72, 470}, {10, 76, 470}, {10, 79, 470}, {10, 84, 950},
				{490, 79, 470}, {10, 84, 950},
			}},
			{channel: 1, program: 33, velocity: 90, notes: []note{
				{0, 48, 950}, {10, 43, 950}, {10, 48, 950}, {10, 43, 950},
			}},
		},
	},
	{
		name: "level1",
		bpm:  140,
		parts: []part{
			{channel: 0, program: 81, velocity: 100, notes: []note{
				{0, 76, 230}, {10, 76, 230}, {250, 76, 230}, {250, 72, 230},
				{10, 76, 470}, {10, 79, 470}, {490, 67, 470}, {490, 72, 470},
				{250, 67, 470}, {250, 64, 470}, {250, 69, 470}, {10, 71, 470},
				{10, 70, 230}, {10, 69, 470},
			}},
			{channel: 1, program: 33, velocity: 90, notes: []note{
				{0, 48, 470}, {10, 55, 470}, {10, 48, 470}, {10, 55, 470},
				{10, 43, 470}, {10, 50, 470}, {10, 43, 470}, {10, 50, 470},
				{10, 48, 470}, {10, 55, 470}, {10, 41, 470}, {10, 48, 470},
			}},
		},
	},
}
