package sound

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"gitlab.com/gomidi/midi/v2"
)

const (
	DefaultSampleRate  = 44100
	DefaultMaxChannels = 64

	outputGain    = 32000
	outputBound   = 32767
	bytesPerFrame = 4
	requestQueue  = 64
)

// Engine is what the simulation talks to. Calls come from the simulation
// goroutine only and never block on audio output.
type Engine interface {
	// Play requests a sample at src. It is picked up by the next ClientTick.
	Play(sample *Sample, src Source, priority, rate float64)
	// ClientTick hands queued requests to the mixer and repositions sounds.
	ClientTick()
	SetListener(l Source)
	StartMusic(seq *Sequence)
	StopMusic()
	SetMusicVolume(v float64)
	MusicVolume() float64
	SetSoundVolume(v float64)
	SoundVolume() float64
	SampleRate() int
	Shutdown()
}

// Options configure a SoftEngine.
type Options struct {
	SampleRate  int
	MaxChannels int
	// BufferFrames is the number of stereo frames mixed per device write.
	BufferFrames int
}

func (o Options) withDefaults() Options {
	if o.SampleRate <= 0 {
		o.SampleRate = DefaultSampleRate
	}
	if o.MaxChannels <= 0 {
		o.MaxChannels = DefaultMaxChannels
	}
	if o.BufferFrames <= 0 {
		o.BufferFrames = o.SampleRate / 100
	}
	return o
}

type playRequest struct {
	sample   *Sample
	source   Source
	priority float64
	rate     float64
	volume   float64
}

// SoftEngine mixes on its own goroutine and writes 16-bit little endian
// stereo PCM to dev. The device write is the only blocking call and paces
// the loop.
type SoftEngine struct {
	opts   Options
	dev    io.WriteCloser
	logger *log.Logger

	requests chan playRequest
	dropped  atomic.Uint64
	played   atomic.Uint64
	alive    atomic.Bool
	done     chan struct{}

	// mu guards everything below.
	mu        sync.Mutex
	mixer     *ListenerMixer
	sequencer Sequencer
	synth     *Synth
	left      []float32
	right     []float32
	peak      float32
	musicVol  float64

	soundVol atomic.Uint64
	out      []byte
}

// NewSoftEngine creates an engine writing to dev. Call Start to begin mixing.
func NewSoftEngine(dev io.WriteCloser, opts Options, logger *log.Logger) *SoftEngine {
	opts = opts.withDefaults()
	if logger == nil {
		logger = log.Default()
	}
	e := &SoftEngine{
		opts:     opts,
		dev:      dev,
		logger:   logger,
		requests: make(chan playRequest, requestQueue),
		done:     make(chan struct{}),
		mixer:    NewListenerMixer(opts.MaxChannels),
		synth:    NewSynth(),
		left:     make([]float32, opts.BufferFrames),
		right:    make([]float32, opts.BufferFrames),
		out:      make([]byte, opts.BufferFrames*bytesPerFrame),
		musicVol: 1,
	}
	e.soundVol.Store(math.Float64bits(1))
	return e
}

// Start launches the mixing goroutine.
func (e *SoftEngine) Start() {
	if !e.alive.CompareAndSwap(false, true) {
		return
	}
	go e.run()
}

func (e *SoftEngine) run() {
	defer close(e.done)
	for e.alive.Load() {
		buf := e.mixBuffer()
		if _, err := e.dev.Write(buf); err != nil {
			if e.alive.Load() {
				e.logger.Error("audio device write failed, stopping mixer", "error", err)
			}
			e.alive.Store(false)
			return
		}
	}
}

// Shutdown stops the mixer loop and closes the device.
func (e *SoftEngine) Shutdown() {
	wasAlive := e.alive.Swap(false)
	if err := e.dev.Close(); err != nil {
		e.logger.Warn("closing audio device", "error", err)
	}
	if wasAlive {
		<-e.done
	}
}

// mixBuffer renders one buffer of output.
func (e *SoftEngine) mixBuffer() []byte {
	e.mu.Lock()
	e.peak = e.mixer.Read(e.left, e.right, e.opts.SampleRate)
	if e.sequencer.Running() {
		e.sequencer.Advance(float64(len(e.left))/float64(e.opts.SampleRate), e.synth)
	}
	e.synth.Mix(e.left, e.right, e.opts.SampleRate)
	e.mu.Unlock()

	EncodeStereo16(e.out, e.left, e.right)
	return e.out
}

// EncodeStereo16 scales, clamps and interleaves two channels into out.
func EncodeStereo16(out []byte, left, right []float32) {
	for i := range left {
		l := clampSample(int(left[i] * outputGain))
		r := clampSample(int(right[i] * outputGain))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame:], uint16(int16(l)))
		binary.LittleEndian.PutUint16(out[i*bytesPerFrame+2:], uint16(int16(r)))
	}
}

func clampSample(v int) int {
	if v > outputBound {
		return outputBound
	}
	if v < -outputBound {
		return -outputBound
	}
	return v
}

func (e *SoftEngine) Play(sample *Sample, src Source, priority, rate float64) {
	if sample == nil || src == nil {
		return
	}
	req := playRequest{sample: sample, source: src, priority: priority, rate: rate, volume: e.SoundVolume()}
	select {
	case e.requests <- req:
	default:
		e.dropped.Add(1)
	}
}

func (e *SoftEngine) ClientTick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for drained := false; !drained; {
		select {
		case req := <-e.requests:
			e.mixer.Add(NewSamplePlayer(req.sample, req.rate), req.source, req.volume, req.priority)
			e.played.Add(1)
		default:
			drained = true
		}
	}
	e.mixer.Update()
}

func (e *SoftEngine) SetListener(l Source) {
	e.mu.Lock()
	e.mixer.SetListener(l)
	e.mu.Unlock()
}

// StartMusic loops seq until StopMusic or another StartMusic.
func (e *SoftEngine) StartMusic(seq *Sequence) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.synth.Reset()
	e.sequencer.Start(seq, true)
	e.broadcastVolume()
}

func (e *SoftEngine) StopMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sequencer.Stop()
	e.synth.Reset()
}

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// SetMusicVolume clamps v to [0,1] and sends it as channel volume to all
// sixteen channels.
func (e *SoftEngine) SetMusicVolume(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.musicVol = clampVolume(v)
	e.broadcastVolume()
}

func (e *SoftEngine) broadcastVolume() {
	val := uint8(e.musicVol * 127)
	for ch := uint8(0); ch < midiChannels; ch++ {
		e.synth.Send(midi.ControlChange(ch, VolumeController, val))
	}
}

func (e *SoftEngine) MusicVolume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.musicVol
}

// SetSoundVolume clamps v to [0,1]. It applies to sounds played afterwards.
func (e *SoftEngine) SetSoundVolume(v float64) {
	e.soundVol.Store(math.Float64bits(clampVolume(v)))
}

func (e *SoftEngine) SoundVolume() float64 {
	return math.Float64frombits(e.soundVol.Load())
}

func (e *SoftEngine) SampleRate() int { return e.opts.SampleRate }

// Stats reports request counters and the last mixed peak.
func (e *SoftEngine) Stats() (played, dropped uint64, peak float32) {
	e.mu.Lock()
	peak = e.peak
	e.mu.Unlock()
	return e.played.Load(), e.dropped.Load(), peak
}

// Live is the number of sounds currently in the mixer.
func (e *SoftEngine) Live() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len()
}

// NopEngine is used when no audio device is available.
type NopEngine struct {
	musicVol, soundVol float64
}

func NewNopEngine() *NopEngine { return &NopEngine{musicVol: 1, soundVol: 1} }

func (n *NopEngine) Play(*Sample, Source, float64, float64) {}
func (n *NopEngine) ClientTick() {}
func (n *NopEngine) SetListener(Source) {}
func (n *NopEngine) StartMusic(*Sequence) {}
func (n *NopEngine) StopMusic() {}
func (n *NopEngine) SetMusicVolume(v float64) { n.musicVol = clampVolume(v) }
func (n *NopEngine) MusicVolume() float64 { return n.musicVol }
func (n *NopEngine) SetSoundVolume(v float64) { n.soundVol = clampVolume(v) }
func (n *NopEngine) SoundVolume() float64 { return n.soundVol }
func (n *NopEngine) SampleRate() int { return DefaultSampleRate }
func (n *NopEngine) Shutdown() {}
