package sound

// SamplePlayer plays a sample once with nearest-neighbour resampling.
type SamplePlayer struct {
	sample *Sample
	rate   float64
	pos    float64
	alive  bool
}

// NewSamplePlayer plays sample at rate times its native speed.
func NewSamplePlayer(sample *Sample, rate float64) *SamplePlayer {
	return &SamplePlayer{sample: sample, rate: rate, alive: true}
}

func (p *SamplePlayer) step(readRate int) float64 {
	return p.sample.Rate * p.rate / float64(readRate)
}

func (p *SamplePlayer) Read(buf []float32, readRate int) float32 {
	step := p.step(readRate)
	n := float64(len(p.sample.Buf))
	for i := range buf {
		if p.pos >= n {
			buf[i] = 0
			p.alive = false
		} else {
			buf[i] = p.sample.Buf[int(p.pos)]
		}
		p.pos += step
	}
	return 1
}

func (p *SamplePlayer) Skip(n, readRate int) {
	p.pos += p.step(readRate) * float64(n)
	if p.pos >= float64(len(p.sample.Buf)) {
		p.alive = false
	}
}

func (p *SamplePlayer) Live() bool { return p.alive }

// Position is the fractional read index.
func (p *SamplePlayer) Position() float64 { return p.pos }
