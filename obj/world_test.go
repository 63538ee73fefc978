package obj

import (
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/sound"
)

const (
	testFrameW = 32
	testFrameH = 48
)

type testAssets struct {
	sheets map[string]*component.Sheet
}

func (a *testAssets) Sheet(name string) *component.Sheet {
	if s, ok := a.sheets[name]; ok {
		return s
	}
	s := component.UniformSheet(name, 1, 8, testFrameW, testFrameH)
	a.sheets[name] = s
	return s
}

func (a *testAssets) Sample(name string) *sound.Sample {
	return sound.NewSample(name, []float32{0}, sound.DefaultSampleRate)
}

type recordingSound struct {
	*sound.NopEngine
	played []string
}

func (r *recordingSound) Play(s *sound.Sample, src sound.Source, priority, rate float64) {
	r.played = append(r.played, s.Name)
}

func (r *recordingSound) count(name string) int {
	n := 0
	for _, p := range r.played {
		if p == name {
			n++
		}
	}
	return n
}

type testWorld struct {
	keys    *input.Keys
	physics *physics.Engine
	sound   *recordingSound
	assets  *testAssets
	focus   *Sprite
}

func newTestWorld() *testWorld {
	return &testWorld{
		keys:    input.NewKeys(),
		physics: physics.NewEngine(),
		sound:   &recordingSound{NopEngine: sound.NewNopEngine()},
		assets:  &testAssets{sheets: map[string]*component.Sheet{}},
	}
}

func (w *testWorld) Keys() *input.Keys { return w.keys }
func (w *testWorld) Physics() *physics.Engine { return w.physics }
func (w *testWorld) Sound() sound.Engine { return w.sound }
func (w *testWorld) Assets() Assets { return w.assets }
func (w *testWorld) ScreenHeight() int { return 640 }
func (w *testWorld) TPS() int { return 24 }
func (w *testWorld) Focus() *Sprite { return w.focus }

func testPlayerSpec() *prefabs.PlayerSpec {
	tier := func(name, punch, beam string, limit int) prefabs.TierSpec {
		return prefabs.TierSpec{
			Name:             name,
			PunchLimit:       limit,
			Attack2Start:     6,
			RenderCorrection: 0.5,
			Punch:            punch,
			Firebeam:         prefabs.FirebeamTierSpec{Sheet: beam, YOffset: 0.05, XRight: 0.5},
		}
	}
	return &prefabs.PlayerSpec{
		Name:           "player",
		Transform:      prefabs.TransformSpec{X: 30, Y: 5},
		GroundSpeed:    6,
		AirSpeed:       2.5,
		JumpTicks:      7,
		UpwaySpeed:     6,
		JumpWatershed:  10,
		AnimInterval:   4,
		AttackInterval: 2,
		StartingTick:   12,
		TierSpeedBonus: 0.2,
		FirebeamLimit:  1,
		PunchYOffset:   0.4,
		PunchRandom:    0.2,
		Tiers: []prefabs.TierSpec{
			tier("ember", "punch1", "firebeam1", 2),
			tier("blaze", "punch2", "firebeam2", 3),
			tier("inferno", "punch3", "firebeam3", 4),
		},
	}
}

func testPunchSpec() *prefabs.ProjectileSpec {
	return &prefabs.ProjectileSpec{Name: "punch", AnimInterval: 3, OffsetLeft: 0.25, OffsetRight: 0.75, Knockback: 9, Damage: 1}
}

func testFirebeamSpec() *prefabs.ProjectileSpec {
	return &prefabs.ProjectileSpec{Name: "firebeam", AnimInterval: 3, SoundLength: 1.435, Knockback: 1.2, Damage: 0.5}
}

func newTestPlayer(w *testWorld) *Player {
	p := NewPlayer(w, physics.Normal, testPlayerSpec(), testPunchSpec(), testFirebeamSpec())
	w.focus = p.Base()
	return p
}

// warmUp runs the ticks during which the player ignores input.
func warmUp(p *Player) {
	for i := 0; i < p.spec.StartingTick; i++ {
		p.Tick()
	}
}

// hold ticks n times with the given actions held.
func hold(w *testWorld, e Entity, n int, actions ...input.Action) {
	for _, a := range actions {
		w.keys.Toggle(a, true)
	}
	for i := 0; i < n; i++ {
		w.keys.Latch()
		e.Tick()
	}
	for _, a := range actions {
		w.keys.Toggle(a, false)
	}
}
