package scene

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/level"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/sound"
)

type testAssets struct {
	sheets map[string]*component.Sheet
}

func (a *testAssets) Sheet(name string) *component.Sheet {
	if s, ok := a.sheets[name]; ok {
		return s
	}
	var s *component.Sheet
	switch name {
	case titleSheet:
		s = component.UniformSheet(name, 1, 1, 800, 1280)
	case titleLogoSheet:
		s = component.UniformSheet(name, 1, 1, 400, 80)
	default:
		s = component.UniformSheet(name, 1, 8, 32, 48)
	}
	a.sheets[name] = s
	return s
}

func (a *testAssets) Sample(name string) *sound.Sample {
	return sound.NewSample(name, []float32{0}, sound.DefaultSampleRate)
}

func (a *testAssets) Sequence(name string) *sound.Sequence {
	return &sound.Sequence{Name: name}
}

type testSound struct {
	*sound.NopEngine
	played   []string
	music    []string
	listener sound.Source
}

func (s *testSound) Play(sample *sound.Sample, src sound.Source, priority, rate float64) {
	s.played = append(s.played, sample.Name)
}

func (s *testSound) StartMusic(seq *sound.Sequence) {
	s.music = append(s.music, seq.Name)
}

func (s *testSound) SetListener(l sound.Source) { s.listener = l }

type testEnv struct {
	ctx      *Context
	sound    *testSound
	switched []Scene
}

const (
	crateTile    byte = 1
	platformTile byte = 2
	ceilingTile  byte = 3
)

func testBehaviors() *level.Behaviors {
	b := level.NewBehaviors()
	b.Set(crateTile, level.BlockAll)
	b.Set(platformTile, level.BlockLower)
	b.Set(ceilingTile, level.BlockUpper)
	return b
}

// testMap is 200x20 tiles with a crate at (10,19), a one-way platform at
// (20,14), a ceiling tile at (30,10), a long one-way platform on row 14 from
// column 150 to 185 and a wall filling rows 15-19 of column 190.
func testMap(b *level.Behaviors) *level.Level {
	l := level.New(200, 20, b)
	l.SetBlock(10, 19, crateTile)
	l.SetBlock(20, 14, platformTile)
	l.SetBlock(30, 10, ceilingTile)
	for x := 150; x <= 185; x++ {
		l.SetBlock(x, 14, platformTile)
	}
	for y := 15; y < 20; y++ {
		l.SetBlock(190, y, crateTile)
	}
	return l
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	set, err := prefabs.LoadSet("level1.yaml")
	if err != nil {
		t.Fatalf("LoadSet: %v", err)
	}
	env := &testEnv{sound: &testSound{NopEngine: sound.NewNopEngine()}}
	b := testBehaviors()
	env.ctx = &Context{
		Keys:      input.NewKeys(),
		Sound:     env.sound,
		Physics:   physics.NewEngine(),
		Assets:    &testAssets{sheets: map[string]*component.Sheet{}},
		Behaviors: b,
		Prefabs:   set,
		Logger:    log.New(io.Discard),
		LoadLevel: func(string) (*level.Level, error) { return testMap(b), nil },
		Switch:    func(next Scene) { env.switched = append(env.switched, next) },
		Width:     800,
		Height:    640,
		TPS:       24,
		Tile:      32,
	}
	return env
}

// step holds the given actions for n ticks of sc, latching the key table
// before each tick.
func (env *testEnv) step(sc interface{ Tick() }, n int, held ...input.Action) {
	for _, a := range held {
		env.ctx.Keys.Toggle(a, true)
	}
	for i := 0; i < n; i++ {
		env.ctx.Keys.Latch()
		sc.Tick()
	}
	for _, a := range held {
		env.ctx.Keys.Toggle(a, false)
	}
}

func (env *testEnv) count(name string) int {
	n := 0
	for _, p := range env.sound.played {
		if p == name {
			n++
		}
	}
	return n
}
