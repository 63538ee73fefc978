package obj

import (
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
)

func testPropSpec(script string) *prefabs.PropSpec {
	return &prefabs.PropSpec{
		Name:         "bouncer",
		Sheet:        "bouncer",
		Script:       script,
		AnimInterval: 5,
		Audio:        []prefabs.AudioSpec{{Name: "bounce", File: "shell_bump"}},
	}
}

func TestScriptedBouncerHops(t *testing.T) {
	w := newTestWorld()
	w.focus = &Sprite{}
	w.focus.X, w.focus.Y = 5000, 5

	s, err := NewScripted(w, physics.Normal, testPropSpec("bouncer.tengo"), 100, 5)
	if err != nil {
		t.Fatalf("NewScripted: %v", err)
	}
	s.OnGround = true

	for i := 0; i < 39; i++ {
		s.Tick()
	}
	if s.Jumping {
		t.Fatalf("hopped too early")
	}
	s.Tick()

	if !s.Jumping || s.Y <= 5 {
		t.Fatalf("expected hop on tick 40, jumping=%v y=%v", s.Jumping, s.Y)
	}
	if w.sound.count("shell_bump") != 1 {
		t.Fatalf("expected mapped bounce sample, played %v", w.sound.played)
	}
	ticks, ok := s.State()["ticks"].(*tengo.Int)
	if !ok || ticks.Value != 40 {
		t.Fatalf("expected script state ticks 40, got %v", s.State()["ticks"])
	}
}

func TestScriptedBouncerChasesPlayer(t *testing.T) {
	w := newTestWorld()
	w.focus = &Sprite{}
	w.focus.X, w.focus.Y = 50, 5

	s, err := NewScripted(w, physics.Normal, testPropSpec("bouncer.tengo"), 100, 5)
	if err != nil {
		t.Fatalf("NewScripted: %v", err)
	}
	s.OnGround = true
	s.Tick()

	if s.XA >= 0 || s.Dir != -1 {
		t.Fatalf("expected drift left toward player, xa=%v dir=%d", s.XA, s.Dir)
	}
}

func TestScriptedMissingScript(t *testing.T) {
	w := newTestWorld()
	if _, err := NewScripted(w, physics.Normal, testPropSpec("missing.tengo"), 0, 5); err == nil {
		t.Fatalf("expected error for missing script")
	}
}

func TestAddGlobalsReportsBadValue(t *testing.T) {
	script := tengo.NewScript([]byte(`x := 1`))
	err := addGlobals(script, map[string]any{
		"__engine": map[string]any{},
		"__state":  make(chan int),
	})
	if err == nil {
		t.Fatalf("expected error for unconvertible global")
	}
	if err := addGlobals(script, map[string]any{"__engine": map[string]any{}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestScriptedHurtBouncerHopsSooner(t *testing.T) {
	w := newTestWorld()
	w.focus = &Sprite{}
	w.focus.X, w.focus.Y = 5000, 5

	spec := testPropSpec("bouncer.tengo")
	spec.Health = 3
	s, err := NewScripted(w, physics.Normal, spec, 100, 5)
	if err != nil {
		t.Fatalf("NewScripted: %v", err)
	}
	s.Hurt(2)
	s.OnGround = true

	for i := 0; i < 20; i++ {
		s.Tick()
	}
	if !s.Jumping {
		t.Fatalf("expected hurt bouncer to hop on tick 20")
	}
}
