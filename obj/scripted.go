package obj

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/render"
)

// scriptedWatershed is the upward speed below which a scripted jump turns
// into a fall.
const scriptedWatershed = 1.0

// hitBlink is the period in ticks of the flicker shown while a prop is
// invulnerable.
const hitBlink = 2

const scriptDispatch = `
update(__engine, __state)
`

// Scripted is a prop whose movement comes from a tengo script. The script
// defines update(engine, state) and is run once per tick; state is a map
// that survives between ticks. Props with health break when struck enough.
type Scripted struct {
	Sprite

	spec     *prefabs.PropSpec
	compiled *tengo.Compiled
	state    *tengo.Map
	engine   *tengo.ImmutableMap
	health   *component.Health
	tick     int
	failed   bool
}

// NewScripted compiles the prop's script and places it at x, y.
func NewScripted(w World, form *physics.Form, spec *prefabs.PropSpec, x, y float64) (*Scripted, error) {
	s := &Scripted{
		Sprite: newSprite(w, form, x, y),
		state:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.engine = s.buildEngine()
	if err := s.Apply(spec); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply swaps in a reloaded spec and recompiles its script. On error the
// previous script keeps running.
func (s *Scripted) Apply(spec *prefabs.PropSpec) error {
	if spec == nil {
		return fmt.Errorf("obj: scripted: nil spec")
	}
	compiled, err := compileScript(spec.Script)
	if err != nil {
		return fmt.Errorf("obj: scripted %s: %w", spec.Name, err)
	}
	s.spec = spec
	s.compiled = compiled
	s.failed = false
	s.applyHealth(spec.Health)
	sheet := s.world.Assets().Sheet(spec.Sheet)
	s.SetAnim(sheet, component.NewAnimation(sheet, 0, spec.AnimInterval))
	s.fitToFrame()
	return nil
}

// applyHealth resizes the pool on reload; a zero value makes the prop
// unbreakable.
func (s *Scripted) applyHealth(hp float64) {
	switch {
	case hp <= 0:
		s.health = nil
	case s.health == nil:
		s.health = component.NewHealth(hp)
		s.health.OnDeath = func(*component.Health) {
			s.play(prefabs.SampleFor(s.spec.Audio, "defeat", ""))
			s.Die()
		}
	default:
		s.health.SetMax(hp)
	}
}

// Health is nil for unbreakable props.
func (s *Scripted) Health() *component.Health { return s.health }

// Hurt takes amount off the prop's health and starts its hit window.
func (s *Scripted) Hurt(amount float64) {
	if s.health.ApplyDamage(amount) {
		s.health.StartIFrames(s.spec.HitFrames)
		s.play(prefabs.SampleFor(s.spec.Audio, "hit", ""))
	}
}

func compileScript(name string) (*tengo.Compiled, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	script := tengo.NewScript(append(src, []byte(scriptDispatch)...))
	if err := addGlobals(script, map[string]any{
		"__engine": map[string]any{},
		"__state":  map[string]any{},
	}); err != nil {
		return nil, err
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// addGlobals declares each global on script in name order.
func addGlobals(script *tengo.Script, globals map[string]any) error {
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := script.Add(name, globals[name]); err != nil {
			return fmt.Errorf("script global %s: %w", name, err)
		}
	}
	return nil
}

// Name is the prop's prefab name.
func (s *Scripted) Name() string { return s.spec.Name }

// State exposes the script's persistent state.
func (s *Scripted) State() map[string]tengo.Object { return s.state.Value }

func (s *Scripted) Tick() {
	s.tick++
	s.SaveOld()
	s.Move()
	s.UpdateCoords()
	s.Animate()
	s.health.Tick()
}

// Move runs the script, then turns a spent jump into a fall.
func (s *Scripted) Move() {
	if err := s.run(); err != nil && !s.failed {
		s.failed = true
		log.Warn("prop script failed", "prop", s.spec.Name, "err", err)
	}

	switch {
	case s.Jumping && s.YA > 0 && s.YA < scriptedWatershed:
		s.YA = s.Form.DownwaySpeed
	case s.YA < 0 && s.YA > s.Form.FallingSpeedLimit && !s.OnGround:
		s.YA = math.Max(s.YA*physics.Gravity, s.Form.FallingSpeedLimit)
	}
}

func (s *Scripted) run() error {
	if s.compiled == nil {
		return nil
	}
	if err := s.compiled.Set("__engine", s.engine); err != nil {
		return err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *Scripted) Animate() {
	s.anim.Advance()
}

func (s *Scripted) Render(r render.Surface, camX, camY, alpha float64) {
	s.Interpolate(alpha)
	if h := s.health; h != nil && h.IFrames > 0 && (h.IFrames/hitBlink)%2 == 1 {
		return
	}
	y := s.screenTop(s.AnimY, s.anim.Height()) - camY
	s.drawFrame(r, s.AnimX-camX, y, s.Dir < 0)
}

func pair(a, b float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: a}, &tengo.Float{Value: b}}}
}

func floatArgs(args []tengo.Object, n int) ([]float64, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]float64, n)
	for i := range out {
		v, ok := tengo.ToFloat64(args[i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func (s *Scripted) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pair(s.X, s.Y), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return pair(s.XA, s.YA), nil
	}}

	values["player_position"] = &tengo.UserFunction{Name: "player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		f := s.world.Focus()
		if f == nil {
			return pair(s.X, s.Y), nil
		}
		return pair(f.X, f.Y), nil
	}}

	values["on_ground"] = &tengo.UserFunction{Name: "on_ground", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(s.OnGround), nil
	}}

	values["tick"] = &tengo.UserFunction{Name: "tick", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(s.tick)}, nil
	}}

	values["set_velocity"] = &tengo.UserFunction{Name: "set_velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := floatArgs(args, 2)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.XA, s.YA = v[0], v[1]
		return tengo.TrueValue, nil
	}}

	values["push"] = &tengo.UserFunction{Name: "push", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := floatArgs(args, 2)
		if !ok {
			return tengo.FalseValue, nil
		}
		s.XA += v[0]
		s.YA += v[1]
		if v[0] != 0 {
			s.Standing = false
			s.SetDir(int(math.Copysign(1, v[0])))
		}
		return tengo.TrueValue, nil
	}}

	values["jump"] = &tengo.UserFunction{Name: "jump", Value: func(args ...tengo.Object) (tengo.Object, error) {
		v, ok := floatArgs(args, 1)
		if !ok || !s.OnGround || s.Jumping {
			return tengo.FalseValue, nil
		}
		s.YA = v[0]
		s.Jumping = true
		s.OnGround = false
		return tengo.TrueValue, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if s.health == nil {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Float{Value: s.health.Current}, nil
	}}

	values["play"] = &tengo.UserFunction{Name: "play", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, ok := tengo.ToString(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		s.play(prefabs.SampleFor(s.spec.Audio, name, name))
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
