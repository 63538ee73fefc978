package obj

import (
	"math"

	"github.com/milk9111/jumpscroller/common"
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/render"
)

// Testball bounces on its own with ever smaller jumps. The movement keys
// steer it and Attack3 resets it to the top of the screen.
type Testball struct {
	Sprite

	spec     *prefabs.BallSpec
	jumpTime int
	jumps    int
}

func NewTestball(w World, form *physics.Form, spec *prefabs.BallSpec) *Testball {
	b := &Testball{
		Sprite: newSprite(w, form, spec.Transform.X, spec.Transform.Y),
		spec:   spec,
		jumps:  spec.MaxJumps,
	}
	sheet := w.Assets().Sheet(spec.Sheet)
	b.SetAnim(sheet, component.NewAnimationRange(sheet, 0, spec.AnimInterval, component.InfiniteLoops, 0, 0))
	b.fitToFrame()
	return b
}

// Jumps is the number of bounces left.
func (b *Testball) Jumps() int { return b.jumps }

// Apply swaps in reloaded tuning.
func (b *Testball) Apply(spec *prefabs.BallSpec) {
	if spec != nil {
		b.spec = spec
	}
}

func (b *Testball) Tick() {
	b.SaveOld()
	b.Move()
	b.UpdateCoords()
	b.Animate()
}

func (b *Testball) Move() {
	keys := b.world.Keys()
	if keys.Down(input.Attack3) {
		b.reset()
	}

	if keys.Down(input.Right) {
		b.moveSideways(1)
	} else if keys.Down(input.Left) {
		b.moveSideways(-1)
	}

	if !b.Jumping && b.OnGround && b.jumps > 0 {
		b.jumps--
		b.jump()
	}

	b.moveUpDown()
}

func (b *Testball) reset() {
	b.Y = float64(b.world.ScreenHeight() - b.H)
	b.OnGround = false
	b.Jumping = false
	b.Standing = true
	b.XA = 0
	b.YA = 0
	b.jumps = b.spec.MaxJumps
}

func (b *Testball) moveSideways(dir int) {
	b.Standing = false
	b.SetDir(dir)
	speed := b.spec.AirSpeed
	if !b.Jumping && b.OnGround {
		speed = b.spec.GroundSpeed
	}
	b.XA = common.Clamp(b.XA+float64(dir)*speed, -b.spec.SpeedLimit, b.spec.SpeedLimit)
}

func (b *Testball) jump() {
	b.play(prefabs.SampleFor(b.spec.Audio, "bump", "shell_bump"))
	b.Jumping = true
	b.OnGround = false
	b.jumpTime = b.jumps
}

func (b *Testball) moveUpDown() {
	switch {
	case b.jumpTime > 0:
		b.YA += b.spec.UpwaySpeed
		b.jumpTime--
	case b.YA > 0 && b.YA < b.spec.JumpWatershed && !b.OnGround:
		b.YA = b.Form.DownwaySpeed
	case b.YA < 0 && b.YA > b.Form.FallingSpeedLimit && !b.OnGround:
		b.YA = math.Max(b.YA*physics.Gravity, b.Form.FallingSpeedLimit)
	}
}

// Animate is a no-op; the ball has a single frame.
func (b *Testball) Animate() {}

func (b *Testball) Render(s render.Surface, camX, camY, alpha float64) {
	b.Interpolate(alpha)
	y := b.screenTop(b.AnimY, b.anim.Height()) - camY
	b.drawFrame(s, b.AnimX-camX, y, false)
}
