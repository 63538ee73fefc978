package obj

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/render"
)

// Attack identifies the player's current attack.
type Attack int

const (
	NoAttack Attack = iota
	Attack1
	Attack2
	Attack3
)

const (
	actionIdle    = "idle"
	actionWalking = "walking"
	actionAttack1 = "attack1"
	actionAttack2 = "attack2"

	jumpFrame = 1
	fallFrame = 2
)

// Player is the controllable character. It walks, jumps, punches, casts a
// firebeam and evolves through the tiers of its spec.
type Player struct {
	Sprite

	spec     *prefabs.PlayerSpec
	punch    *prefabs.ProjectileSpec
	firebeam *prefabs.ProjectileSpec
	rnd      *rand.Rand

	tick       int
	jumpTime   int
	tier       int
	speedBonus float64
	punchLimit int
	correction float64
	action     string

	curAttack Attack
	canAttack bool
	canEvolve bool

	punches []*Punch
	beams   []*Firebeam
}

// NewPlayer spawns the player at its prefab transform.
func NewPlayer(w World, form *physics.Form, spec *prefabs.PlayerSpec, punch, firebeam *prefabs.ProjectileSpec) *Player {
	p := &Player{
		Sprite:     newSprite(w, form, spec.Transform.X, spec.Transform.Y),
		spec:       spec,
		punch:      punch,
		firebeam:   firebeam,
		rnd:        rand.New(rand.NewPCG(uint64(spec.Transform.X), uint64(spec.Transform.Y))),
		speedBonus: 1,
		canAttack:  true,
		canEvolve:  true,
	}
	p.OnGround = true
	p.punchLimit = p.tierSpec().PunchLimit
	p.setAction(actionIdle, component.NewAnimation(p.sheetFor(actionIdle), 0, spec.AnimInterval))
	p.fitToFrame()
	return p
}

func (p *Player) tierSpec() prefabs.TierSpec {
	return p.spec.Tiers[p.tier]
}

func (p *Player) sheetFor(action string) *component.Sheet {
	return p.world.Assets().Sheet(p.tierSpec().Sheet(action))
}

func (p *Player) setAction(action string, a *component.Animation) {
	p.action = action
	p.SetAnim(a.Sheet(), a)
}

// Tier is the current evolution stage, starting at 0.
func (p *Player) Tier() int { return p.tier }

func (p *Player) CurAttack() Attack { return p.curAttack }

func (p *Player) CanAttack() bool { return p.canAttack }

func (p *Player) CanEvolve() bool { return p.canEvolve }

func (p *Player) SpeedBonus() float64 { return p.speedBonus }

func (p *Player) Punches() []*Punch { return p.punches }

func (p *Player) Firebeams() []*Firebeam { return p.beams }

// Strikers returns the live projectiles that can hit other sprites.
func (p *Player) Strikers() []Striker {
	out := make([]Striker, 0, len(p.punches)+len(p.beams))
	for _, pu := range p.punches {
		out = append(out, pu)
	}
	for _, b := range p.beams {
		out = append(out, b)
	}
	return out
}

// Apply swaps in reloaded tuning. The tier is clamped to the new tier list.
func (p *Player) Apply(spec *prefabs.PlayerSpec, punch, firebeam *prefabs.ProjectileSpec) {
	if spec == nil || len(spec.Tiers) == 0 {
		return
	}
	p.spec = spec
	if punch != nil {
		p.punch = punch
	}
	if firebeam != nil {
		p.firebeam = firebeam
	}
	if p.tier >= len(spec.Tiers) {
		p.tier = 0
		p.speedBonus = 1
	}
	p.punchLimit = p.tierSpec().PunchLimit
}

func (p *Player) Tick() {
	p.tick++
	p.SaveOld()
	if p.tick > p.spec.StartingTick {
		p.Move()
		ev := p.UpdateCoords()
		if ev.Has(physics.EventTerminalFall) && p.curAttack == NoAttack && !p.OnGround {
			p.fall()
		}
		p.checkAttack()
		p.checkEvolve()
		p.punches = slices.DeleteFunc(p.punches, func(pu *Punch) bool { return pu.Dead })
		p.beams = slices.DeleteFunc(p.beams, func(b *Firebeam) bool { return b.Dead })
	}
	p.Animate()

	for _, pu := range p.punches {
		pu.Tick()
	}
	for _, b := range p.beams {
		b.Tick()
	}
}

// Move reads the key table and sets the player's velocity.
func (p *Player) Move() {
	keys := p.world.Keys()
	free := p.curAttack == NoAttack && !keys.Down(input.Attack1)

	if keys.Down(input.Right) && free {
		p.moveSideways(1)
	} else if keys.Down(input.Left) && free {
		p.moveSideways(-1)
	}

	if keys.Down(input.Jump) && !p.Jumping && p.OnGround && free {
		p.jump()
	}

	p.moveUpDown()
}

func (p *Player) moveSideways(dir int) {
	p.Standing = false
	p.SetDir(dir)
	switch {
	case !p.Jumping && p.OnGround && p.curAttack == NoAttack:
		p.XA += float64(dir) * p.spec.GroundSpeed * p.speedBonus
	case p.curAttack != NoAttack && !p.Jumping && p.OnGround:
		return
	default:
		p.XA += float64(dir) * p.spec.AirSpeed * p.speedBonus
	}
}

func (p *Player) jump() {
	p.play(prefabs.SampleFor(p.spec.Audio, "jump", "player_jump"))
	p.Jumping = true
	p.OnGround = false
	sheet := p.sheetFor(actionWalking)
	p.setAction(actionWalking, component.NewAnimationRange(sheet, 0, p.spec.AnimInterval, 1, jumpFrame, jumpFrame))
	p.jumpTime = p.spec.JumpTicks
}

func (p *Player) moveUpDown() {
	switch {
	case p.jumpTime > 0:
		p.YA += p.spec.UpwaySpeed
		p.jumpTime--
	case p.YA > 0 && p.YA < p.spec.JumpWatershed && !p.OnGround:
		p.YA = p.Form.DownwaySpeed
		if p.curAttack == NoAttack {
			p.fall()
		}
	case p.YA < 0 && p.YA > p.Form.FallingSpeedLimit && !p.OnGround:
		p.YA = math.Max(p.YA*physics.Gravity, p.Form.FallingSpeedLimit)
	}
}

// fall shows the falling frame of the walking sheet.
func (p *Player) fall() {
	sheet := p.sheetFor(actionWalking)
	p.setAction(actionWalking, component.NewAnimationRange(sheet, 0, p.spec.AnimInterval, 1, fallFrame, fallFrame))
}

func (p *Player) checkAttack() {
	if !p.canAttack {
		return
	}
	keys := p.world.Keys()
	switch {
	case keys.Down(input.Attack3):
		p.attack(Attack3)
	case keys.Down(input.Attack2):
		p.attack(Attack2)
	case keys.Down(input.Attack1):
		p.attack(Attack1)
	}
}

// attack starts an attack and blocks new ones until it ends. Unknown
// attacks fall back to the punch.
func (p *Player) attack(a Attack) {
	p.canAttack = false
	if a < Attack1 || a > Attack3 {
		a = Attack1
	}
	p.curAttack = a
}

func (p *Player) checkEvolve() {
	held := p.world.Keys().Down(input.Evolve)
	if held && p.canEvolve {
		p.Evolve()
	} else if !held {
		p.canEvolve = true
	}
	if (!p.OnGround || p.Jumping || p.curAttack != NoAttack) && p.canEvolve {
		p.canEvolve = false
	}
}

// Evolve moves to the next tier, wrapping back to the first after the last.
func (p *Player) Evolve() {
	p.play(prefabs.SampleFor(p.spec.Audio, "evolve", "evolve"))
	p.tier++
	p.speedBonus += p.spec.TierSpeedBonus
	if p.tier >= len(p.spec.Tiers) {
		p.tier = 0
		p.speedBonus = 1
	}
	p.punchLimit = p.tierSpec().PunchLimit
	p.canEvolve = false
}

func (p *Player) Animate() {
	switch p.curAttack {
	case Attack1:
		p.animateAttack1()
	case Attack2:
		p.animateAttack2()
	case Attack3:
		p.curAttack = NoAttack
		p.canAttack = true
	}
	if p.curAttack == NoAttack {
		p.animateIdle()
	}

	p.anim.Advance()

	p.correction = 0
	if p.Dir > 0 && p.action == actionAttack2 {
		p.correction = p.tierSpec().RenderCorrection
	}
	w := p.anim.Width()
	p.W = int(float64(w) - float64(w)*p.correction)
	p.H = p.anim.Height()
}

func (p *Player) animateAttack1() {
	if p.action != actionAttack1 {
		sheet := p.sheetFor(actionAttack1)
		p.setAction(actionAttack1, component.NewLoopedAnimation(sheet, 0, p.spec.AttackInterval, 1))
		p.generatePunch()
	}
	if p.anim.Finished() {
		p.curAttack = NoAttack
		p.canAttack = true
	}
}

func (p *Player) animateAttack2() {
	held := p.world.Keys().Down(input.Attack2)
	start := p.tierSpec().Attack2Start
	if p.action != actionAttack2 {
		sheet := p.sheetFor(actionAttack2)
		p.setAction(actionAttack2, component.NewAnimationRange(sheet, 0, p.spec.AttackInterval, 1, 0, start-1))
	}
	if p.anim.Finished() && held {
		p.setAction(actionAttack2, component.NewAnimationFrom(p.anim.Sheet(), 0, p.spec.AttackInterval, component.InfiniteLoops, start))
		p.generateFirebeam()
	}
	if !held {
		for _, b := range p.beams {
			b.Die()
		}
		p.curAttack = NoAttack
		p.canAttack = true
	}
}

func (p *Player) animateIdle() {
	switch {
	case p.Standing && p.OnGround && p.action != actionIdle:
		p.setAction(actionIdle, component.NewAnimation(p.sheetFor(actionIdle), 0, p.spec.AnimInterval))
	case !p.Standing && p.OnGround && p.action != actionWalking:
		p.setAction(actionWalking, component.NewAnimation(p.sheetFor(actionWalking), 0, p.spec.AnimInterval))
	}
}

func (p *Player) generatePunch() {
	if len(p.punches) >= p.punchLimit {
		return
	}
	h := float64(p.anim.Height())
	y := p.Y + h*p.spec.PunchYOffset - p.rnd.Float64()*p.spec.PunchRandom*h
	p.punches = append(p.punches, NewPunch(p, p.punch, y))
}

func (p *Player) generateFirebeam() {
	if len(p.beams) >= p.spec.FirebeamLimit {
		return
	}
	p.beams = append(p.beams, NewFirebeam(p, p.firebeam))
}

func (p *Player) Render(s render.Surface, camX, camY, alpha float64) {
	p.Interpolate(alpha)
	p.AnimX -= float64(p.anim.Width()) * p.correction
	x := p.AnimX - camX
	y := p.screenTop(p.AnimY, p.anim.Height()) - camY
	// Sheets face left.
	p.drawFrame(s, x, y, p.Dir > 0)

	for _, pu := range p.punches {
		pu.Render(s, camX, camY, alpha)
	}
	for _, b := range p.beams {
		b.Render(s, camX, camY, alpha)
	}
}
