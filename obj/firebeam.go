package obj

import (
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/render"
)

// Firebeam is the player's held attack. It stays attached to the player
// until the attack key is released and replays its sample while alive.
type Firebeam struct {
	Sprite

	player    *Player
	spec      *prefabs.ProjectileSpec
	tier      prefabs.FirebeamTierSpec
	tick      int
	soundTick int
	soundStep int
}

func NewFirebeam(p *Player, spec *prefabs.ProjectileSpec) *Firebeam {
	step := int(float64(p.world.TPS()) * spec.SoundLength)
	b := &Firebeam{
		Sprite:    newSprite(p.world, physics.NoPhysics, p.X, p.Y),
		player:    p,
		spec:      spec,
		tier:      p.tierSpec().Firebeam,
		soundTick: step,
		soundStep: step,
	}
	sheet := p.world.Assets().Sheet(b.tier.Sheet)
	b.SetAnim(sheet, component.NewAnimation(sheet, 0, spec.AnimInterval))
	b.fitToFrame()
	b.Dir = p.Dir
	b.Move()
	b.SaveOld()
	b.play(b.sample())
	return b
}

func (b *Firebeam) sample() string {
	return prefabs.SampleFor(b.spec.Audio, "spawn", "player_firebeam")
}

func (b *Firebeam) Tick() {
	b.tick++
	b.SaveOld()
	if b.soundStep > 0 && b.tick == b.soundTick {
		b.play(b.sample())
		b.soundTick += b.soundStep
	}
	b.Move()
	b.UpdateCoords()
	b.Animate()
}

// Move keeps the beam at the player's mouth for the current tier.
func (b *Firebeam) Move() {
	w := float64(b.player.anim.Width())
	if b.player.Dir < 0 {
		b.X = b.player.X + w*b.tier.XLeft
	} else {
		b.X = b.player.X + w*b.tier.XRight
	}
	b.Y = b.player.Y + float64(b.player.anim.Height())*b.tier.YOffset
}

func (b *Firebeam) Animate() {
	b.anim.Advance()
}

// Strike pushes target for as long as the beam touches it.
func (b *Firebeam) Strike(target *Sprite) bool {
	box := b.Sprite
	if b.Dir < 0 {
		box.X -= float64(b.W)
	}
	if !box.Overlaps(target) {
		return false
	}
	knock(target, b.Dir, b.spec.Knockback)
	return true
}

func (b *Firebeam) Damage() float64 { return b.spec.Damage }

func (b *Firebeam) Render(s render.Surface, camX, camY, alpha float64) {
	b.Interpolate(alpha)
	x := b.AnimX - camX
	if b.Dir < 0 {
		x -= float64(b.anim.Width())
	}
	y := b.screenTop(b.AnimY, b.anim.Height()) - camY
	b.drawFrame(s, x, y, b.Dir < 0)
}
