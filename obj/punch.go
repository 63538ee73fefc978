package obj

import (
	"github.com/milk9111/jumpscroller/component"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/render"
)

// Punch is a short lived fist thrown by the player. It follows the player
// horizontally and dies when its animation ends.
type Punch struct {
	Sprite

	player *Player
	spec   *prefabs.ProjectileSpec
	hit    map[*Sprite]bool
}

// NewPunch creates a punch whose bottom edge sits at y.
func NewPunch(p *Player, spec *prefabs.ProjectileSpec, y float64) *Punch {
	pu := &Punch{
		Sprite: newSprite(p.world, physics.NoPhysics, p.X, y),
		player: p,
		spec:   spec,
		hit:    map[*Sprite]bool{},
	}
	sheet := p.world.Assets().Sheet(p.tierSpec().Punch)
	pu.SetAnim(sheet, component.NewLoopedAnimation(sheet, 0, spec.AnimInterval, 1))
	pu.fitToFrame()
	pu.Dir = p.Dir
	pu.Move()
	pu.SaveOld()
	pu.play(prefabs.SampleFor(spec.Audio, "spawn", "player_punch"))
	return pu
}

func (pu *Punch) Tick() {
	pu.SaveOld()
	pu.Move()
	pu.UpdateCoords()
	pu.Animate()
}

// Move pins the punch in front of the player.
func (pu *Punch) Move() {
	w := float64(pu.player.anim.Width())
	if pu.Dir < 0 {
		pu.X = pu.player.X + w*pu.spec.OffsetLeft
	} else {
		pu.X = pu.player.X + w*pu.spec.OffsetRight
	}
}

func (pu *Punch) Animate() {
	pu.anim.Advance()
	if pu.anim.Finished() {
		pu.Die()
	}
}

// hitbox follows the drawn image, which extends left of X when facing left.
func (pu *Punch) hitbox() *Sprite {
	if pu.Dir >= 0 {
		return &pu.Sprite
	}
	box := pu.Sprite
	box.X -= float64(pu.W)
	return &box
}

// Strike knocks target away from the player once per punch.
func (pu *Punch) Strike(target *Sprite) bool {
	if pu.hit[target] || !pu.hitbox().Overlaps(target) {
		return false
	}
	pu.hit[target] = true
	knock(target, pu.Dir, pu.spec.Knockback)
	return true
}

func (pu *Punch) Damage() float64 { return pu.spec.Damage }

func (pu *Punch) Render(s render.Surface, camX, camY, alpha float64) {
	pu.Interpolate(alpha)
	x := pu.AnimX - camX
	if pu.Dir < 0 {
		x -= float64(pu.anim.Width())
	}
	y := pu.screenTop(pu.AnimY, pu.anim.Height()) - camY
	pu.drawFrame(s, x, y, pu.Dir < 0)
}
