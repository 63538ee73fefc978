package scene

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/milk9111/jumpscroller/common"
	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/level"
	"github.com/milk9111/jumpscroller/obj"
	"github.com/milk9111/jumpscroller/physics"
	"github.com/milk9111/jumpscroller/prefabs"
	"github.com/milk9111/jumpscroller/render"
	"github.com/milk9111/jumpscroller/sound"
)

const (
	defaultEndOffset    = 50
	defaultGroundStripe = 100
)

var (
	defaultBackground = color.NRGBA{R: 0x5c, G: 0x94, B: 0xfc, A: 0xff}
	groundColor       = color.NRGBA{A: 0xff}
	stripeColor       = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// Level plays one level: it ticks the entities, resolves them against the
// tile map and keeps the camera on the player.
type Level struct {
	ctx *Context
	set *prefabs.Set

	level  *level.Level
	tiles  *level.Renderer
	camera *obj.Camera
	menu   *Menu

	player   *obj.Player
	ball     *obj.Testball
	props    map[*obj.Scripted]string
	entities []obj.Entity

	tick int
}

func NewLevel(ctx *Context, set *prefabs.Set) *Level {
	return &Level{ctx: ctx, set: set, props: map[*obj.Scripted]string{}}
}

func (l *Level) Init() error {
	spec := l.set.Level
	lvl, err := l.ctx.LoadLevel(spec.File)
	if err != nil {
		return fmt.Errorf("scene: level %s: %w", spec.Name, err)
	}
	l.level = lvl
	l.tiles = level.NewRenderer(lvl, l.ctx.Assets.Sheet(spec.TileSheet), l.ctx.Tile)
	l.tiles.ShowBehaviors = l.ctx.Debug
	l.camera = obj.NewCamera(l.ctx.Width, l.ctx.Height)
	l.camera.SetWorldBounds(lvl.PixelSize(l.ctx.Tile))
	l.menu = NewMenu(l.ctx.Keys, l.ctx.Sound, l.ctx.OnVolume)

	l.player = obj.NewPlayer(l, l.set.Form(l.set.Player.Form), l.set.Player, l.set.Punch, l.set.Firebeam)
	l.ball = obj.NewTestball(l, l.set.Form(l.set.Ball.Form), l.set.Ball)
	l.Add(l.ball)
	l.Add(l.player)

	for _, p := range spec.Props {
		ps, ok := l.set.Props[p.Prefab]
		if !ok {
			l.ctx.logger().Warn("unknown prop", "prefab", p.Prefab)
			continue
		}
		s, err := obj.NewScripted(l, l.set.Form(ps.Form), ps, p.Transform.X, p.Transform.Y)
		if err != nil {
			l.ctx.logger().Warn("prop not spawned", "prefab", p.Prefab, "err", err)
			continue
		}
		l.props[s] = p.Prefab
		l.Add(s)
	}

	l.ctx.Sound.SetListener(l.player)
	l.ctx.startMusic(spec.Song)
	l.followPlayer()
	l.ctx.logger().Info("level started", "name", spec.Name, "entities", len(l.entities))
	return nil
}

// Add appends an entity; entities tick and render in insertion order.
func (l *Level) Add(e obj.Entity) {
	l.entities = append(l.entities, e)
}

func (l *Level) Entities() []obj.Entity { return l.entities }

func (l *Level) Player() *obj.Player { return l.player }

func (l *Level) Ball() *obj.Testball { return l.ball }

func (l *Level) Camera() *obj.Camera { return l.camera }

func (l *Level) Menu() *Menu { return l.menu }

// Map is the tile map being played.
func (l *Level) Map() *level.Level { return l.level }

func (l *Level) Keys() *input.Keys { return l.ctx.Keys }

func (l *Level) Physics() *physics.Engine { return l.ctx.Physics }

func (l *Level) Sound() sound.Engine { return l.ctx.Sound }

func (l *Level) Assets() obj.Assets { return l.ctx.Assets }

// ScreenHeight is the level height in pixels; sprite y is measured up from
// its bottom edge.
func (l *Level) ScreenHeight() int {
	_, h := l.level.PixelSize(l.ctx.Tile)
	return h
}

func (l *Level) TPS() int { return l.ctx.TPS }

func (l *Level) Focus() *obj.Sprite {
	if l.player == nil {
		return nil
	}
	return l.player.Base()
}

func (l *Level) Tick() {
	if l.menu.IsOpen() {
		l.menu.Tick()
		return
	}
	if l.ctx.Keys.Pressed(input.Menu) {
		l.menu.Open()
		return
	}

	l.tick++
	l.tiles.Tick()
	for _, e := range l.entities {
		e.Tick()
		s := e.Base()
		l.checkBlocks(s)
		l.checkBounds(s)
	}

	obj.ResolveStrikes(l.player.Strikers(), l.entities)
	l.entities = slices.DeleteFunc(l.entities, func(e obj.Entity) bool {
		if e.Base().Dead {
			if s, ok := e.(*obj.Scripted); ok {
				delete(l.props, s)
			}
			return true
		}
		return false
	})

	l.followPlayer()
	l.ctx.Sound.SetListener(l.player)
}

func (l *Level) followPlayer() {
	l.camera.FollowSprite(l.player.Base(), l.ScreenHeight())
}

// edgeSlack keeps an edge lying exactly on a tile boundary out of the next
// tile.
const edgeSlack = 1e-6

// checkBlocks resolves the sprite against the tile map one axis at a time,
// horizontal first. Only cells the leading edge entered this tick are
// tested, so a tile the sprite already touches never holds it. A blocked
// sideways move stops at the tile edge, a blocked fall lands the sprite and
// a blocked rise turns into a fall.
func (l *Level) checkBlocks(s *obj.Sprite) {
	if s.Form.Skips() {
		return
	}
	l.blockX(s)
	l.blockY(s)
}

// cols returns the first and last tile columns covered by a sprite at x.
func (l *Level) cols(x float64, w int) (left, right int) {
	t := l.ctx.Tile
	return common.FloorDiv(x, t), common.FloorDiv(x+float64(w)-edgeSlack, t)
}

// rows returns the first and last tile rows covered by a sprite whose
// bottom edge is at y.
func (l *Level) rows(y float64, h int) (top, bottom int) {
	t := l.ctx.Tile
	height := float64(l.ScreenHeight())
	return common.FloorDiv(height-y-float64(h), t), common.FloorDiv(height-y-edgeSlack, t)
}

// blocks reports whether a tile inside the grid stops motion (xa, ya).
// Nothing outside the grid blocks.
func (l *Level) blocks(x, y int, xa, ya float64) bool {
	if x < 0 || y < 0 || x >= l.level.Width() || y >= l.level.Height() {
		return false
	}
	return l.level.IsBlocking(x, y, xa, ya)
}

func (l *Level) blockX(s *obj.Sprite) {
	dx := s.X - s.XOld
	if dx == 0 {
		return
	}
	t := l.ctx.Tile
	top, bottom := l.rows(s.YOld, s.H)
	column := func(c int) bool {
		for r := top; r <= bottom; r++ {
			if l.blocks(c, r, dx, 0) {
				return true
			}
		}
		return false
	}

	oldLeft, oldRight := l.cols(s.XOld, s.W)
	left, right := l.cols(s.X, s.W)
	if dx > 0 {
		for c := oldRight + 1; c <= right; c++ {
			if column(c) {
				s.X = float64(c*t - s.W)
				return
			}
		}
		return
	}
	for c := oldLeft - 1; c >= left; c-- {
		if column(c) {
			s.X = float64((c + 1) * t)
			return
		}
	}
}

func (l *Level) blockY(s *obj.Sprite) {
	dy := s.Y - s.YOld
	t := l.ctx.Tile
	height := l.ScreenHeight()
	left, right := l.cols(s.X, s.W)
	row := func(r int) bool {
		for c := left; c <= right; c++ {
			if l.blocks(c, r, 0, dy) {
				return true
			}
		}
		return false
	}

	switch {
	case dy < 0:
		_, oldBottom := l.rows(s.YOld, s.H)
		_, bottom := l.rows(s.Y, s.H)
		for r := oldBottom + 1; r <= bottom; r++ {
			if row(r) {
				s.Y = float64(height - r*t)
				s.YA = 0
				s.OnGround = true
				s.Jumping = false
				return
			}
		}
	case dy > 0:
		oldTop, _ := l.rows(s.YOld, s.H)
		top, _ := l.rows(s.Y, s.H)
		for r := oldTop - 1; r >= top; r-- {
			if row(r) {
				s.Y = float64(height - (r+1)*t - s.H)
				s.YA = s.Form.DownwaySpeed
				return
			}
		}
	}
	if s.YA < 0 && s.Y > l.ctx.Physics.GroundHeight {
		s.OnGround = false
	}
}

// checkBounds keeps the sprite above the ground line and inside the level.
func (l *Level) checkBounds(s *obj.Sprite) {
	ground := l.ctx.Physics.GroundHeight
	if s.Y < ground {
		s.Y = ground
		s.YA = 0
		s.OnGround = true
		s.Jumping = false
	}

	end := l.set.Level.EndOffset
	if end == 0 {
		end = defaultEndOffset
	}
	w, _ := l.level.PixelSize(l.ctx.Tile)
	s.X = common.Clamp(s.X, 0, float64(w)-end)
}

// Reload applies a reloaded prefab set to the running level without
// respawning anything.
func (l *Level) Reload(set *prefabs.Set) {
	if set == nil {
		return
	}
	l.set = set
	l.player.Form = set.Form(set.Player.Form)
	l.player.Apply(set.Player, set.Punch, set.Firebeam)
	l.ball.Form = set.Form(set.Ball.Form)
	l.ball.Apply(set.Ball)
	for s, name := range l.props {
		spec, ok := set.Props[name]
		if !ok {
			continue
		}
		s.Form = set.Form(spec.Form)
		if err := s.Apply(spec); err != nil {
			l.ctx.logger().Warn("prop reload failed", "prefab", name, "err", err)
		}
	}
	l.ctx.logger().Info("prefabs reloaded", "level", set.Level.Name)
}

func (l *Level) Render(s render.Surface, alpha float64) {
	w, h := s.Size()
	var bg color.Color = defaultBackground
	if l.set.Level.Background != nil {
		bg = l.set.Level.Background.Color
	}
	s.FillRect(0, 0, float64(w), float64(h), bg)

	camX, camY := l.camera.X, l.camera.Y
	l.tiles.Render(s, int(camX), int(camY))
	l.renderGround(s, camX, camY)

	for _, e := range l.entities {
		e.Render(s, camX, camY, alpha)
	}

	if l.ctx.Debug {
		p := l.player
		s.DrawText(fmt.Sprintf("X: %.0f Y: %.0f XA: %.1f YA: %.1f", p.X, p.Y, p.XA, p.YA), 4, 4)
		s.DrawText(fmt.Sprintf("Tier: %d Attack: %d Punches: %d Beams: %d", p.Tier(), p.CurAttack(), len(p.Punches()), len(p.Firebeams())), 4, 18)
		s.DrawText(fmt.Sprintf("Ball jumps: %d", l.ball.Jumps()), 4, 32)
	}
	l.menu.Render(s)
}

// renderGround draws the ground line with stripes that scroll with the
// level so movement is visible on empty stretches.
func (l *Level) renderGround(s render.Surface, camX, camY float64) {
	w, _ := s.Size()
	ground := l.ctx.Physics.GroundHeight
	top := float64(l.ScreenHeight()) - ground - camY
	s.FillRect(0, top, float64(w), ground, groundColor)

	stripe := l.set.Level.GroundStripe
	if stripe <= 0 {
		stripe = defaultGroundStripe
	}
	levelW, _ := l.level.PixelSize(l.ctx.Tile)
	for x := 0; x < levelW; x += stripe * 2 {
		sx := float64(x) - camX
		if sx+float64(stripe) < 0 || sx > float64(w) {
			continue
		}
		s.FillRect(sx, top, float64(stripe), ground, stripeColor)
	}
}
