package scene

import (
	"testing"

	"github.com/milk9111/jumpscroller/input"
	"github.com/milk9111/jumpscroller/obj"
	"github.com/milk9111/jumpscroller/physics"
)

func newTestLevel(t *testing.T) (*testEnv, *Level) {
	t.Helper()
	env := newTestEnv(t)
	l := NewLevel(env.ctx, env.ctx.Prefabs)
	if err := l.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return env, l
}

func TestLevelInit(t *testing.T) {
	env, l := newTestLevel(t)

	if got := len(l.Entities()); got != 4 {
		t.Fatalf("expected player, ball and two props, got %d entities", got)
	}
	if l.Player() == nil || l.Ball() == nil {
		t.Fatalf("expected player and ball to be spawned")
	}
	if len(env.sound.music) != 1 || env.sound.music[0] != "level1" {
		t.Fatalf("expected level1 music, got %v", env.sound.music)
	}
	if env.sound.listener != l.Player() {
		t.Fatalf("expected player to be the listener")
	}
	if l.ScreenHeight() != 640 {
		t.Fatalf("expected 640px level height, got %d", l.ScreenHeight())
	}
}

func TestLevelCheckBlocks(t *testing.T) {
	tests := []struct {
		name     string
		sprite   obj.Sprite
		x, y     float64
		ya       float64
		onGround bool
	}{
		{
			name: "walks into crate",
			sprite: obj.Sprite{
				Body: physics.Body{X: 290, Y: 10, XA: 2},
				XOld: 280, YOld: 10, W: 32, H: 48,
			},
			x: 288, y: 10,
		},
		{
			name: "lands on platform",
			sprite: obj.Sprite{
				Body: physics.Body{X: 645, Y: 190, YA: -5},
				XOld: 645, YOld: 195, W: 10, H: 10,
			},
			x: 645, y: 192, ya: 0, onGround: true,
		},
		{
			name: "rises through platform",
			sprite: obj.Sprite{
				Body: physics.Body{X: 645, Y: 155, YA: 5},
				XOld: 645, YOld: 150, W: 10, H: 10,
			},
			x: 645, y: 155, ya: 5,
		},
		{
			name: "hits ceiling",
			sprite: obj.Sprite{
				Body: physics.Body{X: 965, Y: 280, YA: 5, Jumping: true},
				XOld: 965, YOld: 275, W: 10, H: 10,
			},
			x: 965, y: 278, ya: -5,
		},
		{
			name: "rises beside crate",
			sprite: obj.Sprite{
				Body: physics.Body{X: 288, Y: 15, YA: 5, Jumping: true},
				XOld: 288, YOld: 10, W: 32, H: 48,
			},
			x: 288, y: 15, ya: 5,
		},
		{
			name: "falls in open air",
			sprite: obj.Sprite{
				Body: physics.Body{X: 2000, Y: 300, YA: -5, OnGround: true},
				XOld: 2000, YOld: 305, W: 10, H: 10,
			},
			x: 2000, y: 300, ya: -5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, l := newTestLevel(t)
			s := tt.sprite
			s.Form = physics.Normal
			l.checkBlocks(&s)

			if s.X != tt.x || s.Y != tt.y {
				t.Fatalf("expected %v,%v, got %v,%v", tt.x, tt.y, s.X, s.Y)
			}
			if s.YA != tt.ya {
				t.Fatalf("expected ya %v, got %v", tt.ya, s.YA)
			}
			if s.OnGround != tt.onGround {
				t.Fatalf("expected onGround %v, got %v", tt.onGround, s.OnGround)
			}
		})
	}
}

// placePlayer moves the player after its start delay has passed.
func placePlayer(env *testEnv, l *Level, x, y float64) *obj.Player {
	p := l.Player()
	env.step(l, 15)
	p.X, p.Y = x, y
	p.XOld, p.YOld = x, y
	p.XA, p.YA = 0, 0
	p.Jumping = false
	p.OnGround = y <= 5
	return p
}

func TestLevelPlayerWalksAlongPlatform(t *testing.T) {
	env, l := newTestLevel(t)
	p := placePlayer(env, l, 4900, 300)

	env.step(l, 30)
	if p.Y != 192 || !p.OnGround {
		t.Fatalf("expected player to land on the platform, y=%v onGround=%v", p.Y, p.OnGround)
	}

	env.step(l, 12, input.Right)
	if p.X <= 4950 {
		t.Fatalf("expected player to walk right along the platform, x=%v", p.X)
	}
	if p.Y != 192 || !p.OnGround {
		t.Fatalf("expected player to stay on the platform, y=%v onGround=%v", p.Y, p.OnGround)
	}
}

func TestLevelPlayerWalksOffPlatform(t *testing.T) {
	env, l := newTestLevel(t)
	p := placePlayer(env, l, 5900, 300)
	env.step(l, 30)

	env.step(l, 20, input.Right)
	env.step(l, 40)
	if p.X <= 5952 || p.Y != 5 {
		t.Fatalf("expected player to drop off the platform end, x=%v y=%v", p.X, p.Y)
	}
}

func TestLevelPlayerStopsAtWall(t *testing.T) {
	env, l := newTestLevel(t)
	p := placePlayer(env, l, 5900, 5)

	env.step(l, 40, input.Right)
	if want := float64(190*32 - p.W); p.X != want {
		t.Fatalf("expected player stopped at the wall at x=%v, got %v", want, p.X)
	}
}

func TestLevelPlayerJumpsBesideWall(t *testing.T) {
	env, l := newTestLevel(t)
	p := placePlayer(env, l, 5900, 5)
	env.step(l, 40, input.Right)
	wallX := p.X

	env.step(l, 4, input.Jump)
	if p.Y <= 5 || !p.Jumping {
		t.Fatalf("expected jump beside the wall, y=%v jumping=%v", p.Y, p.Jumping)
	}
	if p.X != wallX {
		t.Fatalf("expected jump to keep x %v, got %v", wallX, p.X)
	}

	env.step(l, 60)
	if p.Y != 5 || !p.OnGround {
		t.Fatalf("expected player back on the ground beside the wall, y=%v onGround=%v", p.Y, p.OnGround)
	}
}

func TestLevelCheckBlocksSkipsNoPhysics(t *testing.T) {
	_, l := newTestLevel(t)
	s := obj.Sprite{
		Body: physics.Body{X: 290, Y: 10, XA: 2, Form: physics.NoPhysics},
		XOld: 280, YOld: 10, W: 32, H: 48,
	}
	l.checkBlocks(&s)
	if s.X != 290 {
		t.Fatalf("expected a NoPhysics sprite to stay at 290, got %v", s.X)
	}
}

func TestLevelCheckBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		wx   float64
		wy   float64
	}{
		{name: "below ground", x: 100, y: 2, wx: 100, wy: 5},
		{name: "left edge", x: -12, y: 50, wx: 0, wy: 50},
		{name: "right edge", x: 6390, y: 50, wx: 6350, wy: 50},
		{name: "inside", x: 3000, y: 200, wx: 3000, wy: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, l := newTestLevel(t)
			s := obj.Sprite{Body: physics.Body{X: tt.x, Y: tt.y, YA: -3, Form: physics.Normal}}
			l.checkBounds(&s)
			if s.X != tt.wx || s.Y != tt.wy {
				t.Fatalf("expected %v,%v, got %v,%v", tt.wx, tt.wy, s.X, s.Y)
			}
			if tt.y < 5 && (!s.OnGround || s.YA != 0) {
				t.Fatalf("expected landing on the ground line, onGround=%v ya=%v", s.OnGround, s.YA)
			}
		})
	}
}

func TestLevelMenuFreezesEntities(t *testing.T) {
	env, l := newTestLevel(t)
	env.step(l, 1, input.Menu)
	if !l.Menu().IsOpen() {
		t.Fatalf("expected menu to open")
	}

	p := l.Player()
	x, y := p.X, p.Y
	bx := l.Ball().X
	env.step(l, 30, input.Right)
	if p.X != x || p.Y != y || l.Ball().X != bx {
		t.Fatalf("entities moved while the menu was open")
	}
}

func TestLevelPlayerLandsOnGround(t *testing.T) {
	env, l := newTestLevel(t)
	env.step(l, 60)

	p := l.Player()
	if p.Y != 5 || !p.OnGround {
		t.Fatalf("expected player resting on the ground line, y=%v onGround=%v", p.Y, p.OnGround)
	}
	if x, _ := l.Camera().ViewTopLeft(); x != 0 {
		t.Fatalf("expected camera at the left edge, got %d", x)
	}
}
