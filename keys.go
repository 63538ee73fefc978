package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/jumpscroller/config"
	"github.com/milk9111/jumpscroller/input"
)

// bindings maps each action to the keyboard keys that drive it.
type bindings map[input.Action][]ebiten.Key

func newBindings(cfg config.Config) (bindings, error) {
	named, err := cfg.Bindings()
	if err != nil {
		return nil, err
	}
	out := bindings{}
	for a, names := range named {
		for _, n := range names {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(n)); err != nil {
				return nil, fmt.Errorf("key %q for %s: %w", n, a, err)
			}
			out[a] = append(out[a], k)
		}
	}
	return out, nil
}

// poll turns keyboard state into toggle edges. A key pressed and released
// within one frame still produces a press edge.
func (b bindings) poll(keys *input.Keys) {
	for a, ks := range b {
		just, held := false, false
		for _, k := range ks {
			just = just || inpututil.IsKeyJustPressed(k)
			held = held || ebiten.IsKeyPressed(k)
		}
		switch {
		case just:
			keys.Toggle(a, true)
			if !held {
				keys.Toggle(a, false)
			}
		case held != keys.Down(a):
			keys.Toggle(a, held)
		}
	}
}
