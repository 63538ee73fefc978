// Package input holds the logical key-state table read by entities.
package input

import (
	"fmt"
	"strings"
)

// Action is a logical input.
type Action int

const (
	Left Action = iota
	Right
	Down
	Up
	Jump
	Attack1
	Attack2
	Attack3
	Evolve
	Menu
	Enter

	ActionCount
)

var actionNames = [ActionCount]string{
	"left", "right", "down", "up", "jump",
	"attack1", "attack2", "attack3", "evolve", "menu", "enter",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction maps a config name to an action.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("input: unknown action %q", name)
}

// Keys is the key-state table. The input collaborator toggles it on press
// and release edges; entities read it once per tick.
type Keys struct {
	down    [ActionCount]bool
	pressed [ActionCount]bool
	latched [ActionCount]bool
}

func NewKeys() *Keys {
	return &Keys{}
}

// Toggle records a press or release edge.
func (k *Keys) Toggle(a Action, pressed bool) {
	if a < 0 || a >= ActionCount {
		return
	}
	if pressed && !k.down[a] {
		k.pressed[a] = true
	}
	k.down[a] = pressed
}

// Down reports whether a is held.
func (k *Keys) Down(a Action) bool {
	if a < 0 || a >= ActionCount {
		return false
	}
	return k.down[a]
}

// Pressed reports whether a went down since the previous Latch.
func (k *Keys) Pressed(a Action) bool {
	if a < 0 || a >= ActionCount {
		return false
	}
	return k.latched[a]
}

// Latch publishes the press edges gathered since the previous tick. Call
// once at the start of each tick.
func (k *Keys) Latch() {
	k.latched = k.pressed
	k.pressed = [ActionCount]bool{}
}

// Clear releases every key, used when the window loses focus.
func (k *Keys) Clear() {
	k.down = [ActionCount]bool{}
	k.pressed = [ActionCount]bool{}
	k.latched = [ActionCount]bool{}
}

// Snapshot copies the held state.
func (k *Keys) Snapshot() [ActionCount]bool {
	return k.down
}
