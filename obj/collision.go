package obj

// Striker is a projectile that can hit other sprites.
type Striker interface {
	Entity
	// Strike applies the hit to target if they touch and reports whether
	// it did.
	Strike(target *Sprite) bool
	// Damage is what one hit costs a Damageable target.
	Damage() float64
}

// Damageable is an entity that loses health when struck.
type Damageable interface {
	Hurt(amount float64)
}

// knock pushes target along dir and lifts it off the ground.
func knock(target *Sprite, dir int, force float64) {
	if force == 0 {
		return
	}
	if dir < 0 {
		target.XA -= force
	} else {
		target.XA += force
	}
	target.Standing = false
}

// ResolveStrikes applies every striker to every target except the player
// that owns them and returns the number of hits. Damageable targets are
// hurt by each hit.
func ResolveStrikes(strikers []Striker, targets []Entity) int {
	hits := 0
	for _, s := range strikers {
		for _, t := range targets {
			if _, ok := t.(*Player); ok {
				continue
			}
			if !s.Strike(t.Base()) {
				continue
			}
			hits++
			if d, ok := t.(Damageable); ok {
				d.Hurt(s.Damage())
			}
		}
	}
	return hits
}
