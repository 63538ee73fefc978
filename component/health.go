package component

// Health is a hit point pool with a short invulnerability window that the
// owner starts after each hit.
type Health struct {
	Max     float64
	Current float64
	IFrames int
	Dead    bool

	OnDeath func(h *Health)
}

// NewHealth creates a full pool of max hit points.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount unless the pool is invulnerable or already
// dead, and reports whether it did.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.Dead || h.IFrames > 0 || amount <= 0 {
		return false
	}
	h.Current = max(h.Current-amount, 0)
	if h.Current == 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
	}
	return true
}

func (h *Health) Heal(amount float64) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current = min(h.Current+amount, h.Max)
}

func (h *Health) StartIFrames(frames int) {
	if h == nil || frames <= 0 {
		return
	}
	h.IFrames = frames
}

// Tick counts down the invulnerability window.
func (h *Health) Tick() {
	if h == nil || h.IFrames <= 0 {
		return
	}
	h.IFrames--
}

// SetMax changes the pool size, keeping Current within it.
func (h *Health) SetMax(v float64) {
	if h == nil {
		return
	}
	if v <= 0 {
		v = 1
	}
	h.Max = v
	h.Current = min(h.Current, h.Max)
}
