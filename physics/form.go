// Package physics holds the per-entity physics profiles and the tick
// integrator that applies gravity, inertia and air drag to them.
package physics

// Form is an immutable physics capability profile. Speeds are in pixels per
// tick with y pointing up, so falling speeds are negative.
type Form struct {
	Name              string
	AirInertia        float64
	DownwaySpeed      float64
	FallingSpeedLimit float64
	GroundInertia     float64
}

var (
	// Normal is the profile of walking creatures.
	Normal = &Form{Name: "normal", AirInertia: 0.9, DownwaySpeed: -5, FallingSpeedLimit: -14, GroundInertia: 0.75}
	// Ball keeps almost all of its momentum.
	Ball = &Form{Name: "ball", AirInertia: 0.995, DownwaySpeed: -5, FallingSpeedLimit: -14, GroundInertia: 0.99}
	// NoPhysics marks bodies the integrator leaves alone.
	NoPhysics = &Form{Name: "nophysic"}
)

// Skips reports whether the integrator ignores bodies with this form.
func (f *Form) Skips() bool {
	return f == nil || (f.AirInertia == 0 && f.DownwaySpeed == 0 && f.FallingSpeedLimit == 0 && f.GroundInertia == 0)
}

// Forms is a name-indexed set of profiles.
type Forms map[string]*Form

// DefaultForms returns the built-in profiles.
func DefaultForms() Forms {
	return Forms{
		Normal.Name:    Normal,
		Ball.Name:      Ball,
		NoPhysics.Name: NoPhysics,
	}
}

// Lookup returns the named form, falling back to fallback when unknown.
func (fs Forms) Lookup(name string, fallback *Form) *Form {
	if f, ok := fs[name]; ok {
		return f
	}
	return fallback
}
