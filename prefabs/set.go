package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/jumpscroller/physics"
)

// Set is every prefab a level scene needs.
type Set struct {
	Forms    physics.Forms
	Level    *LevelSpec
	Player   *PlayerSpec
	Ball     *BallSpec
	Punch    *ProjectileSpec
	Firebeam *ProjectileSpec
	Props    map[string]*PropSpec
}

// LoadSet loads the level spec and everything it references. Errors from
// individual props are joined so one bad prop does not hide the others.
func LoadSet(levelSpec string) (*Set, error) {
	forms, err := LoadForms()
	if err != nil {
		return nil, err
	}
	lvl, err := LoadLevelSpec(levelSpec)
	if err != nil {
		return nil, err
	}
	player, err := LoadPlayerSpec()
	if err != nil {
		return nil, err
	}
	ball, err := LoadBallSpec()
	if err != nil {
		return nil, err
	}
	punch, err := LoadProjectileSpec("punch.yaml")
	if err != nil {
		return nil, err
	}
	beam, err := LoadProjectileSpec("firebeam.yaml")
	if err != nil {
		return nil, err
	}

	set := &Set{
		Forms:    forms,
		Level:    lvl,
		Player:   player,
		Ball:     ball,
		Punch:    punch,
		Firebeam: beam,
		Props:    map[string]*PropSpec{},
	}
	var errs []error
	for _, p := range lvl.Props {
		if _, ok := set.Props[p.Prefab]; ok {
			continue
		}
		spec, err := LoadSpec[PropSpec](p.Prefab)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set.Props[p.Prefab] = &spec
	}
	if len(errs) > 0 {
		return set, fmt.Errorf("prefabs: props: %w", errors.Join(errs...))
	}
	return set, nil
}

// Form resolves a form name, defaulting to the normal profile.
func (s *Set) Form(name string) *physics.Form {
	if s == nil || s.Forms == nil {
		return physics.Normal
	}
	return s.Forms.Lookup(name, physics.Normal)
}
