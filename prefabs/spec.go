package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/jumpscroller/physics"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// SampleFor returns the sample mapped to name, or fallback.
func SampleFor(list []AudioSpec, name, fallback string) string {
	for _, a := range list {
		if a.Name == name && a.File != "" {
			return a.File
		}
	}
	return fallback
}

type TransformSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type FormSpec struct {
	AirInertia        float64 `yaml:"air_inertia"`
	DownwaySpeed      float64 `yaml:"downway_speed"`
	FallingSpeedLimit float64 `yaml:"falling_speed_limit"`
	GroundInertia     float64 `yaml:"ground_inertia"`
}

// LoadForms reads forms.yaml on top of the built-in profiles.
func LoadForms() (physics.Forms, error) {
	forms := physics.DefaultForms()
	specs, err := LoadSpec[map[string]FormSpec]("forms.yaml")
	if err != nil {
		return forms, err
	}
	for name, s := range specs {
		forms[name] = &physics.Form{
			Name:              name,
			AirInertia:        s.AirInertia,
			DownwaySpeed:      s.DownwaySpeed,
			FallingSpeedLimit: s.FallingSpeedLimit,
			GroundInertia:     s.GroundInertia,
		}
	}
	return forms, nil
}

type FirebeamTierSpec struct {
	Sheet   string  `yaml:"sheet"`
	YOffset float64 `yaml:"y_offset"`
	XLeft   float64 `yaml:"x_left"`
	XRight  float64 `yaml:"x_right"`
}

// TierSpec describes one evolution stage of the player.
type TierSpec struct {
	Name             string           `yaml:"name"`
	PunchLimit       int              `yaml:"punch_limit"`
	Attack2Start     int              `yaml:"attack2_start"`
	RenderCorrection float64          `yaml:"render_correction"`
	Punch            string           `yaml:"punch"`
	Firebeam         FirebeamTierSpec `yaml:"firebeam"`
}

// Sheet names the tier's sheet for an action such as "idle".
func (t TierSpec) Sheet(action string) string {
	return t.Name + "_" + action
}

type PlayerSpec struct {
	Name           string        `yaml:"name"`
	Form           string        `yaml:"form"`
	Transform      TransformSpec `yaml:"transform"`
	GroundSpeed    float64       `yaml:"ground_speed"`
	AirSpeed       float64       `yaml:"air_speed"`
	JumpTicks      int           `yaml:"jump_ticks"`
	UpwaySpeed     float64       `yaml:"upway_speed"`
	JumpWatershed  float64       `yaml:"jump_watershed"`
	AnimInterval   int           `yaml:"anim_interval"`
	AttackInterval int           `yaml:"attack_interval"`
	StartingTick   int           `yaml:"starting_tick"`
	TierSpeedBonus float64       `yaml:"tier_speed_bonus"`
	FirebeamLimit  int           `yaml:"firebeam_limit"`
	PunchYOffset   float64       `yaml:"punch_y_offset"`
	PunchRandom    float64       `yaml:"punch_random"`
	Tiers          []TierSpec    `yaml:"tiers"`
	Audio          []AudioSpec   `yaml:"audio"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if len(spec.Tiers) == 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: no tiers")
	}
	return &spec, nil
}

type BallSpec struct {
	Name          string        `yaml:"name"`
	Form          string        `yaml:"form"`
	Sheet         string        `yaml:"sheet"`
	Transform     TransformSpec `yaml:"transform"`
	GroundSpeed   float64       `yaml:"ground_speed"`
	AirSpeed      float64       `yaml:"air_speed"`
	SpeedLimit    float64       `yaml:"speed_limit"`
	UpwaySpeed    float64       `yaml:"upway_speed"`
	JumpWatershed float64       `yaml:"jump_watershed"`
	MaxJumps      int           `yaml:"max_jumps"`
	AnimInterval  int           `yaml:"anim_interval"`
	Audio         []AudioSpec   `yaml:"audio"`
}

func LoadBallSpec() (*BallSpec, error) {
	spec, err := LoadSpec[BallSpec]("testball.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ProjectileSpec tunes punches and firebeams.
type ProjectileSpec struct {
	Name         string      `yaml:"name"`
	AnimInterval int         `yaml:"anim_interval"`
	OffsetLeft   float64     `yaml:"offset_left"`
	OffsetRight  float64     `yaml:"offset_right"`
	SoundLength  float64     `yaml:"sound_length"`
	Knockback    float64     `yaml:"knockback"`
	Damage       float64     `yaml:"damage"`
	Audio        []AudioSpec `yaml:"audio"`
}

func LoadProjectileSpec(filename string) (*ProjectileSpec, error) {
	spec, err := LoadSpec[ProjectileSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// PropSpec is a scripted level object.
type PropSpec struct {
	Name         string        `yaml:"name"`
	Sheet        string        `yaml:"sheet"`
	Script       string        `yaml:"script"`
	Form         string        `yaml:"form"`
	AnimInterval int           `yaml:"anim_interval"`
	Transform    TransformSpec `yaml:"transform"`
	Health       float64       `yaml:"health"` // zero is unbreakable
	HitFrames    int           `yaml:"hit_frames"`
	Audio        []AudioSpec   `yaml:"audio"`
}

type PlacementSpec struct {
	Prefab    string        `yaml:"prefab"`
	Transform TransformSpec `yaml:"transform"`
}

// LevelSpec says what a level scene loads and spawns.
type LevelSpec struct {
	Name         string          `yaml:"name"`
	File         string          `yaml:"file"`
	Tiles        string          `yaml:"tiles"`
	TileSheet    string          `yaml:"tile_sheet"`
	Song         string          `yaml:"song"`
	Background   *YAMLColor      `yaml:"background"`
	EndOffset    float64         `yaml:"end_offset"`
	GroundStripe int             `yaml:"ground_stripe"`
	Player       string          `yaml:"player"`
	Ball         string          `yaml:"ball"`
	Props        []PlacementSpec `yaml:"props"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.File == "" {
		return nil, fmt.Errorf("prefabs: %s: no level file", filename)
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
