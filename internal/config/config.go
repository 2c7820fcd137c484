// Package config provides YAML-based gameplay tunables and the map catalog
// for hitcircle, with embedded defaults and a user-overridable search path.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by lookups and validation.
var (
	ErrUnknownMap        = errors.New("config: unknown map")
	ErrUnknownDifficulty = errors.New("config: unknown difficulty")
	ErrInvalidConfig     = errors.New("config: invalid configuration")
)

// GameConfig contains every gameplay tunable of a round.
type GameConfig struct {
	Field   FieldConfig   `yaml:"field"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Ball    BallConfig    `yaml:"ball"`
	Player  PlayerConfig  `yaml:"player"`
	Session SessionConfig `yaml:"session"`
}

// FieldConfig defines the play field in simulation units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines paddle geometry, movement and the expand ability.
type PaddleConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Padding          float64 `yaml:"padding"`          // Gap between paddle and floor
	Speed            float64 `yaml:"speed"`            // Units per tick
	BoostMultiplier  float64 `yaml:"boost_multiplier"` // Speed factor while boost is held
	ExpandReach      float64 `yaml:"expand_reach"`     // Extra width per side at full expansion
	ExpandRate       float64 `yaml:"expand_rate"`      // Expansion gained per tick while expanding
	RetractRate      float64 `yaml:"retract_rate"`     // Expansion lost per tick while retracting
	ExpandCooldownMs int     `yaml:"expand_cooldown_ms"`
	DoubleTapMs      int     `yaml:"double_tap_ms"`
}

// BallConfig defines ball generation and lifecycle parameters.
type BallConfig struct {
	MinRadius      float64 `yaml:"min_radius"`
	MaxRadius      float64 `yaml:"max_radius"` // Exclusive
	MaxHealth      int     `yaml:"max_health"`
	Gravity        float64 `yaml:"gravity"`          // Added to vy per tick once active
	GravityAfterMs int     `yaml:"gravity_after_ms"` // Untouched time before gravity applies
	WarningAfterMs int     `yaml:"warning_after_ms"` // Untouched time before danger warning
	DisappearStep  float64 `yaml:"disappear_step"`   // Progress per tick while disappearing
	ClearBonus     float64 `yaml:"clear_bonus"`      // Score awarded when a ball is cleared
}

// PlayerConfig defines the overall health pool.
type PlayerConfig struct {
	MaxHealth       float64 `yaml:"max_health"`
	RegenAmount     float64 `yaml:"regen_amount"` // Negative values decay health
	RegenIntervalMs int     `yaml:"regen_interval_ms"`
}

// SessionConfig defines round-level timings.
type SessionConfig struct {
	RestartHoldMs        int `yaml:"restart_hold_ms"`
	DecorationIntervalMs int `yaml:"decoration_interval_ms"`
}

// Validate checks the configuration for values the simulation cannot run with.
func (c GameConfig) Validate() error {
	var problems []string
	check := func(ok bool, msg string) {
		if !ok {
			problems = append(problems, msg)
		}
	}

	check(c.Field.Width > 0 && c.Field.Height > 0, "field dimensions must be positive")
	check(c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle dimensions must be positive")
	check(c.Paddle.Width < c.Field.Width, "paddle must be narrower than the field")
	check(c.Paddle.Speed >= 0, "paddle speed must not be negative")
	check(c.Paddle.BoostMultiplier >= 1, "paddle boost_multiplier must be at least 1")
	check(c.Paddle.ExpandRate > 0 && c.Paddle.RetractRate > 0, "paddle expand/retract rates must be positive")
	check(c.Ball.MinRadius > 0, "ball min_radius must be positive")
	check(c.Ball.MaxRadius > c.Ball.MinRadius, "ball max_radius must exceed min_radius")
	check(c.Ball.MaxHealth >= 1 && c.Ball.MaxHealth <= 9, "ball max_health must be within [1, 9]")
	check(c.Ball.DisappearStep > 0, "ball disappear_step must be positive")
	check(c.Player.MaxHealth > 0, "player max_health must be positive")
	check(c.Player.RegenIntervalMs > 0, "player regen_interval_ms must be positive")
	check(c.Session.RestartHoldMs >= 0, "session restart_hold_ms must not be negative")
	check(c.Session.DecorationIntervalMs > 0, "session decoration_interval_ms must be positive")

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Catalog is the ordered list of playable maps.
type Catalog struct {
	Maps []MapConfig `yaml:"maps"`
}

// MapConfig is one playable map with its difficulty tiers.
type MapConfig struct {
	ID           string           `yaml:"id" json:"id"`
	Name         string           `yaml:"name" json:"name"`
	Artist       string           `yaml:"artist" json:"artist"`
	Description  string           `yaml:"description" json:"description"`
	Difficulties []DifficultyTier `yaml:"difficulties" json:"difficulties"`
}

// DifficultyTier specifies how many balls a round starts with and how fast.
type DifficultyTier struct {
	Name             string  `yaml:"name" json:"name"`
	BallCount        int     `yaml:"ball_count" json:"ball_count"`
	InitialBallSpeed float64 `yaml:"initial_ball_speed" json:"initial_ball_speed"`
}

// Selection is a resolved map and difficulty tier.
type Selection struct {
	Map        MapConfig
	Difficulty DifficultyTier
}

// Label returns "Map Name [Difficulty]".
func (s Selection) Label() string {
	return fmt.Sprintf("%s [%s]", s.Map.Name, s.Difficulty.Name)
}

// Validate checks map ids are unique and every tier is playable.
func (c Catalog) Validate() error {
	if len(c.Maps) == 0 {
		return fmt.Errorf("%w: catalog has no maps", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(c.Maps))
	for _, m := range c.Maps {
		if m.ID == "" {
			return fmt.Errorf("%w: map %q has no id", ErrInvalidConfig, m.Name)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: duplicate map id %q", ErrInvalidConfig, m.ID)
		}
		seen[m.ID] = true

		if len(m.Difficulties) == 0 {
			return fmt.Errorf("%w: map %q has no difficulties", ErrInvalidConfig, m.ID)
		}
		for _, d := range m.Difficulties {
			if d.BallCount < 1 {
				return fmt.Errorf("%w: map %q difficulty %q needs at least one ball", ErrInvalidConfig, m.ID, d.Name)
			}
			if d.InitialBallSpeed <= 0 {
				return fmt.Errorf("%w: map %q difficulty %q needs a positive speed", ErrInvalidConfig, m.ID, d.Name)
			}
		}
	}
	return nil
}

// Map returns the map with the given id.
func (c Catalog) Map(id string) (MapConfig, error) {
	for _, m := range c.Maps {
		if m.ID == id {
			return m, nil
		}
	}
	return MapConfig{}, fmt.Errorf("%w: %q", ErrUnknownMap, id)
}

// Difficulty returns the tier with the given name, compared case-insensitively.
func (m MapConfig) Difficulty(name string) (DifficultyTier, error) {
	for _, d := range m.Difficulties {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return DifficultyTier{}, fmt.Errorf("%w: %q on map %q", ErrUnknownDifficulty, name, m.ID)
}

// Lookup resolves a map id and difficulty name into a Selection.
func (c Catalog) Lookup(mapID, difficulty string) (Selection, error) {
	m, err := c.Map(mapID)
	if err != nil {
		return Selection{}, err
	}
	d, err := m.Difficulty(difficulty)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Map: m, Difficulty: d}, nil
}
