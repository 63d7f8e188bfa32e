// Package config provides YAML-based game configuration loading and
// difficulty management for the asteroid field.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// AsteroidsConfig contains all tunables of the asteroid-field simulation.
type AsteroidsConfig struct {
	World       WorldConfig       `yaml:"world"`
	Ship        ShipConfig        `yaml:"ship"`
	Bullets     BulletConfig      `yaml:"bullets"`
	Asteroids   AsteroidConfig    `yaml:"asteroids"`
	Particles   ParticleConfig    `yaml:"particles"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Gameplay    GameplayConfig    `yaml:"gameplay"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// WorldConfig defines the toroidal world size in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShipConfig defines ship handling. All rates are per tick.
type ShipConfig struct {
	Radius            float64 `yaml:"radius"`
	RotateSpeed       float64 `yaml:"rotate_speed"` // Radians per tick per held rotate control
	ThrustPower       float64 `yaml:"thrust_power"`
	Friction          float64 `yaml:"friction"`            // Velocity multiplier applied every tick
	RespawnGraceTicks int     `yaml:"respawn_grace_ticks"` // 0 = no invulnerability after a hit
}

// BulletConfig defines fire control.
type BulletConfig struct {
	Speed      float64 `yaml:"speed"`       // Muzzle speed added to ship velocity
	TTL        int     `yaml:"ttl"`         // Lifetime in ticks
	CooldownMS int     `yaml:"cooldown_ms"` // Minimum time between shots
}

// AsteroidConfig defines asteroid spawning and collision sizes.
type AsteroidConfig struct {
	BaseCount     int     `yaml:"base_count"`     // Level N spawns BaseCount+N large asteroids
	HitScale      float64 `yaml:"hit_scale"`      // Bullet collision radius = size * HitScale
	ShipHitScale  float64 `yaml:"ship_hit_scale"` // Ship collision radius = ship radius + size * ShipHitScale
	Speed         float64 `yaml:"speed"`          // Velocity span per axis for new asteroids
	SplitPerturb  float64 `yaml:"split_perturb"`  // Velocity span per axis added to fragments
	Spin          float64 `yaml:"spin"`           // Angular rate span (radians per tick)
	SafeRadius    float64 `yaml:"safe_radius"`    // No level asteroid spawns this close to the ship spawn
	ShapeVertices int     `yaml:"shape_vertices"`
	ShapeMin      float64 `yaml:"shape_min"` // Jagged radius multiplier range [ShapeMin, ShapeMax)
	ShapeMax      float64 `yaml:"shape_max"`
}

// ParticleConfig defines cosmetic explosion bursts.
type ParticleConfig struct {
	Life      int     `yaml:"life"`       // Ticks
	Speed     float64 `yaml:"speed"`      // Velocity span per axis
	HitCount  int     `yaml:"hit_count"`  // Particles per destroyed asteroid
	ShipCount int     `yaml:"ship_count"` // Particles per ship hit
}

// ScoringConfig defines points.
type ScoringConfig struct {
	PointsPerTier int `yaml:"points_per_tier"` // Size s awards (4-s)*PointsPerTier
}

// GameplayConfig defines lives and level pacing.
type GameplayConfig struct {
	StartLives      int `yaml:"start_lives"`
	StartDelayTicks int `yaml:"start_delay_ticks"` // Delay before the first field appears
	LevelDelayTicks int `yaml:"level_delay_ticks"` // Delay between a cleared field and the next
}

// LeaderboardConfig defines the high score table.
type LeaderboardConfig struct {
	Size         int  `yaml:"size"`
	NameMaxLen   int  `yaml:"name_max_len"`
	SeedDefaults bool `yaml:"seed_defaults"` // Pre-fill an empty board with the classic entries
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Levels after the first at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to asteroid speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty means "no preset".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate checks that the configuration describes a playable game.
func (c AsteroidsConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive, got %vx%v", ErrInvalid, c.World.Width, c.World.Height)
	case c.Ship.Radius <= 0:
		return fmt.Errorf("%w: ship radius must be positive", ErrInvalid)
	case c.Ship.Friction <= 0 || c.Ship.Friction > 1:
		return fmt.Errorf("%w: ship friction must be in (0, 1], got %v", ErrInvalid, c.Ship.Friction)
	case c.Ship.RespawnGraceTicks < 0:
		return fmt.Errorf("%w: respawn grace must not be negative", ErrInvalid)
	case c.Bullets.TTL < 1:
		return fmt.Errorf("%w: bullet ttl must be at least 1 tick", ErrInvalid)
	case c.Bullets.CooldownMS < 0:
		return fmt.Errorf("%w: bullet cooldown must not be negative", ErrInvalid)
	case c.Asteroids.BaseCount < 0:
		return fmt.Errorf("%w: asteroid base count must not be negative", ErrInvalid)
	case c.Asteroids.HitScale <= 0 || c.Asteroids.ShipHitScale < 0:
		return fmt.Errorf("%w: asteroid hit scales must be positive", ErrInvalid)
	case c.Asteroids.SafeRadius < 0:
		return fmt.Errorf("%w: safe radius must not be negative", ErrInvalid)
	case c.Asteroids.ShapeVertices < 3:
		return fmt.Errorf("%w: asteroid shape needs at least 3 vertices", ErrInvalid)
	case c.Asteroids.ShapeMin <= 0 || c.Asteroids.ShapeMax < c.Asteroids.ShapeMin:
		return fmt.Errorf("%w: asteroid shape range [%v, %v) is empty", ErrInvalid, c.Asteroids.ShapeMin, c.Asteroids.ShapeMax)
	case c.Particles.Life < 1:
		return fmt.Errorf("%w: particle life must be at least 1 tick", ErrInvalid)
	case c.Scoring.PointsPerTier < 0:
		return fmt.Errorf("%w: points per tier must not be negative", ErrInvalid)
	case c.Gameplay.StartLives < 1:
		return fmt.Errorf("%w: start lives must be at least 1", ErrInvalid)
	case c.Gameplay.StartDelayTicks < 0 || c.Gameplay.LevelDelayTicks < 0:
		return fmt.Errorf("%w: level delays must not be negative", ErrInvalid)
	case c.Leaderboard.Size < 1:
		return fmt.Errorf("%w: leaderboard size must be at least 1", ErrInvalid)
	case c.Difficulty.Progression.Type != "level" && c.Difficulty.Progression.Type != "none":
		return fmt.Errorf("%w: progression type must be level or none, got %q", ErrInvalid, c.Difficulty.Progression.Type)
	}

	// The safe zone must leave room somewhere in the world or InitializeLevel
	// would re-roll forever.
	halfDiagSq := (c.World.Width*c.World.Width + c.World.Height*c.World.Height) / 4
	if c.Asteroids.SafeRadius*c.Asteroids.SafeRadius >= halfDiagSq {
		return fmt.Errorf("%w: safe radius %v covers the whole world", ErrInvalid, c.Asteroids.SafeRadius)
	}
	return nil
}
