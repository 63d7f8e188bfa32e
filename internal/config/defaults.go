package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

// DefaultAsteroidsConfig returns the classic asteroid-field configuration:
// a 600x400 world, three lives and 4+level rocks per field.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		World: WorldConfig{
			Width:  600,
			Height: 400,
		},
		Ship: ShipConfig{
			Radius:      8,
			RotateSpeed: 0.15,
			ThrustPower: 0.3,
			Friction:    0.98,
		},
		Bullets: BulletConfig{
			Speed:      8,
			TTL:        60,
			CooldownMS: 150,
		},
		Asteroids: AsteroidConfig{
			BaseCount:     4,
			HitScale:      8,
			ShipHitScale:  6,
			Speed:         2,
			SplitPerturb:  2,
			Spin:          0.1,
			SafeRadius:    100,
			ShapeVertices: 8,
			ShapeMin:      0.8,
			ShapeMax:      1.2,
		},
		Particles: ParticleConfig{
			Life:      30,
			Speed:     4,
			HitCount:  8,
			ShipCount: 15,
		},
		Scoring: ScoringConfig{
			PointsPerTier: 50,
		},
		Gameplay: GameplayConfig{
			StartLives:      3,
			StartDelayTicks: 6,  // 100ms at 60fps
			LevelDelayTicks: 60, // 1s at 60fps
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
		Leaderboard: LeaderboardConfig{
			Size:         10,
			NameMaxLen:   12,
			SeedDefaults: true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultAsteroidsYAML
}
