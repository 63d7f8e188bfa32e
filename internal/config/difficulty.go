package config

import "github.com/vovakirdan/astroidz/internal/core"

// DifficultyManager scales asteroid speed as the player clears fields.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a game level (1-based).
// Disabled progression, or progression type "none", always yields 0 so
// asteroids keep their base speed.
func (d *DifficultyManager) Level(gameLevel int) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := core.ClampF(float64(gameLevel-1)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// SpeedScale returns the asteroid velocity multiplier for a game level.
// It grows from 1 to 1 + speedMultiplier.
func (d *DifficultyManager) SpeedScale(gameLevel int) float64 {
	return 1.0 + d.Level(gameLevel)*d.cfg.Scaling.SpeedMultiplier
}
