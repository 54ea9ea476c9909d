package config

import "math"

// DifficultyManager calculates generation parameters from game progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// moves played. A disabled manager stays at level 0.
func (d *DifficultyManager) Level(score, moves int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type == "none" {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "moves":
		progress = float64(moves) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ChallengeBaseline returns the challenge baseline for the given progress.
func (d *DifficultyManager) ChallengeBaseline(base, score, moves int) int {
	level := d.Level(score, moves)
	return base + int(math.Round(level*float64(d.cfg.Scaling.BaselineGrowth)))
}

// EmptyWeight returns the empty segment weight for the given progress.
// Sparser tiles are harder to combine into large groups.
func (d *DifficultyManager) EmptyWeight(base, score, moves int) int {
	level := d.Level(score, moves)
	return base + int(math.Round(level*float64(d.cfg.Scaling.EmptyWeightGrowth)))
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
