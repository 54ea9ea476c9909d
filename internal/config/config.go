// Package config provides YAML-based game configuration loading and
// difficulty management for Depthscraper.
package config

import "fmt"

// MaxHandSize is the number of hand slots the keyboard can address.
const MaxHandSize = 3

// DepthscraperConfig contains all tunable rules of the game.
type DepthscraperConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Tiles      TilesConfig      `yaml:"tiles"`
	Moves      MovesConfig      `yaml:"moves"`
	Challenge  ChallengeConfig  `yaml:"challenge"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the tower geometry.
type BoardConfig struct {
	Segments      int `yaml:"segments"`       // Ring size of floors and tiles
	InitialFloors int `yaml:"initial_floors"` // Floors present at the start
}

// TilesConfig defines the hand and the random tile weights.
type TilesConfig struct {
	HandSize    int `yaml:"hand_size"`
	ColorWeight int `yaml:"color_weight"` // Weight of each of the three colors
	EmptyWeight int `yaml:"empty_weight"` // Weight of an empty segment
	MaxAttempts int `yaml:"max_attempts"` // Rejection sampling bound
}

// MovesConfig defines the move budget.
type MovesConfig struct {
	Initial int `yaml:"initial"`
}

// ChallengeConfig defines challenge generation.
type ChallengeConfig struct {
	Baseline     int `yaml:"baseline"`
	SizeJitter   int `yaml:"size_jitter"`
	RewardJitter int `yaml:"reward_jitter"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score or move count at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	BaselineGrowth    int `yaml:"baseline_growth"`     // Added to the challenge baseline at max difficulty
	EmptyWeightGrowth int `yaml:"empty_weight_growth"` // Added to the empty weight at max difficulty
}

// Validate rejects configurations the rules cannot run with.
func (c DepthscraperConfig) Validate() error {
	switch {
	case c.Board.Segments < 3:
		return fmt.Errorf("config: board.segments must be at least 3, got %d", c.Board.Segments)
	case c.Board.InitialFloors < 1:
		return fmt.Errorf("config: board.initial_floors must be at least 1, got %d", c.Board.InitialFloors)
	case c.Tiles.HandSize < 1 || c.Tiles.HandSize > MaxHandSize:
		return fmt.Errorf("config: tiles.hand_size must be between 1 and %d, got %d", MaxHandSize, c.Tiles.HandSize)
	case c.Tiles.ColorWeight < 1:
		return fmt.Errorf("config: tiles.color_weight must be positive, got %d", c.Tiles.ColorWeight)
	case c.Tiles.EmptyWeight < 0:
		return fmt.Errorf("config: tiles.empty_weight must not be negative, got %d", c.Tiles.EmptyWeight)
	case c.Moves.Initial < 1:
		return fmt.Errorf("config: moves.initial must be at least 1, got %d", c.Moves.Initial)
	case c.Challenge.SizeJitter < 0 || c.Challenge.RewardJitter < 0:
		return fmt.Errorf("config: challenge jitter must not be negative")
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "score", "moves":
	default:
		return fmt.Errorf("config: unknown progression type %q", c.Difficulty.Progression.Type)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.2
	case DifficultyHard:
		return 0.6
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
