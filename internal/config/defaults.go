package config

import (
	_ "embed"
)

//go:embed defaults/depthscraper.yaml
var defaultDepthscraperYAML []byte

// DefaultDepthscraperConfig returns the reference rules: a six-segment ring,
// four starting floors, three tiles in hand and 25 moves.
func DefaultDepthscraperConfig() DepthscraperConfig {
	return DepthscraperConfig{
		Board: BoardConfig{
			Segments:      6,
			InitialFloors: 4,
		},
		Tiles: TilesConfig{
			HandSize:    3,
			ColorWeight: 1,
			EmptyWeight: 6,
			MaxAttempts: 64,
		},
		Moves: MovesConfig{
			Initial: 25,
		},
		Challenge: ChallengeConfig{
			Baseline:     5,
			SizeJitter:   5,
			RewardJitter: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 400,
			},
			Scaling: ScalingConfig{
				BaselineGrowth:    6,
				EmptyWeightGrowth: 3,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDepthscraperYAML
}
