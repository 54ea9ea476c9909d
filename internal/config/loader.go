package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration and validates it.
// Search order: customPath -> ~/.depthscraper/configs/depthscraper.yaml ->
// ./configs/depthscraper.yaml -> embedded default.
// Missing fields keep their default values.
func Load(customPath string) (DepthscraperConfig, error) {
	cfg := DefaultDepthscraperConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{
		userConfigPath("depthscraper.yaml"),
		filepath.Join("configs", "depthscraper.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		fromFile := DefaultDepthscraperConfig()
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			continue
		}
		if fromFile.Validate() != nil {
			continue
		}
		return fromFile, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDepthscraperYAML, &cfg); err != nil {
		return DefaultDepthscraperConfig(), nil // Fallback to hardcoded if embed fails
	}
	if cfg.Validate() != nil {
		return DefaultDepthscraperConfig(), nil
	}
	return cfg, nil
}

// ConfigDir returns ~/.depthscraper, or empty if home is unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".depthscraper")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *DepthscraperConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the move budget based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Moves.Initial = 35
	case DifficultyHard:
		cfg.Moves.Initial = 20
	}
}
