package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFile is the file name looked up in the config directories.
const configFile = "unscrew.yaml"

// LoadUnscrew loads the puzzle configuration.
// Search order: customPath -> ~/.unscrew/configs/unscrew.yaml -> ./configs/unscrew.yaml -> embedded default.
// Values missing from a file keep their defaults. Only an explicit customPath
// that cannot be read or parsed is an error; broken files found by the search are skipped.
func LoadUnscrew(customPath string) (UnscrewConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultUnscrewConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultUnscrewConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultUnscrewYAML); err == nil {
		return cfg, nil
	}
	return DefaultUnscrewConfig(), nil // Fallback to hardcoded if embed fails
}

// Load loads the configuration and applies a difficulty preset.
func Load(customPath string, preset DifficultyPreset) (UnscrewConfig, error) {
	cfg, err := LoadUnscrew(customPath)
	if err != nil {
		return cfg, err
	}
	ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// parse decodes YAML over the hardcoded defaults.
func parse(data []byte) (UnscrewConfig, error) {
	cfg := DefaultUnscrewConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultUnscrewConfig(), err
	}
	return cfg, nil
}

// searchPaths returns the user and local config locations, in lookup order.
func searchPaths() []string {
	var paths []string
	if userPath := userConfigPath(configFile); userPath != "" {
		paths = append(paths, userPath)
	}
	return append(paths, filepath.Join("configs", configFile))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".unscrew", "configs", filename)
}

// Marshal renders a configuration as YAML.
func Marshal(cfg UnscrewConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
