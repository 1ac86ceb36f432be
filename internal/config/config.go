package config

import (
	"os"

	"github.com/lunamoth/resona/internal/structures"
	"github.com/pelletier/go-toml/v2"
)

// Load loads the configuration from a TOML file
func Load(path string) (*structures.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves the configuration to a TOML file
func Save(cfg *structures.Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Default returns the default configuration
func Default() *structures.Config {
	return &structures.Config{
		Retry: structures.RetryConfig{
			MaxAttempts:      3,
			BaseDelaySeconds: 1.0,
			MaxDelaySeconds:  8.0,
		},
		Cache: structures.CacheConfig{
			HomeTTLMinutes:     5,
			PlaylistTTLMinutes: 30,
			ArtistTTLMinutes:   60,
			SearchTTLMinutes:   2,
		},
	}
}
