package structures

// Config represents the application configuration.
type Config struct {
	// Authentication
	HeaderFile string `toml:"header_file"` // browser headers captured for music.youtube.com

	// Storage
	DatabasePath string `toml:"database_path"`

	// Logging
	LogFile string `toml:"log_file"`
	Debug   bool   `toml:"debug"`

	// API Configuration
	APIBase string      `toml:"api_base"` // override for the service origin, mainly for tests
	Retry   RetryConfig `toml:"retry"`
	Cache   CacheConfig `toml:"cache"`
}

// RetryConfig tunes the exponential backoff applied to transient failures.
type RetryConfig struct {
	MaxAttempts      int     `toml:"max_attempts"`
	BaseDelaySeconds float64 `toml:"base_delay_seconds"`
	MaxDelaySeconds  float64 `toml:"max_delay_seconds"`
}

// CacheConfig holds per-endpoint-family TTL overrides, in minutes.
type CacheConfig struct {
	HomeTTLMinutes     int `toml:"home_ttl_minutes"`
	PlaylistTTLMinutes int `toml:"playlist_ttl_minutes"`
	ArtistTTLMinutes   int `toml:"artist_ttl_minutes"`
	SearchTTLMinutes   int `toml:"search_ttl_minutes"`
}
