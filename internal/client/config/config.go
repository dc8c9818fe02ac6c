// Package config assembles the client's runtime settings from layered
// sources: built-in defaults, then a JSON file, then environment
// variables, then command-line flags. Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the msgquota client.
type Config struct {
	// ServerBaseURL is the backend API root, including the path prefix,
	// e.g. "http://localhost:8080/api".
	ServerBaseURL string

	// PollInterval is how often dashboards re-fetch their state.
	PollInterval time.Duration

	// SessionFile overrides the default location of the persisted
	// token/role pair. Empty selects ~/.local/msgquota/session.json.
	SessionFile string

	// LogLevel is the minimum log level: debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080/api"
	c.PollInterval = 30 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
