package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig mirrors the Config fields that may come from the environment.
type envConfig struct {
	ServerBaseURL string        `env:"MSGQUOTA_SERVER_URL"`
	PollInterval  time.Duration `env:"MSGQUOTA_POLL_INTERVAL"`
	SessionFile   string        `env:"MSGQUOTA_SESSION_FILE"`
	LogLevel      string        `env:"MSGQUOTA_LOG_LEVEL"`
}

// parseEnv overlays cfg with values from MSGQUOTA_* environment
// variables. Unset variables leave the current value in place.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(err)
	}

	if ec.ServerBaseURL != "" {
		cfg.ServerBaseURL = ec.ServerBaseURL
	}
	if ec.PollInterval > 0 {
		cfg.PollInterval = ec.PollInterval
	}
	if ec.SessionFile != "" {
		cfg.SessionFile = ec.SessionFile
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}
