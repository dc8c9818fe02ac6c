package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/msgquota/internal/flagx"
	"github.com/dmitrijs2005/msgquota/internal/timex"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so JSON can specify the poll interval either as a
// string like "30s" or as integer nanoseconds.
type jsonConfig struct {
	ServerBaseURL string         `json:"server_base_url"`
	PollInterval  timex.Duration `json:"poll_interval"`
	SessionFile   string         `json:"session_file"`
	LogLevel      string         `json:"log_level"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. No flag, no JSON. Panics on a present-but-broken file;
// a config file the user pointed at explicitly must not be half-applied.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc jsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.PollInterval.Duration > 0 {
		cfg.PollInterval = time.Duration(jc.PollInterval.Duration)
	}
	if jc.SessionFile != "" {
		cfg.SessionFile = jc.SessionFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
