package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8080/api", cfg.ServerBaseURL)
	require.Equal(t, 30*time.Second, cfg.PollInterval)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.SessionFile)
}

func TestParseEnvOverlays(t *testing.T) {
	t.Setenv("MSGQUOTA_SERVER_URL", "https://api.example.com/api")
	t.Setenv("MSGQUOTA_POLL_INTERVAL", "10s")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	require.Equal(t, "https://api.example.com/api", cfg.ServerBaseURL)
	require.Equal(t, 10*time.Second, cfg.PollInterval)
	// Untouched fields keep their defaults.
	require.Equal(t, "info", cfg.LogLevel)
}

func TestParseFlagsOverlays(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client", "-a", "http://other:9090/api", "-i", "5"}

	var cfg Config
	cfg.LoadDefaults()
	parseFlags(&cfg)

	require.Equal(t, "http://other:9090/api", cfg.ServerBaseURL)
	require.Equal(t, 5*time.Second, cfg.PollInterval)
}

func TestParseJSONOverlays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	data, err := json.Marshal(map[string]any{
		"server_base_url": "http://json:8081/api",
		"poll_interval":   "45s",
		"log_level":       "debug",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJSON(&cfg)

	require.Equal(t, "http://json:8081/api", cfg.ServerBaseURL)
	require.Equal(t, 45*time.Second, cfg.PollInterval)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestPrecedenceFlagsBeatJSONAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_base_url":"http://json:1/api"}`), 0600))

	t.Setenv("MSGQUOTA_SERVER_URL", "http://env:2/api")

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"client", "-c", path, "-a", "http://flag:3/api"}

	cfg := LoadConfig()
	require.Equal(t, "http://flag:3/api", cfg.ServerBaseURL)
}
