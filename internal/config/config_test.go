package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TOUCHLINE_CONFIG",
	"TOUCHLINE_API_BASE",
	"TOUCHLINE_API_TIMEOUT",
	"TOUCHLINE_API_RPS",
	"TOUCHLINE_USER_AGENT",
	"TOUCHLINE_WINDOW_SIZE",
	"TOUCHLINE_INLINE",
	"TOUCHLINE_JOURNAL_DISABLE",
	"TOUCHLINE_JOURNAL_PATH",
	"TOUCHLINE_JOURNAL_RETENTION",
	"TOUCHLINE_LOG_LEVEL",
	"TOUCHLINE_LOG_DIR",
}

// isolate points DataDir at a temp dir, moves into an empty working directory
// and clears every TOUCHLINE_* variable for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("TOUCHLINE_HOME", home)
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	chdir(t, t.TempDir())
	return home
}

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

const sampleYAML = `
api:
  base_url: "https://football.example.com/api"
  timeout: "5s"
  requests_per_second: 2
ui:
  window_size: 5
journal:
  disable: true
log:
  level: "debug"
`

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RequestsPerSecond)
	assert.Equal(t, 3, cfg.UI.WindowSize)
	assert.False(t, cfg.Journal.Disable)
	assert.Equal(t, 168*time.Hour, cfg.Journal.Retention)
	assert.Equal(t, filepath.Join(home, "journal.db"), cfg.Journal.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, "logs"), cfg.Log.Dir)
}

func TestLoad_WithExplicitPath(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "touchline.yaml", sampleYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://football.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2.0, cfg.API.RequestsPerSecond)
	assert.Equal(t, 5, cfg.UI.WindowSize)
	assert.True(t, cfg.Journal.Disable)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset in the file, so the tag default applies.
	assert.Equal(t, 168*time.Hour, cfg.Journal.Retention)
}

func TestLoad_ConfigEnvVar(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "touchline.yaml", sampleYAML)
	t.Setenv("TOUCHLINE_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.UI.WindowSize)
}

func TestLoad_DefaultFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, home, "config.yaml", sampleYAML)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://football.example.com/api", cfg.API.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "touchline.yaml", sampleYAML)
	t.Setenv("TOUCHLINE_API_BASE", "http://127.0.0.1:9000/api")
	t.Setenv("TOUCHLINE_WINDOW_SIZE", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/api", cfg.API.BaseURL)
	assert.Equal(t, 7, cfg.UI.WindowSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	isolate(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	writeFile(t, wd, ".env", "TOUCHLINE_API_BASE=http://dotenv.local/api\n")
	// godotenv sets the variable on the process; remove it afterwards.
	t.Cleanup(func() { os.Unsetenv("TOUCHLINE_API_BASE") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv.local/api", cfg.API.BaseURL)
}

func TestLoad_DotEnvDoesNotOverrideEnv(t *testing.T) {
	isolate(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	writeFile(t, wd, ".env", "TOUCHLINE_API_BASE=http://dotenv.local/api\n")
	t.Setenv("TOUCHLINE_API_BASE", "http://shell.local/api")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://shell.local/api", cfg.API.BaseURL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat failed")
}

func TestLoad_BrokenYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "broken.yaml", "api: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidBaseURL(t *testing.T) {
	isolate(t)
	t.Setenv("TOUCHLINE_API_BASE", "localhost:5000")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.base_url")
}

func TestMustLoad_Panics(t *testing.T) {
	isolate(t)
	require.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}

func TestValidate(t *testing.T) {
	t.Setenv("TOUCHLINE_HOME", t.TempDir())

	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.UI.WindowSize = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.API.RequestsPerSecond = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.API.Timeout = -time.Second
	assert.Error(t, cfg.Validate())
}

func TestSaveThenLoad(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.API.BaseURL = "https://saved.example.com/api"
	cfg.UI.WindowSize = 4
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com/api", loaded.API.BaseURL)
	assert.Equal(t, 4, loaded.UI.WindowSize)
	assert.Equal(t, cfg.Journal.Retention, loaded.Journal.Retention)
}

func TestClientConfig(t *testing.T) {
	t.Setenv("TOUCHLINE_HOME", t.TempDir())
	cfg := Default()
	cfg.API.Timeout = 10 * time.Second
	cfg.API.RequestsPerSecond = 4

	cc := cfg.Client()
	assert.Equal(t, DefaultBaseURL, cc.BaseURL)
	assert.Equal(t, 10*time.Second, cc.Timeout)
	assert.Equal(t, 4.0, cc.RequestsPerSecond)
	assert.Empty(t, cc.UserAgent)
}
