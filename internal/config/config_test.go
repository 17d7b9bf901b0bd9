package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarwaniDev/activity-tracker/internal/config"
	"github.com/HarwaniDev/activity-tracker/internal/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "activitytracker.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"activitytracker"}, args...)
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
listen_addr = "127.0.0.1:9000"
countdown = 3
interval = 50
output_dir = "/tmp/captures"
telemetry = true
database = "/tmp/sessions.db"
permission_prompt = false
debug = true
`)
	t.Setenv("ACTIVITY_TRACKER_CONFIG", path)
	setArgs(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, 3, cfg.Countdown)
	assert.Equal(t, 50, cfg.Interval)
	assert.Equal(t, "/tmp/captures", cfg.OutputDir)
	assert.True(t, cfg.Telemetry)
	assert.Equal(t, "/tmp/sessions.db", cfg.TelemetryDB)
	assert.False(t, cfg.PermissionPrompt)
	assert.True(t, cfg.Debug)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfigFile(t, "")
	t.Setenv("ACTIVITY_TRACKER_CONFIG", path)
	setArgs(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DefaultListenAddr, cfg.ListenAddr)
	assert.Equal(t, config.DefaultCountdown, cfg.Countdown)
	assert.Equal(t, config.DefaultInterval, cfg.Interval)
	assert.Empty(t, cfg.OutputDir)
	assert.False(t, cfg.Telemetry)
	assert.Equal(t, config.DefaultTelemetryDB, cfg.TelemetryDB)
	assert.True(t, cfg.PermissionPrompt)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.Verbose)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfigFile(t, "countdown = 3\n")
	t.Setenv("ACTIVITY_TRACKER_CONFIG", path)
	setArgs(t, "--countdown", "7", "--output-dir", "/tmp/elsewhere")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Countdown)
	assert.Equal(t, "/tmp/elsewhere", cfg.OutputDir)
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	path := writeConfigFile(t, "This is not a valid TOML file\n")
	t.Setenv("ACTIVITY_TRACKER_CONFIG", path)
	setArgs(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrReadConfig))
}

func TestInvalidCountdown(t *testing.T) {
	path := writeConfigFile(t, "countdown = 0\n")
	t.Setenv("ACTIVITY_TRACKER_CONFIG", path)
	setArgs(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidConfig))
}

func TestInvalidInterval(t *testing.T) {
	path := writeConfigFile(t, "interval = -10\n")
	t.Setenv("ACTIVITY_TRACKER_CONFIG", path)
	setArgs(t)

	_, err := config.Load()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidInterval))
}
