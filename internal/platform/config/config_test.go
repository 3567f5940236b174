package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	// Check defaults are applied (from defaults() function)
	assert.Equal(t, "flashcard-builder", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(DefaultMaxImportBytes), cfg.Library.MaxImportBytes)
	assert.Zero(t, cfg.Quiz.Seed)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	// Set environment variables
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	// Verify durations are parsed correctly from defaults
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	// Should not error - missing profile file is silently ignored
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	// Should fall back to defaults
	assert.Equal(t, "flashcard-builder", cfg.App.Name)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
}

// TestLoad_UnderscoreKeysFromEnv tests that keys containing underscores map
// back to their config path.
func TestLoad_UnderscoreKeysFromEnv(t *testing.T) {
	t.Setenv("APP_LIBRARY_SEED_FILE", "/tmp/seed.json")
	t.Setenv("APP_LIBRARY_EXPORT_ON_SHUTDOWN", "true")
	t.Setenv("APP_SERVER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("APP_QUIZ_SEED", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/seed.json", cfg.Library.SeedFile)
	assert.True(t, cfg.Library.ExportOnShutdown)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, uint64(7), cfg.Quiz.Seed)
	require.NoError(t, cfg.Validate())
}

// TestLoadDir_ProfileOverridesBase tests the file layering.
func TestLoadDir_ProfileOverridesBase(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(`
server:
  port: 9000
log:
  level: debug
library:
  seed_file: ./base.json
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dev.yaml"), []byte(`
log:
  level: warn
`), 0o600))

	cfg, err := LoadDir(dir, "dev")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "./base.json", cfg.Library.SeedFile)
}

// TestLoadDir_InvalidYAML tests that a broken file is reported.
func TestLoadDir_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("server: [port"), 0o600))

	_, err := LoadDir(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

// TestProfile tests profile selection from APP_ENVIRONMENT.
func TestProfile(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "")
	assert.Equal(t, DefaultProfile, Profile())

	t.Setenv("APP_ENVIRONMENT", "prod")
	assert.Equal(t, "prod", Profile())
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	// Check log file defaults
	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/flashcards.log", cfg.Log.File.Path)
	assert.Empty(t, cfg.Log.File.Level, "file follows the console level")
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestLoad_TelemetryDefaults tests that telemetry defaults are set correctly.
func TestLoad_TelemetryDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "flashcard-builder", cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRate)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "flashcard-builder", d["app.name"])
	assert.Equal(t, "dev", d["app.version"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, "0.0.0.0", d["server.host"])
	assert.Equal(t, "info", d["log.level"])
	assert.Equal(t, "json", d["log.format"])
	assert.Equal(t, "", d["library.seed_file"])
	assert.Equal(t, DefaultMaxImportBytes, d["library.max_import_bytes"])
}

func TestLoad_LogFileLevelFromEnv(t *testing.T) {
	t.Setenv("APP_LOG_FILE_LEVEL", "debug")

	cfg, err := LoadDir(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.File.Level)
}
