package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, BackendMemory, config.Storage.Backend)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, 24*time.Hour, config.Auth.GetTokenExpiry())
	assert.True(t, config.Snapshot.Enabled)
}

func TestLoadConfig_MissingFileIsSkipped(t *testing.T) {
	config, err := LoadConfig("/nonexistent/folio.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
environment = "production"

[server]
port = 9090

[storage]
backend = "surrealdb"
address = "ws://db:8000"

[auth]
token_expiry = "1h"

[logging]
level = "debug"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, BackendSurreal, config.Storage.Backend)
	assert.Equal(t, "ws://db:8000", config.Storage.Address)
	assert.Equal(t, time.Hour, config.Auth.GetTokenExpiry())
	assert.Equal(t, "debug", config.Logging.Level)

	// Untouched sections keep their defaults.
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, "folio", config.Storage.Namespace)
}

func TestLoadConfig_LaterFilesWin(t *testing.T) {
	base := writeConfigFile(t, "[server]\nport = 9000\n")
	override := writeConfigFile(t, "[server]\nport = 9001\n")

	config, err := LoadConfig(base, override)
	require.NoError(t, err)
	assert.Equal(t, 9001, config.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_ENV", "prod")
	t.Setenv("FOLIO_PORT", "7070")
	t.Setenv("FOLIO_STORAGE_BACKEND", "SurrealDB")
	t.Setenv("FOLIO_AUTH_JWT_SECRET", "env-secret")
	t.Setenv("FOLIO_SNAPSHOT_SCHEDULE", "30 1 * * *")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, BackendSurreal, config.Storage.Backend)
	assert.Equal(t, "env-secret", config.Auth.JWTSecret)
	assert.Equal(t, "30 1 * * *", config.Snapshot.Schedule)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeConfigFile(t, "server = [broken")

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestGetTokenExpiry_InvalidDurationFallsBack(t *testing.T) {
	auth := AuthConfig{TokenExpiry: "soon"}
	assert.Equal(t, 24*time.Hour, auth.GetTokenExpiry())
}
