package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTOML = `
[database]
driver = "libsql"
connection_string = "libsql://gym.turso.io?authToken=abc"

[state]
backend = "sqlite"
dir = "/var/lib/ironlog"

[rest]
duration_seconds = 120
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TURSO_DATABASE_URL", "IRONLOG_STATE_BACKEND", "IRONLOG_STATE_DIR", "DEV_MODE"} {
		t.Setenv(k, "")
	}
}

func TestLoadValid(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeTemp(t, validTOML))
	require.NoError(t, err)

	assert.Equal(t, DriverLibSQL, cfg.DB.Driver)
	assert.Equal(t, "libsql://gym.turso.io?authToken=abc", cfg.DB.ConnectionString)
	assert.Equal(t, "sqlite", cfg.State.Backend)
	assert.Equal(t, "/var/lib/ironlog", cfg.State.Dir)
	assert.Equal(t, 120, cfg.Rest.DurationSeconds)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file:"+filepath.Join(dir, "ironlog.db"), cfg.DB.ConnectionString)
	assert.Equal(t, "file", cfg.State.Backend)
	assert.Equal(t, filepath.Join(dir, "state"), cfg.State.Dir)
	assert.Equal(t, 150, cfg.Rest.DurationSeconds)
}

func TestEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("TURSO_DATABASE_URL", "libsql://other.turso.io")
	t.Setenv("IRONLOG_STATE_BACKEND", "memory")
	t.Setenv("IRONLOG_STATE_DIR", "/tmp/state")

	cfg, err := Load(writeTemp(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DriverLibSQL, cfg.DB.Driver)
	assert.Equal(t, "libsql://other.turso.io", cfg.DB.ConnectionString)
	assert.Equal(t, "memory", cfg.State.Backend)
	assert.Equal(t, "/tmp/state", cfg.State.Dir)
}

func TestDevMode(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEV_MODE", "true")
	cfg, err := Load(writeTemp(t, validTOML))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "file:./local.db?cache=shared&mode=rwc", cfg.DB.ConnectionString)
}

func TestExpandHome(t *testing.T) {
	clearEnv(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	cfg, err := Load(writeTemp(t, "[state]\ndir = \"~/gym\"\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "gym"), cfg.State.Dir)
}

func TestValidation(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"driver":  "[database]\ndriver = \"postgres\"\n",
		"backend": "[state]\nbackend = \"redis\"\n",
		"rest":    "[rest]\nduration_seconds = -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeTemp(t, body))
			assert.Error(t, err)
		})
	}
}

func TestMalformedFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeTemp(t, "[database\n"))
	assert.Error(t, err)
}
