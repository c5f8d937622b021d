package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	settings, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", settings.Server.Port)
	assert.Equal(t, 10*time.Second, settings.Server.ShutdownTimeout)
	assert.Equal(t, "info", settings.Log.Level)
	assert.Equal(t, 5432, settings.Database.Port)
	assert.Equal(t, "library", settings.Database.Name)
	assert.Equal(t, 15*time.Second, settings.Database.QueryTimeout)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports.yaml")
	content := `
server:
  port: "9090"
database:
  host: file-host
  name: file-db
  query_timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_HOST", "env-host")
	t.Setenv("APP_USER", "app")
	t.Setenv("APP_PASSWORD", "secret")
	t.Setenv("LIBRARY_REPORTS_LOG_LEVEL", "debug")

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", settings.Server.Port)
	assert.Equal(t, "env-host", settings.Database.Host)
	assert.Equal(t, "file-db", settings.Database.Name)
	assert.Equal(t, "app", settings.Database.User)
	assert.Equal(t, "secret", settings.Database.Password)
	assert.Equal(t, "debug", settings.Log.Level)
	assert.Equal(t, 3*time.Second, settings.Database.QueryTimeout)

	pg := settings.Database.Postgres()
	assert.Equal(t, "env-host", pg.Host)
	assert.Equal(t, "file-db", pg.Database)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
