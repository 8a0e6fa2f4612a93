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
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/employees.db", cfg.Database.Path)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL())
	assert.Equal(t, 10, cfg.JWT.BcryptCost)
	assert.Empty(t, cfg.JWT.Secret)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Sheets.Enabled)
	assert.Equal(t, 10, cfg.Client.PageSize)
	assert.False(t, cfg.Server.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EMPDIR_JWT_SECRET", "from-env")
	t.Setenv("EMPDIR_SERVER_PORT", "8081")
	t.Setenv("EMPDIR_SERVER_ENV", "production")
	t.Setenv("EMPDIR_REDIS_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.True(t, cfg.Server.IsProduction())
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: "9000"
database:
  driver: postgres
  host: db
  dbname: staff
jwt:
  secret: file-secret
  expire_minutes: 5
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, "staff", cfg.Database.DBName)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 5*time.Minute, cfg.JWT.TokenTTL())
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))
	t.Chdir(dir)

	_, err := Load()
	assert.Error(t, err)
}
