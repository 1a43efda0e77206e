package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
database:
  host: db
  port: 5432
  user: brew
  password: secret
  dbname: neighbrewhood
  sslmode: disable
jwt:
  secret: s3cret
search:
  default_radius_miles: 35
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "s3cret", cfg.JWT.Secret)
	require.Equal(t, 35.0, cfg.Search.DefaultRadiusMiles)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t,
		"host=db port=5432 user=brew password=secret dbname=neighbrewhood sslmode=disable",
		cfg.Database.DSN(),
	)
}

func TestLoad_DefaultRadius(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 20.0, cfg.Search.DefaultRadiusMiles)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
