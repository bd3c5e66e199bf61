package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
log:
  level: debug
auth:
  signing_key: s3cret
  token_ttl: 30m
simulator:
  speed: 120
builder:
  final_cooling_velocity: -35
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "s3cret", cfg.Auth.SigningKey)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 120.0, cfg.Simulator.Speed)
	assert.Equal(t, time.Second, cfg.Simulator.Tick)
	assert.Equal(t, 999, cfg.Builder.MaxHeatingVelocity)
	assert.Equal(t, -35, cfg.Builder.FinalCoolingVelocity)
	assert.Equal(t, "app.db", cfg.DB.Path)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "port: \"9090\"\n")
	t.Setenv("KILN_PORT", "7070")
	t.Setenv("KILN_DB_PATH", "/tmp/kiln.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "/tmp/kiln.db", cfg.DB.Path)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "builder:\n  final_cooling_velocity: 20\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "simulator:\n  speed: 0\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yml"))
	require.NoError(t, err)
	assert.Equal(t, "configs/tables.yml", cfg.Tables.Path)
	assert.Equal(t, -20, cfg.Builder.FinalCoolingVelocity)
}
