package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.GamePort)
	assert.Equal(t, 60, cfg.Server.TickRate)
	assert.Equal(t, 2*time.Minute, cfg.Server.SessionIdleTimeout)
	assert.Equal(t, 20, cfg.Simulation.PlayerShots)
	assert.Equal(t, 30, cfg.Simulation.EnemyShots)
	assert.Equal(t, 200, cfg.Simulation.Particles)
	assert.Equal(t, 10000, cfg.Simulation.BossScoreStep)
	assert.Equal(t, 0.3, cfg.Simulation.StarChance)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  game_port: 9000
  tick_rate: 30
simulation:
  particles: 50
auth:
  token_ttl: 30m
`), 0o644))
	t.Setenv("STARRUNNER_SERVER_GAME_PORT", "9100")
	t.Setenv("STARRUNNER_AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.GamePort)
	assert.Equal(t, 30, cfg.Server.TickRate)
	assert.Equal(t, time.Second/30, cfg.Server.TickInterval())
	assert.Equal(t, 50, cfg.Simulation.Particles)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 20, cfg.Simulation.PlayerShots)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("STARRUNNER_SIMULATION_PARTICLES", "0")
	_, err := Load("")
	assert.ErrorContains(t, err, "simulation.particles")

	cfg := Config{Server: ServerConfig{TickRate: 60, MaxSessions: 1}, Auth: AuthConfig{TokenTTL: time.Hour}}
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigSetsGlobal(t *testing.T) {
	require.NoError(t, LoadConfig(""))
	assert.Equal(t, "starrunner", GlobalConfig.Auth.Issuer)
	assert.Equal(t, "localhost:6379", GlobalConfig.Redis.GetRedisAddr())
	assert.Contains(t, GlobalConfig.Database.GetDSN(), "dbname=starrunner")
}
