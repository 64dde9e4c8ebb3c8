package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hsemu.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsMatchGameRules(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)

	assert.Equal(t, game.DefaultRules(), cfg.Game.Rules())
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
seed = 42
starting_health = 20
hero_damage = 3

[server]
port = 7000

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, 20, cfg.Game.StartingHealth)
	assert.Equal(t, 3, cfg.Game.Rules().HeroDamage)
	assert.Equal(t, game.BoardLimit, cfg.Game.BoardLimit)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Web.Addr)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "[game\nseed = "))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "[game]\nboard_limit = 0\n"))
	assert.ErrorContains(t, err, "board_limit")

	_, err = Load(writeConfig(t, "[logging]\nformat = \"xml\"\n"))
	assert.ErrorContains(t, err, "logging.format")
}

func TestPoolFromConfig(t *testing.T) {
	cfg := defaults()
	pool, err := cfg.Game.Pool()
	require.NoError(t, err)
	assert.Len(t, pool, len(game.CardRegistry))

	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cards:\n  - base: Wall\n"), 0o644))
	cfg.Game.PoolFile = path
	pool, err = cfg.Game.Pool()
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, "Wall", pool[0].Name)
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := NewLogger(LoggingConfig{Level: "warn", Format: format})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	}

	_, err := NewLogger(LoggingConfig{Level: "loud", Format: "json"})
	assert.Error(t, err)
	_, err = NewLogger(LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}

func TestMatchConfig(t *testing.T) {
	cfg := defaults()
	cfg.Game.Seed = 11
	cfg.Game.MaxTurns = 20

	mc, err := cfg.MatchConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(11), mc.Seed)
	assert.Equal(t, 20, mc.MaxTurns)
	assert.Equal(t, game.DefaultRules(), mc.Rules)
	assert.Len(t, mc.Pool, len(game.DefaultPool()))

	cfg.Game.PoolFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.MatchConfig()
	assert.ErrorIs(t, err, os.ErrNotExist)
}
