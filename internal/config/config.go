package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Christian103103/HSemulator/internal/game"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Server  ServerConfig  `toml:"server"`
	Web     WebConfig     `toml:"web"`
	Logging LoggingConfig `toml:"logging"`
}

// GameConfig holds the match rules and session knobs.
type GameConfig struct {
	Seed     int64  `toml:"seed"`      // 0 = time-based
	MaxTurns int    `toml:"max_turns"` // match loop safety limit
	PoolFile string `toml:"pool_file"` // YAML card pool; empty = built-in pool

	StartingHealth  int `toml:"starting_health"`
	BoardLimit      int `toml:"board_limit"`
	GoldPerCard     int `toml:"gold_per_card"`
	SellRefund      int `toml:"sell_refund"`
	RefreshCost     int `toml:"refresh_cost"`
	ShopSize        int `toml:"shop_size"`
	TavernMaxTier   int `toml:"tavern_max_tier"`
	UpgradeBaseCost int `toml:"upgrade_base_cost"`
	MinUpgradeCost  int `toml:"min_upgrade_cost"`
	BaseGold        int `toml:"base_gold"`
	MaxGold         int `toml:"max_gold"`
	HeroDamage      int `toml:"hero_damage"`
	MaxCombatSteps  int `toml:"max_combat_steps"`
}

type ServerConfig struct {
	Port int `toml:"port"` // TCP port for host/join
}

type WebConfig struct {
	Addr    string `toml:"addr"`     // HTTP listen address
	TCPAddr string `toml:"tcp_addr"` // game host the websocket bridge dials
	GinMode string `toml:"gin_mode"` // "debug", "release" or "test"
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a TOML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set and returns the defaults otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return defaults(), nil
	}
	return Load(path)
}

func defaults() *Config {
	r := game.DefaultRules()
	return &Config{
		Game: GameConfig{
			MaxTurns:        game.DefaultMaxTurns,
			StartingHealth:  r.StartingHealth,
			BoardLimit:      r.BoardLimit,
			GoldPerCard:     r.GoldPerCard,
			SellRefund:      r.SellRefund,
			RefreshCost:     r.RefreshCost,
			ShopSize:        r.ShopSize,
			TavernMaxTier:   r.TavernMaxTier,
			UpgradeBaseCost: r.UpgradeBaseCost,
			MinUpgradeCost:  r.MinUpgradeCost,
			BaseGold:        r.BaseGold,
			MaxGold:         r.MaxGold,
			HeroDamage:      r.HeroDamage,
			MaxCombatSteps:  r.MaxCombatSteps,
		},
		Server: ServerConfig{
			Port: 9999,
		},
		Web: WebConfig{
			Addr:    ":8080",
			TCPAddr: "localhost:9999",
			GinMode: "release",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	g := c.Game
	switch {
	case g.StartingHealth <= 0:
		return fmt.Errorf("game.starting_health must be positive")
	case g.BoardLimit <= 0:
		return fmt.Errorf("game.board_limit must be positive")
	case g.ShopSize <= 0:
		return fmt.Errorf("game.shop_size must be positive")
	case g.TavernMaxTier < 1:
		return fmt.Errorf("game.tavern_max_tier must be at least 1")
	case g.MinUpgradeCost < 0 || g.MinUpgradeCost > g.UpgradeBaseCost:
		return fmt.Errorf("game.min_upgrade_cost must be within 0..upgrade_base_cost")
	case g.BaseGold > g.MaxGold:
		return fmt.Errorf("game.base_gold exceeds game.max_gold")
	case c.Logging.Format != "json" && c.Logging.Format != "console":
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// Rules converts the [game] section into match rules.
func (g GameConfig) Rules() game.Rules {
	return game.Rules{
		StartingHealth:  g.StartingHealth,
		BoardLimit:      g.BoardLimit,
		GoldPerCard:     g.GoldPerCard,
		SellRefund:      g.SellRefund,
		RefreshCost:     g.RefreshCost,
		ShopSize:        g.ShopSize,
		TavernMaxTier:   g.TavernMaxTier,
		UpgradeBaseCost: g.UpgradeBaseCost,
		MinUpgradeCost:  g.MinUpgradeCost,
		BaseGold:        g.BaseGold,
		MaxGold:         g.MaxGold,
		HeroDamage:      g.HeroDamage,
		MaxCombatSteps:  g.MaxCombatSteps,
	}
}

// Pool loads the configured card pool, or the built-in one when none is set.
func (g GameConfig) Pool() ([]*game.Card, error) {
	if g.PoolFile == "" {
		return game.DefaultPool(), nil
	}
	return game.LoadPool(g.PoolFile, g.TavernMaxTier)
}

// MatchConfig assembles the match template every entry point starts from.
func (c *Config) MatchConfig() (game.MatchConfig, error) {
	pool, err := c.Game.Pool()
	if err != nil {
		return game.MatchConfig{}, err
	}
	return game.MatchConfig{
		Pool:     pool,
		Rules:    c.Game.Rules(),
		Seed:     c.Game.Seed,
		MaxTurns: c.Game.MaxTurns,
	}, nil
}
