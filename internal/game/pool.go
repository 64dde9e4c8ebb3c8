package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPool is wrapped by every pool validation failure.
var ErrInvalidPool = errors.New("invalid card pool")

// PoolFile represents the top-level YAML structure.
type PoolFile struct {
	Cards []PoolEntry `yaml:"cards"`
}

// PoolEntry represents a single card template in the YAML file. When Base
// names a registered card, the entry starts from that template and any field
// set here overrides it.
type PoolEntry struct {
	Name        string       `yaml:"name"`
	Base        string       `yaml:"base"`
	Description string       `yaml:"description"`
	Attack      *int         `yaml:"attack"`
	HP          *int         `yaml:"hp"`
	Tier        *int         `yaml:"tier"`
	Reborn      *bool        `yaml:"reborn"`
	Battlecry   *EffectEntry `yaml:"battlecry"`
	EndOfTurn   *EffectEntry `yaml:"end_of_turn"`
}

// EffectEntry is the YAML form of an Effect.
type EffectEntry struct {
	Kind   string `yaml:"kind"`
	Attack int    `yaml:"attack"`
	Health int    `yaml:"health"`
}

func (e *EffectEntry) effect() (Effect, error) {
	kind, err := ParseEffectKind(e.Kind)
	if err != nil {
		return Effect{}, err
	}
	return Effect{Kind: kind, Attack: e.Attack, Health: e.Health}, nil
}

// LoadPool reads and validates a YAML pool file.
func LoadPool(path string, maxTier int) ([]*Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pool, err := ParsePool(data, maxTier)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pool, nil
}

// ParsePool decodes YAML pool data. Names must be unique, stats sane and
// tiers within 1..maxTier.
func ParsePool(data []byte, maxTier int) ([]*Card, error) {
	var pf PoolFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse pool YAML: %w", err)
	}
	if len(pf.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrInvalidPool)
	}

	seen := make(map[string]bool, len(pf.Cards))
	pool := make([]*Card, 0, len(pf.Cards))
	for i, entry := range pf.Cards {
		card, err := entry.card()
		if err != nil {
			return nil, fmt.Errorf("%w: card %d: %v", ErrInvalidPool, i+1, err)
		}
		if err := validateCard(card, maxTier); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPool, card.Name, err)
		}
		if seen[card.Name] {
			return nil, fmt.Errorf("%w: duplicate card %q", ErrInvalidPool, card.Name)
		}
		seen[card.Name] = true
		pool = append(pool, card)
	}
	if !hasTier(pool, 1) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPool, ErrEmptyPool)
	}
	return pool, nil
}

func (e PoolEntry) card() (*Card, error) {
	card := &Card{Tier: 1}
	if e.Base != "" {
		base, err := LookupCard(e.Base)
		if err != nil {
			return nil, err
		}
		card = base
	}
	if e.Name != "" {
		card.Name = e.Name
	}
	if e.Description != "" {
		card.Description = e.Description
	}
	if e.Attack != nil {
		card.Attack = *e.Attack
	}
	if e.HP != nil {
		card.HP = *e.HP
	}
	if e.Tier != nil {
		card.Tier = *e.Tier
	}
	if e.Reborn != nil {
		card.Reborn = *e.Reborn
	}
	if e.Battlecry != nil {
		eff, err := e.Battlecry.effect()
		if err != nil {
			return nil, fmt.Errorf("battlecry: %w", err)
		}
		card.Battlecry = eff
	}
	if e.EndOfTurn != nil {
		eff, err := e.EndOfTurn.effect()
		if err != nil {
			return nil, fmt.Errorf("end_of_turn: %w", err)
		}
		card.EndOfTurn = eff
	}
	return card, nil
}

func validateCard(c *Card, maxTier int) error {
	switch {
	case c.Name == "":
		return errors.New("missing name")
	case c.HP <= 0:
		return fmt.Errorf("hp must be positive, got %d", c.HP)
	case c.Attack < 0:
		return fmt.Errorf("attack must not be negative, got %d", c.Attack)
	case c.Tier < 1 || c.Tier > maxTier:
		return fmt.Errorf("tier %d outside 1..%d", c.Tier, maxTier)
	}
	return nil
}
