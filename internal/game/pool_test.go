package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePool = `
cards:
  - base: Wall
  - base: Squire
    name: Big Squire
    battlecry: {kind: buff_random_ally, attack: 2, health: 2}
  - name: Healer
    attack: 1
    hp: 3
    tier: 2
    end_of_turn: {kind: heal_board, health: 2}
  - name: Phoenix
    attack: 2
    hp: 2
    tier: 2
    reborn: true
`

func TestParsePool(t *testing.T) {
	pool, err := ParsePool([]byte(samplePool), TavernMaxTier)
	require.NoError(t, err)
	require.Len(t, pool, 4)

	wall := pool[0]
	assert.Equal(t, "Wall", wall.Name)
	assert.Equal(t, 1, wall.Attack)
	assert.Equal(t, 4, wall.HP)

	squire := pool[1]
	assert.Equal(t, "Big Squire", squire.Name)
	assert.Equal(t, 1, squire.Attack)
	assert.Equal(t, Effect{Kind: EffectBuffRandomAlly, Attack: 2, Health: 2}, squire.Battlecry)

	healer := pool[2]
	assert.Equal(t, 2, healer.Tier)
	assert.Equal(t, EffectHealBoard, healer.EndOfTurn.Kind)
	assert.Equal(t, []string{"EoT"}, healer.Abilities())

	assert.True(t, pool[3].Reborn)
}

func TestParsePoolRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          "cards: []",
		"duplicate":      "cards: [{base: Wall}, {base: Wall}]",
		"zero hp":        "cards: [{name: Ghost, attack: 1, hp: 0}]",
		"negative atk":   "cards: [{name: Sad, attack: -1, hp: 2}]",
		"tier too high":  "cards: [{base: Wall}, {name: Titan, attack: 9, hp: 9, tier: 3}]",
		"unknown effect": "cards: [{name: Odd, hp: 1, battlecry: {kind: explode}}]",
		"unknown base":   "cards: [{base: Dragon}]",
		"no tier one":    "cards: [{base: Brute}]",
		"missing name":   "cards: [{attack: 1, hp: 1}]",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePool([]byte(data), TavernMaxTier)
			require.Error(t, err)
			if name != "unknown base" {
				assert.ErrorIs(t, err, ErrInvalidPool)
			}
		})
	}
}

func TestParsePoolBadYAML(t *testing.T) {
	_, err := ParsePool([]byte("cards: [unterminated"), TavernMaxTier)
	assert.Error(t, err)
}

func TestLoadPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePool), 0o644))

	pool, err := LoadPool(path, TavernMaxTier)
	require.NoError(t, err)
	assert.Len(t, pool, 4)

	_, err = LoadPool(filepath.Join(t.TempDir(), "missing.yaml"), TavernMaxTier)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLookupCard(t *testing.T) {
	c, err := LookupCard("Reborn Whelp")
	require.NoError(t, err)
	assert.True(t, c.Reborn)

	_, err = LookupCard("Nope")
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestDefaultPoolMatchesRegistry(t *testing.T) {
	pool := DefaultPool()
	assert.Len(t, pool, len(CardRegistry))
	for _, c := range pool {
		require.NoError(t, validateCard(c, TavernMaxTier), c.Name)
	}
}

func TestSamplePoolFile(t *testing.T) {
	pool, err := LoadPool(filepath.Join("..", "..", "pool.yaml"), TavernMaxTier)
	require.NoError(t, err)
	assert.Len(t, pool, 8)
	assert.Equal(t, EffectBuffBoard, pool[6].Battlecry.Kind)
}
