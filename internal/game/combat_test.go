package game

import (
	"fmt"
	"testing"

	"github.com/Christian103103/HSemulator/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCombatGlassCannonIntoWall: 3/1 attacks 1/4, dies on the counter-hit, Player 2 wins.
func TestCombatGlassCannonIntoWall(t *testing.T) {
	gs := newCombatState(t)
	place(gs, 0, ZoneBoard, GlassCannon())
	place(gs, 1, ZoneBoard, Wall())

	logger := log.NewMemoryLogger()
	res := ResolveCombat(gs, newSeqRand(0, 0), CombatConfig{Logger: logger})
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))

	assert.Equal(t, []string{
		"Combat begins!",
		"Player 1 attacks first.",
		"Player 1's Glass Cannon (3/1) attacks Player 2's Wall (1/4).",
		"→ Glass Cannon dies.",
		"Player 2 wins the round! Player 1 takes 2 damage.",
	}, res.Log)
	assert.Equal(t, res.Log, log.CombatLines(logger.Events()))

	assert.Equal(t, 1, res.Winner)
	assert.Equal(t, 0, res.Loser)
	assert.Equal(t, 2, res.Damage)
	assert.Equal(t, 0, res.FirstAttacker)
	assert.Equal(t, CombatResolved, res.State)
	assert.Equal(t, 28, gs.Players[0].Health)
	assert.Equal(t, 30, gs.Players[1].Health)

	assert.Empty(t, gs.Players[0].Board)
	assert.Equal(t, []string{"Glass Cannon"}, names(gs.Zone(0, ZoneGraveyard)))
	wall := gs.Board(1)[0]
	assert.Equal(t, 1, wall.HP)
	requireZones(t, gs)

	hp := logger.EventsOfType(log.EventHPChange)
	require.Len(t, hp, 1)
	assert.Equal(t, 0, hp[0].Player)
}

// TestCombatRebornFirstDeath: a reborn minion at 2 hp hit for 5 comes back at 1 hp.
func TestCombatRebornFirstDeath(t *testing.T) {
	gs := newCombatState(t)
	whelp := place(gs, 0, ZoneBoard, RebornWhelp())[0]
	whelp.HP = 2
	place(gs, 1, ZoneBoard, vanilla("Ogre", 5, 10))

	// Player 2 first; stop after one attack.
	res := ResolveCombat(gs, newSeqRand(1, 0), CombatConfig{MaxSteps: 1})

	assert.Contains(t, res.Log, "→ Reborn Whelp is reborn!")
	assert.Equal(t, 1, whelp.HP)
	assert.True(t, whelp.UsedReborn)
	assert.Equal(t, ZoneBoard, whelp.Zone)
	assert.True(t, res.Stalemate)
	requireZones(t, gs)
}

// TestCombatRebornSecondDeath: after reborn is spent the next lethal hit kills.
func TestCombatRebornSecondDeath(t *testing.T) {
	gs := newCombatState(t)
	whelp := place(gs, 0, ZoneBoard, RebornWhelp())[0]
	whelp.HP = 2
	place(gs, 1, ZoneBoard, vanilla("Ogre", 5, 10))

	res := ResolveCombat(gs, newSeqRand(1, 0, 0), CombatConfig{})

	assert.Equal(t, []string{
		"Combat begins!",
		"Player 2 attacks first.",
		"Player 2's Ogre (5/10) attacks Player 1's Reborn Whelp (2/2).",
		"→ Reborn Whelp is reborn!",
		"Player 1's Reborn Whelp (2/1) attacks Player 2's Ogre (5/8).",
		"→ Reborn Whelp dies.",
		"Player 2 wins the round! Player 1 takes 2 damage.",
	}, res.Log)
	assert.Equal(t, []string{"Reborn Whelp"}, names(gs.Zone(0, ZoneGraveyard)))
	assert.True(t, whelp.UsedReborn)
	assert.Equal(t, 6, gs.Board(1)[0].HP)
}

// TestCombatDefenderDiesBeforeAttacker: a mutual kill logs the defender's death first.
func TestCombatDefenderDiesBeforeAttacker(t *testing.T) {
	gs := newCombatState(t)
	place(gs, 0, ZoneBoard, vanilla("Left", 3, 3))
	place(gs, 1, ZoneBoard, vanilla("Right", 3, 3))

	res := ResolveCombat(gs, newSeqRand(0, 0), CombatConfig{})

	assert.Equal(t, []string{
		"Combat begins!",
		"Player 1 attacks first.",
		"Player 1's Left (3/3) attacks Player 2's Right (3/3).",
		"→ Right dies.",
		"→ Left dies.",
		"It's a tie! No hero damage dealt.",
	}, res.Log)
	assert.True(t, res.Tie())
	assert.Equal(t, 30, gs.Players[0].Health)
	assert.Equal(t, 30, gs.Players[1].Health)
	requireZones(t, gs)
}

// TestCombatAlternatesAndTargetsRandomly: the leftmost minion attacks and the
// defender is chosen by the RNG among all enemy minions.
func TestCombatAlternatesAndTargetsRandomly(t *testing.T) {
	gs := newCombatState(t)
	place(gs, 0, ZoneBoard, vanilla("A1", 1, 10), vanilla("A2", 1, 10))
	place(gs, 1, ZoneBoard, vanilla("B1", 1, 10), vanilla("B2", 1, 10))

	res := ResolveCombat(gs, newSeqRand(0, 1, 0), CombatConfig{MaxSteps: 2})

	require.Len(t, res.Log, 5)
	assert.Equal(t, "Player 1's A1 (1/10) attacks Player 2's B2 (1/10).", res.Log[2])
	assert.Equal(t, "Player 2's B1 (1/10) attacks Player 1's A1 (1/9).", res.Log[3])
	assert.Equal(t, 2, res.Steps)
}

// TestCombatEmptyBoards: no coin flip and no hero damage when both boards are empty.
func TestCombatEmptyBoards(t *testing.T) {
	gs := newCombatState(t)
	rng := newSeqRand()

	res := ResolveCombat(gs, rng, CombatConfig{})

	assert.Equal(t, []string{"Combat begins!", "It's a tie! No hero damage dealt."}, res.Log)
	assert.Equal(t, 0, rng.calls)
	assert.True(t, res.Tie())
	assert.Equal(t, -1, res.FirstAttacker)
}

// TestCombatOneSideEmpty: the side with minions wins without any attacks.
func TestCombatOneSideEmpty(t *testing.T) {
	gs := newCombatState(t)
	place(gs, 1, ZoneBoard, TestCard())
	rng := newSeqRand()

	res := ResolveCombat(gs, rng, CombatConfig{HeroDamage: FixedHeroDamage(5)})

	assert.Equal(t, []string{
		"Combat begins!",
		"Player 2 wins the round! Player 1 takes 5 damage.",
	}, res.Log)
	assert.Equal(t, 0, rng.calls)
	assert.Equal(t, 25, gs.Players[0].Health)
}

// TestCombatZeroAttackStalemate: boards that cannot damage each other stop immediately.
func TestCombatZeroAttackStalemate(t *testing.T) {
	gs := newCombatState(t)
	place(gs, 0, ZoneBoard, vanilla("Pillow", 0, 5))
	place(gs, 1, ZoneBoard, vanilla("Cushion", 0, 5))

	res := ResolveCombat(gs, newSeqRand(0), CombatConfig{})

	assert.True(t, res.Stalemate)
	assert.True(t, res.Tie())
	assert.Equal(t, 0, res.Steps)
	assert.Equal(t, "Stalemate! No hero damage dealt.", res.Log[len(res.Log)-1])
	assert.Equal(t, 30, gs.Players[0].Health)
	assert.Equal(t, 30, gs.Players[1].Health)
}

// TestCombatConservesMinions: whatever happens, every minion ends on its owner's
// board or in its owner's graveyard, and at least one board is empty unless stalemated.
func TestCombatConservesMinions(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			gs := newCombatState(t)
			place(gs, 0, ZoneBoard, GlassCannon(), Wall(), RebornWhelp(), Brute())
			place(gs, 1, ZoneBoard, Squire(), Caretaker(), TestCard2(), GlassCannon2(), RebornWhelp())

			res := ResolveCombat(gs, NewRand(seed), CombatConfig{})

			p0, p1 := gs.Players[0], gs.Players[1]
			assert.Equal(t, 4, len(p0.Board)+len(p0.Graveyard))
			assert.Equal(t, 5, len(p1.Board)+len(p1.Graveyard))
			assert.True(t, res.Stalemate || len(p0.Board) == 0 || len(p1.Board) == 0)
			for _, m := range gs.Board(0) {
				assert.Positive(t, m.HP)
			}
			for _, m := range gs.Board(1) {
				assert.Positive(t, m.HP)
			}
			if res.Loser == 0 {
				assert.Equal(t, 30-res.Damage, p0.Health)
			} else {
				assert.Equal(t, 30, p0.Health)
			}
			requireZones(t, gs)
		})
	}
}

// TestCombatLeavesEconomyAlone: gold, hands and shops are untouched by combat.
func TestCombatLeavesEconomyAlone(t *testing.T) {
	gs := newCombatState(t)
	place(gs, 0, ZoneBoard, Brute())
	place(gs, 1, ZoneBoard, Wall())
	place(gs, 0, ZoneHand, TestCard())
	place(gs, 1, ZoneShop, TestCard2(), Wall())
	gs.Players[0].Gold = 7

	ResolveCombat(gs, NewRand(3), CombatConfig{})

	assert.Equal(t, 7, gs.Players[0].Gold)
	assert.Equal(t, 3, gs.Players[1].Gold)
	assert.Len(t, gs.Players[0].Hand, 1)
	assert.Len(t, gs.Players[1].Shop, 2)
	requireZones(t, gs)
}
