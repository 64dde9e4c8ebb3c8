package game

import (
	"fmt"

	"go.uber.org/zap"
)

// Player represents one player's entire state. Zones hold minion IDs in order;
// Board index 0 is the next attacker.
type Player struct {
	ID          int // 1 or 2
	Gold        int
	Health      int
	TavernTier  int
	UpgradeCost int

	Shop      []int
	Hand      []int
	Board     []int
	Graveyard []int
}

func (p *Player) zone(z ZoneType) *[]int {
	switch z {
	case ZoneShop:
		return &p.Shop
	case ZoneHand:
		return &p.Hand
	case ZoneBoard:
		return &p.Board
	case ZoneGraveyard:
		return &p.Graveyard
	default:
		panic(fmt.Sprintf("player %d has no zone %s", p.ID, z))
	}
}

// Has reports whether minion id is in the given zone.
func (p *Player) Has(z ZoneType, id int) bool {
	for _, v := range *p.zone(z) {
		if v == id {
			return true
		}
	}
	return false
}

// Defeated reports whether the player's health has dropped to zero or below.
func (p *Player) Defeated() bool {
	return p.Health <= 0
}

// --- GameState ---

// GameState holds the complete state of a match.
type GameState struct {
	Players [2]*Player
	Turn    int // 1-based turn counter
	Phase   Phase
	Arena   *Arena
	Rules   Rules

	// Game result
	Winner int // 0, 1, or -1 (no winner yet / draw)
	Over   bool
	Result string
}

// NewGameState creates a fresh match state for the given rules.
func NewGameState(rules Rules, logger *zap.Logger) *GameState {
	gs := &GameState{
		Turn:   1,
		Phase:  PhaseBuy,
		Arena:  NewArena(logger),
		Rules:  rules,
		Winner: -1,
	}
	for i := range gs.Players {
		gs.Players[i] = &Player{
			ID:          i + 1,
			Gold:        rules.GoldForTurn(1),
			Health:      rules.StartingHealth,
			TavernTier:  1,
			UpgradeCost: rules.UpgradeBaseCost,
		}
	}
	return gs
}

// Opponent returns the index of the other player.
func (gs *GameState) Opponent(player int) int {
	return 1 - player
}

// Minion returns the live minion with the given ID, or nil.
func (gs *GameState) Minion(id int) *Minion {
	return gs.Arena.Get(id)
}

// Zone resolves a player's zone into minions, in order.
func (gs *GameState) Zone(player int, z ZoneType) []*Minion {
	ids := *gs.Players[player].zone(z)
	out := make([]*Minion, 0, len(ids))
	for _, id := range ids {
		out = append(out, gs.Arena.Get(id))
	}
	return out
}

// Board is shorthand for Zone(player, ZoneBoard).
func (gs *GameState) Board(player int) []*Minion {
	return gs.Zone(player, ZoneBoard)
}

// CheckWinCondition checks if either player's health has hit 0.
// Returns true if the game is over.
func (gs *GameState) CheckWinCondition() bool {
	p0Dead := gs.Players[0].Defeated()
	p1Dead := gs.Players[1].Defeated()

	if p0Dead && p1Dead {
		gs.Over = true
		gs.Winner = -1
		gs.Result = "Draw: both players' health reached 0"
		return true
	}
	if p0Dead {
		gs.Over = true
		gs.Winner = 1
		gs.Result = "Player 2 wins: Player 1's health reached 0"
		return true
	}
	if p1Dead {
		gs.Over = true
		gs.Winner = 0
		gs.Result = "Player 1 wins: Player 2's health reached 0"
		return true
	}
	return false
}
