package game

import (
	"context"

	"github.com/Christian103103/HSemulator/internal/log"
)

// GreedyController is a simple bot: it plays everything it holds, buys the
// strongest minion it can fit, upgrades when it has spare gold and ends the
// turn otherwise. It never sells or refreshes.
type GreedyController struct {
	BoardLimit int // 0 = the match's Rules.BoardLimit
}

// NewGreedyController returns a bot that follows the match's board limit.
func NewGreedyController() *GreedyController {
	return &GreedyController{}
}

func (g *GreedyController) ChooseAction(_ context.Context, state *GameState, actions []Action) (Action, error) {
	limit := g.BoardLimit
	if limit <= 0 {
		limit = state.Rules.BoardLimit
	}
	if limit <= 0 {
		limit = BoardLimit
	}

	var best *Action
	bestScore := -1
	var upgrade, end *Action

	for i := range actions {
		a := &actions[i]
		switch a.Type {
		case ActionPlay:
			return *a, nil
		case ActionBuy:
			p := state.Players[a.Player]
			if len(p.Board)+len(p.Hand) >= limit {
				continue
			}
			if m := state.Minion(a.CardID); m != nil {
				if score := minionScore(m); score > bestScore {
					best, bestScore = a, score
				}
			}
		case ActionUpgrade:
			upgrade = a
		case ActionEndTurn:
			end = a
		}
	}

	if best != nil {
		return *best, nil
	}
	if upgrade != nil {
		return *upgrade, nil
	}
	if end != nil {
		return *end, nil
	}
	return actions[len(actions)-1], nil
}

func (g *GreedyController) Notify(context.Context, log.GameEvent) error {
	return nil
}

// minionScore ranks shop minions: stats first, abilities as a tiebreaker.
func minionScore(m *Minion) int {
	score := 2*(m.Attack+m.HP) + m.Tier
	if m.Reborn {
		score++
	}
	if !m.Battlecry.None() || !m.EndOfTurn.None() {
		score++
	}
	return score
}
