package net

import (
	"fmt"
	"strings"

	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/Christian103103/HSemulator/internal/log"
)

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(state *game.GameState, player int) *StateView {
	me := state.Players[player]
	opp := state.Players[state.Opponent(player)]

	sv := &StateView{
		Turn:  state.Turn,
		Phase: state.Phase.String(),
	}

	sv.You = PlayerView{
		Seat:        me.ID,
		Health:      me.Health,
		TavernTier:  me.TavernTier,
		Gold:        me.Gold,
		UpgradeCost: me.UpgradeCost,
		HandCount:   len(me.Hand),
		Shop:        MinionViews(state.Zone(player, game.ZoneShop)),
		Hand:        MinionViews(state.Zone(player, game.ZoneHand)),
		Board:       MinionViews(state.Board(player)),
		Graveyard:   MinionViews(state.Zone(player, game.ZoneGraveyard)),
	}

	// The opponent's shop, hand and gold stay hidden.
	sv.Opponent = PlayerView{
		Seat:       opp.ID,
		Health:     opp.Health,
		TavernTier: opp.TavernTier,
		HandCount:  len(opp.Hand),
		Board:      MinionViews(state.Board(state.Opponent(player))),
	}
	return sv
}

// MinionViews converts minions into their wire form.
func MinionViews(ms []*game.Minion) []MinionView {
	out := make([]MinionView, 0, len(ms))
	for _, m := range ms {
		out = append(out, MinionViewOf(m))
	}
	return out
}

// MinionViewOf converts a single minion.
func MinionViewOf(m *game.Minion) MinionView {
	return MinionView{
		ID:         m.ID,
		Name:       m.Name,
		Attack:     m.Attack,
		HP:         m.HP,
		MaxHP:      m.MaxHP,
		Tier:       m.Tier,
		Abilities:  m.Card.Abilities(),
		UsedReborn: m.UsedReborn,
	}
}

// ActionViews numbers actions for display.
func ActionViews(actions []game.Action) []ActionView {
	views := make([]ActionView, 0, len(actions))
	for i, a := range actions {
		views = append(views, ActionView{Index: i, Type: a.Type.String(), Desc: a.String()})
	}
	return views
}

// EventViewOf converts a logged event.
func EventViewOf(event log.GameEvent) *EventView {
	return &EventView{
		Turn:    event.Turn,
		Phase:   event.Phase,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Details: event.Details,
	}
}

// FormatCard renders a card template as one line, e.g. "Reborn Whelp (tier 2) 2/1 [Reborn]: Reborn".
func FormatCard(c *game.Card) string {
	tier := c.Tier
	if tier == 0 {
		tier = 1
	}
	s := fmt.Sprintf("%s (tier %d) %d/%d", c.Name, tier, c.Attack, c.HP)
	if abilities := c.Abilities(); len(abilities) > 0 {
		s += " [" + strings.Join(abilities, ", ") + "]"
	}
	if c.Description != "" {
		s += ": " + c.Description
	}
	return s
}
