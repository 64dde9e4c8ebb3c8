package game

import (
	"fmt"
	"strings"
)

// applyEffect resolves one ability of source for its owner. It returns a
// description of what happened and false when the effect had nothing to act on.
func applyEffect(gs *GameState, rng Rand, player int, source *Minion, eff Effect) (string, bool) {
	switch eff.Kind {
	case EffectBuffRandomAlly:
		var targets []*Minion
		for _, m := range gs.Board(player) {
			if m.ID != source.ID {
				targets = append(targets, m)
			}
		}
		if len(targets) == 0 {
			return fmt.Sprintf("%s finds no target", source.Name), false
		}
		target := targets[rng.Intn(len(targets))]
		buff(target, eff)
		return fmt.Sprintf("%s gives %s %s (now %s)", source.Name, target.Name, signed(eff), target.Stats()), true

	case EffectBuffBoard:
		var names []string
		for _, m := range gs.Board(player) {
			if m.ID == source.ID {
				continue
			}
			buff(m, eff)
			names = append(names, m.Name)
		}
		if len(names) == 0 {
			return fmt.Sprintf("%s finds no target", source.Name), false
		}
		return fmt.Sprintf("%s gives %s to %s", source.Name, signed(eff), strings.Join(names, ", ")), true

	case EffectHealBoard:
		healed := 0
		for _, m := range gs.Board(player) {
			before := m.HP
			m.HP = min(m.HP+eff.Health, m.MaxHP)
			if m.HP > before {
				healed++
			}
		}
		return fmt.Sprintf("%s restores %d health to friendly minions (%d healed)", source.Name, eff.Health, healed), healed > 0

	default:
		return "", false
	}
}

// buff raises attack and both current and maximum health.
func buff(m *Minion, eff Effect) {
	m.Attack += eff.Attack
	m.HP += eff.Health
	m.MaxHP += eff.Health
}

func signed(eff Effect) string {
	return fmt.Sprintf("%+d/%+d", eff.Attack, eff.Health)
}
