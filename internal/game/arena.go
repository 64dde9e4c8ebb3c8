package game

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Arena stores every live minion exactly once. Zones reference minions by ID.
type Arena struct {
	minions map[int]*Minion
	log     *zap.Logger
}

// NewArena creates an empty arena.
func NewArena(logger *zap.Logger) *Arena {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Arena{minions: make(map[int]*Minion), log: logger}
}

// Get returns the minion with the given ID, or nil.
func (a *Arena) Get(id int) *Minion {
	return a.minions[id]
}

// Len returns the number of live minions.
func (a *Arena) Len() int {
	return len(a.minions)
}

func (a *Arena) add(m *Minion) {
	if _, dup := a.minions[m.ID]; dup {
		panic(fmt.Sprintf("arena: duplicate minion id %d", m.ID))
	}
	a.minions[m.ID] = m
}

func (a *Arena) remove(id int) {
	delete(a.minions, id)
}

// --- Ownership transfers ---

// spawn creates a minion from a template and appends it to the player's zone.
func (gs *GameState) spawn(card *Card, player int, to ZoneType) *Minion {
	m := newMinion(card, player)
	gs.Arena.add(m)
	zone := gs.Players[player].zone(to)
	*zone = append(*zone, m.ID)
	m.Zone = to
	return m
}

// transfer moves minion id from one of the player's zones to the end of another.
func (gs *GameState) transfer(player int, id int, from, to ZoneType) *Minion {
	idx := slices.Index(*gs.Players[player].zone(from), id)
	if idx < 0 {
		panic(fmt.Sprintf("transfer: minion %d not in player %d %s", id, player+1, from))
	}
	return gs.transferAt(player, from, idx, to)
}

// transferAt moves the minion at index idx of the from zone to the end of the to zone.
func (gs *GameState) transferAt(player int, from ZoneType, idx int, to ZoneType) *Minion {
	src := gs.Players[player].zone(from)
	if idx < 0 || idx >= len(*src) {
		panic(fmt.Sprintf("transfer: index %d out of range for player %d %s (len %d)", idx, player+1, from, len(*src)))
	}
	id := (*src)[idx]
	*src = slices.Delete(*src, idx, idx+1)
	dst := gs.Players[player].zone(to)
	*dst = append(*dst, id)

	m := gs.Arena.Get(id)
	m.Zone = to
	gs.Arena.log.Debug("minion transfer",
		zap.Int("id", id),
		zap.String("name", m.Name),
		zap.Int("player", player+1),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	)
	return m
}

// discard removes minion id from the player's zone and from the arena.
func (gs *GameState) discard(player int, id int, from ZoneType) *Minion {
	src := gs.Players[player].zone(from)
	idx := slices.Index(*src, id)
	if idx < 0 {
		panic(fmt.Sprintf("discard: minion %d not in player %d %s", id, player+1, from))
	}
	*src = slices.Delete(*src, idx, idx+1)
	m := gs.Arena.Get(id)
	gs.Arena.remove(id)
	m.Zone = ZoneNone
	return m
}

// CheckZones verifies that every arena minion is referenced by exactly one zone
// of its owner and that no zone references a missing minion.
func (gs *GameState) CheckZones() error {
	seen := make(map[int]ZoneType, gs.Arena.Len())
	for p, player := range gs.Players {
		for _, z := range []ZoneType{ZoneShop, ZoneHand, ZoneBoard, ZoneGraveyard} {
			for _, id := range *player.zone(z) {
				m := gs.Arena.Get(id)
				if m == nil {
					return fmt.Errorf("player %d %s references missing minion %d", p+1, z, id)
				}
				if prev, dup := seen[id]; dup {
					return fmt.Errorf("minion %d is in both %s and %s", id, prev, z)
				}
				seen[id] = z
				if m.Owner != p || m.Zone != z {
					return fmt.Errorf("minion %d bookkeeping says player %d %s, found in player %d %s", id, m.Owner+1, m.Zone, p+1, z)
				}
			}
		}
	}
	if len(seen) != gs.Arena.Len() {
		return fmt.Errorf("arena holds %d minions but zones reference %d", gs.Arena.Len(), len(seen))
	}
	return nil
}
