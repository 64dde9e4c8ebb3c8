package game

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// EffectKind tags the ability variants a card can carry.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectBuffRandomAlly
	EffectHealBoard
	EffectBuffBoard
)

func (k EffectKind) String() string {
	switch k {
	case EffectBuffRandomAlly:
		return "buff_random_ally"
	case EffectHealBoard:
		return "heal_board"
	case EffectBuffBoard:
		return "buff_board"
	default:
		return "none"
	}
}

// ParseEffectKind is the inverse of EffectKind.String.
func ParseEffectKind(s string) (EffectKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return EffectNone, nil
	case "buff_random_ally":
		return EffectBuffRandomAlly, nil
	case "heal_board":
		return EffectHealBoard, nil
	case "buff_board":
		return EffectBuffBoard, nil
	default:
		return EffectNone, fmt.Errorf("unknown effect kind %q", s)
	}
}

// Effect is one ability. Attack and Health are the magnitudes the kind applies.
type Effect struct {
	Kind   EffectKind
	Attack int
	Health int
}

// None reports whether the effect is absent.
func (e Effect) None() bool {
	return e.Kind == EffectNone
}

// --- Card definition (static template) ---

type Card struct {
	Name        string
	Description string
	Attack      int
	HP          int
	Tier        int
	Battlecry   Effect
	EndOfTurn   Effect
	Reborn      bool
}

func (c *Card) String() string {
	return c.Name
}

// Abilities lists the ability labels shown next to a card.
func (c *Card) Abilities() []string {
	var parts []string
	if !c.Battlecry.None() {
		parts = append(parts, "Battlecry")
	}
	if !c.EndOfTurn.None() {
		parts = append(parts, "EoT")
	}
	if c.Reborn {
		parts = append(parts, "Reborn")
	}
	return parts
}

// --- Minion (runtime instance in shop/hand/board/graveyard) ---

// minionSeq hands out minion IDs. IDs are unique for the life of the process.
var minionSeq atomic.Int64

func nextMinionID() int {
	return int(minionSeq.Add(1))
}

type Minion struct {
	ID   int
	Card *Card
	Name string

	Attack int
	HP     int
	MaxHP  int // restored to between rounds; raised by permanent buffs
	Tier   int

	Battlecry  Effect
	EndOfTurn  Effect
	Reborn     bool
	UsedReborn bool

	Owner int      // player index (0 or 1)
	Zone  ZoneType // maintained by GameState transfers
}

// newMinion copies a template into a fresh instance with a new ID.
func newMinion(card *Card, owner int) *Minion {
	tier := card.Tier
	if tier == 0 {
		tier = 1
	}
	return &Minion{
		ID:        nextMinionID(),
		Card:      card,
		Name:      card.Name,
		Attack:    card.Attack,
		HP:        card.HP,
		MaxHP:     card.HP,
		Tier:      tier,
		Battlecry: card.Battlecry,
		EndOfTurn: card.EndOfTurn,
		Reborn:    card.Reborn,
		Owner:     owner,
	}
}

func (m *Minion) String() string {
	if m == nil {
		return "(empty)"
	}
	return fmt.Sprintf("%s #%d (%s)", m.Name, m.ID, m.Stats())
}

// Stats returns "attack/hp" as shown in the combat log.
func (m *Minion) Stats() string {
	return fmt.Sprintf("%d/%d", m.Attack, m.HP)
}

// DisplayString returns a human-readable description for the event log.
func (m *Minion) DisplayString() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.Stats())
}

// Dead reports whether the minion has lethal damage.
func (m *Minion) Dead() bool {
	return m.HP <= 0
}

// CanReborn reports whether a lethal hit would revive the minion instead of killing it.
func (m *Minion) CanReborn() bool {
	return m.Reborn && !m.UsedReborn
}

// Restore heals the minion to MaxHP and re-arms reborn.
func (m *Minion) Restore() {
	m.HP = m.MaxHP
	m.UsedReborn = false
}
