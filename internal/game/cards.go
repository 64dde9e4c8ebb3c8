package game

// TestCard — Tier 1 vanilla 1/1.
func TestCard() *Card {
	return &Card{Name: "Test Card", Attack: 1, HP: 1, Tier: 1}
}

// TestCard2 — Tier 1 vanilla 1/2.
func TestCard2() *Card {
	return &Card{Name: "Test 2", Attack: 1, HP: 2, Tier: 1}
}

// Wall — Tier 1 vanilla 1/4.
func Wall() *Card {
	return &Card{Name: "Wall", Attack: 1, HP: 4, Tier: 1}
}

// GlassCannon — Tier 1 vanilla 3/1.
func GlassCannon() *Card {
	return &Card{Name: "Glass Cannon", Attack: 3, HP: 1, Tier: 1}
}

// GlassCannon2 — Tier 1 vanilla 3/1.
func GlassCannon2() *Card {
	return &Card{Name: "Glass Cannon 2", Attack: 3, HP: 1, Tier: 1}
}

// Brute — Tier 2 vanilla 3/3.
func Brute() *Card {
	return &Card{Name: "Brute", Attack: 3, HP: 3, Tier: 2}
}

// Squire — Tier 1 1/2. Battlecry: give another random friendly minion +1/+1.
func Squire() *Card {
	return &Card{
		Name:        "Squire",
		Description: "Battlecry: Give another random friendly minion +1/+1.",
		Attack:      1,
		HP:          2,
		Tier:        1,
		Battlecry:   Effect{Kind: EffectBuffRandomAlly, Attack: 1, Health: 1},
	}
}

// RebornWhelp — Tier 2 2/1. Reborn.
func RebornWhelp() *Card {
	return &Card{
		Name:        "Reborn Whelp",
		Description: "Reborn",
		Attack:      2,
		HP:          1,
		Tier:        2,
		Reborn:      true,
	}
}

// Caretaker — Tier 2 2/2. End of turn: restore 1 health to all friendly minions.
func Caretaker() *Card {
	return &Card{
		Name:        "Caretaker",
		Description: "At the end of your turn, restore 1 health to all friendly minions.",
		Attack:      2,
		HP:          2,
		Tier:        2,
		EndOfTurn:   Effect{Kind: EffectHealBoard, Health: 1},
	}
}
