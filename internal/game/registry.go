package game

import (
	"errors"
	"fmt"
)

// ErrUnknownCard is returned when a card name is not in the registry.
var ErrUnknownCard = errors.New("card not found in registry")

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() *Card{
	"Test Card":      TestCard,
	"Test 2":         TestCard2,
	"Wall":           Wall,
	"Glass Cannon":   GlassCannon,
	"Glass Cannon 2": GlassCannon2,
	"Brute":          Brute,
	"Squire":         Squire,
	"Reborn Whelp":   RebornWhelp,
	"Caretaker":      Caretaker,
}

// registryOrder fixes the default pool order so seeded shop rolls are reproducible.
var registryOrder = []string{
	"Test Card",
	"Test 2",
	"Wall",
	"Glass Cannon",
	"Glass Cannon 2",
	"Brute",
	"Squire",
	"Reborn Whelp",
	"Caretaker",
}

// LookupCard looks up a card by name and returns a new instance.
func LookupCard(name string) (*Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return ctor(), nil
}

// DefaultPool returns every registered template in registry order.
func DefaultPool() []*Card {
	pool := make([]*Card, 0, len(registryOrder))
	for _, name := range registryOrder {
		pool = append(pool, CardRegistry[name]())
	}
	return pool
}
