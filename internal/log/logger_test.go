package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbilityEventsCarryHookPrefix(t *testing.T) {
	cry := NewBattlecryEvent(1, 0, "Squire", 7, "Squire gives Wall +1/+1 (now 2/5)")
	assert.Equal(t, "Battlecry: Squire gives Wall +1/+1 (now 2/5)", cry.Details)
	assert.Equal(t, EventBattlecry, cry.Type)
	assert.Equal(t, 7, cry.CardID)

	eot := NewEndOfTurnEvent(2, 1, "Caretaker", 9, "Caretaker restores 1 health to friendly minions (0 healed)")
	assert.Equal(t, "End of turn: Caretaker restores 1 health to friendly minions (0 healed)", eot.Details)
	assert.Equal(t, EventEndOfTurn, eot.Type)
	assert.Equal(t, 1, eot.Player)
}
