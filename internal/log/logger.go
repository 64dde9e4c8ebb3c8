package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "Player 1" or "Player 2" for display.
func playerName(p int) string {
	return fmt.Sprintf("Player %d", p+1)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	phase := e.Phase
	if phase == "" {
		phase = "          "
	}
	// Pad phase to 14 chars for alignment
	for len(phase) < 14 {
		phase += " "
	}

	return fmt.Sprintf("T%-2d %s| %s", e.Turn, phase, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CombatLines returns the Details of every combat event in order.
func CombatLines(events []GameEvent) []string {
	var lines []string
	for _, e := range events {
		if e.Type.IsCombat() {
			lines = append(lines, e.Details)
		}
	}
	return lines
}

// --- Helper constructors for common events ---

func NewPhaseChangeEvent(turn int, phase string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventPhaseChange,
		Details: fmt.Sprintf("Phase → %s", phase),
	}
}

func NewTurnEvent(turn int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  -1,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d ===", turn),
	}
}

func NewGoldGrantEvent(turn int, player int, gold int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  player,
		Type:    EventGoldGrant,
		Details: fmt.Sprintf("%s has %d gold", playerName(player), gold),
	}
}

func NewShopRefreshEvent(turn int, phase string, player int, names []string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventShopRefresh,
		Details: fmt.Sprintf("%s's shop: %s", playerName(player), strings.Join(names, ", ")),
	}
}

func NewPurchaseEvent(turn int, player int, cardName string, cardID int, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  player,
		Type:    EventPurchase,
		Card:    cardName,
		CardID:  cardID,
		Details: fmt.Sprintf("%s buys %s for %d gold", playerName(player), cardName, cost),
	}
}

func NewPlayEvent(turn int, player int, cardName string, cardID int, stats string, slot int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  player,
		Type:    EventPlay,
		Card:    cardName,
		CardID:  cardID,
		Details: fmt.Sprintf("%s plays %s (%s) to board slot %d", playerName(player), cardName, stats, slot+1),
	}
}

func NewSellEvent(turn int, player int, cardName string, cardID int, zone string, refund int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  player,
		Type:    EventSell,
		Card:    cardName,
		CardID:  cardID,
		Details: fmt.Sprintf("%s sells %s from %s for %d gold", playerName(player), cardName, zone, refund),
	}
}

func NewUpgradeEvent(turn int, player int, tier int, cost int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  player,
		Type:    EventUpgrade,
		Details: fmt.Sprintf("%s upgrades the tavern to tier %d for %d gold", playerName(player), tier, cost),
	}
}

func NewBattlecryEvent(turn int, player int, cardName string, cardID int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  player,
		Type:    EventBattlecry,
		Card:    cardName,
		CardID:  cardID,
		Details: fmt.Sprintf("Battlecry: %s", details),
	}
}

func NewEndOfTurnEvent(turn int, player int, cardName string, cardID int, details string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Combat Phase",
		Player:  player,
		Type:    EventEndOfTurn,
		Card:    cardName,
		CardID:  cardID,
		Details: fmt.Sprintf("End of turn: %s", details),
	}
}

// NewCombatEvent wraps one line of the combat log. The Details string is the
// line itself, unmodified.
func NewCombatEvent(turn int, player int, t EventType, cardName string, cardID int, line string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Combat Phase",
		Player:  player,
		Type:    t,
		Card:    cardName,
		CardID:  cardID,
		Details: line,
	}
}

func NewHPChangeEvent(turn int, phase string, player int, oldHP, newHP int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  player,
		Type:    EventHPChange,
		Details: fmt.Sprintf("%s health: %d → %d (%s)", playerName(player), oldHP, newHP, reason),
	}
}

func NewResurrectEvent(turn int, player int, cardName string, cardID int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   "Buy Phase",
		Player:  player,
		Type:    EventResurrect,
		Card:    cardName,
		CardID:  cardID,
		Details: fmt.Sprintf("%s returns to %s's board", cardName, playerName(player)),
	}
}

func NewWinEvent(turn int, phase string, winner int, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  winner,
		Type:    EventWin,
		Details: fmt.Sprintf("%s wins the game! (%s)", playerName(winner), reason),
	}
}

func NewDrawEvent(turn int, phase string, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Phase:   phase,
		Player:  -1,
		Type:    EventDraw_Tie,
		Details: fmt.Sprintf("The game is a draw (%s)", reason),
	}
}
