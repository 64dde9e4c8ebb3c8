package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventPhaseChange EventType = iota
	EventNewTurn
	EventShopRefresh
	EventPurchase
	EventPlay
	EventSell
	EventUpgrade
	EventBattlecry
	EventEndOfTurn
	EventCombatBegin
	EventFirstAttacker
	EventAttack
	EventDeath
	EventReborn
	EventRoundWin
	EventRoundTie
	EventStalemate
	EventHPChange
	EventResurrect
	EventGoldGrant
	EventWin
	EventDraw_Tie
)

func (e EventType) String() string {
	switch e {
	case EventPhaseChange:
		return "PhaseChange"
	case EventNewTurn:
		return "NewTurn"
	case EventShopRefresh:
		return "ShopRefresh"
	case EventPurchase:
		return "Purchase"
	case EventPlay:
		return "Play"
	case EventSell:
		return "Sell"
	case EventUpgrade:
		return "Upgrade"
	case EventBattlecry:
		return "Battlecry"
	case EventEndOfTurn:
		return "EndOfTurn"
	case EventCombatBegin:
		return "CombatBegin"
	case EventFirstAttacker:
		return "FirstAttacker"
	case EventAttack:
		return "Attack"
	case EventDeath:
		return "Death"
	case EventReborn:
		return "Reborn"
	case EventRoundWin:
		return "RoundWin"
	case EventRoundTie:
		return "RoundTie"
	case EventStalemate:
		return "Stalemate"
	case EventHPChange:
		return "HPChange"
	case EventResurrect:
		return "Resurrect"
	case EventGoldGrant:
		return "GoldGrant"
	case EventWin:
		return "Win"
	case EventDraw_Tie:
		return "Draw(tie)"
	default:
		return "Unknown"
	}
}

// IsCombat reports whether the event belongs to the combat log of a round.
func (e EventType) IsCombat() bool {
	switch e {
	case EventCombatBegin, EventFirstAttacker, EventAttack, EventDeath, EventReborn,
		EventRoundWin, EventRoundTie, EventStalemate:
		return true
	default:
		return false
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Phase   string    // current phase name (e.g. "Buy Phase")
	Player  int       // acting player (0 or 1), -1 when no player acts
	Type    EventType // event type
	Card    string    // card name (if applicable)
	CardID  int       // minion instance ID (if applicable)
	Details string    // human-readable detail string
}
