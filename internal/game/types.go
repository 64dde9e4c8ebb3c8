package game

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enums ---

type Phase int

const (
	PhaseNone Phase = iota
	PhaseBuy
	PhaseCombat
)

func (p Phase) String() string {
	switch p {
	case PhaseBuy:
		return "Buy Phase"
	case PhaseCombat:
		return "Combat Phase"
	default:
		return "None"
	}
}

type ZoneType int

const (
	ZoneNone ZoneType = iota
	ZoneShop
	ZoneHand
	ZoneBoard
	ZoneGraveyard
)

func (z ZoneType) String() string {
	switch z {
	case ZoneShop:
		return "Shop"
	case ZoneHand:
		return "Hand"
	case ZoneBoard:
		return "Board"
	case ZoneGraveyard:
		return "Graveyard"
	default:
		return "Unknown"
	}
}

// ParseZone maps a zone name ("shop", "hand", "board", "graveyard") to its ZoneType.
func ParseZone(s string) (ZoneType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shop":
		return ZoneShop, true
	case "hand":
		return ZoneHand, true
	case "board":
		return ZoneBoard, true
	case "graveyard":
		return ZoneGraveyard, true
	default:
		return ZoneNone, false
	}
}

// --- Action types ---

type ActionType int

const (
	ActionBuy ActionType = iota
	ActionPlay
	ActionSell
	ActionRefresh
	ActionUpgrade
	ActionEndTurn
)

func (a ActionType) String() string {
	switch a {
	case ActionBuy:
		return "Buy"
	case ActionPlay:
		return "Play"
	case ActionSell:
		return "Sell"
	case ActionRefresh:
		return "Refresh"
	case ActionUpgrade:
		return "Upgrade"
	case ActionEndTurn:
		return "End Turn"
	default:
		return "Unknown"
	}
}

// Action represents a buy-phase player action with all necessary details.
type Action struct {
	Type   ActionType
	Player int
	CardID int      // minion being bought/played/sold
	Zone   ZoneType // source zone for sells
	Desc   string   // human-readable description
}

func (a Action) String() string {
	if a.Desc != "" {
		return a.Desc
	}
	return a.Type.String()
}

// --- Rejections ---

// RejectReason explains why an action was a no-op.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectInsufficientGold
	RejectNotFound
	RejectBoardFull
	RejectTierMaxed
	RejectWrongPhase
	RejectGameOver
	RejectInvalidZone
)

func (r RejectReason) String() string {
	switch r {
	case RejectInsufficientGold:
		return "insufficient gold"
	case RejectNotFound:
		return "card not found"
	case RejectBoardFull:
		return "board full"
	case RejectTierMaxed:
		return "tavern tier maxed"
	case RejectWrongPhase:
		return "wrong phase"
	case RejectGameOver:
		return "game over"
	case RejectInvalidZone:
		return "invalid zone"
	default:
		return "none"
	}
}

// ActionError reports a rejected action. The rejected action never changes state.
type ActionError struct {
	Action ActionType
	Player int
	Reason RejectReason
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s rejected for player %d: %s", e.Action, e.Player+1, e.Reason)
}

func reject(action ActionType, player int, reason RejectReason) error {
	return &ActionError{Action: action, Player: player, Reason: reason}
}

// ReasonOf extracts the RejectReason from err, or RejectNone if err is not an ActionError.
func ReasonOf(err error) RejectReason {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return RejectNone
}
