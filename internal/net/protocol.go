package net

// Message types for the JSON protocol over TCP.

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "hello"
	GameID string `json:"game_id,omitempty"`
	Seat   int    `json:"seat,omitempty"` // 1 or 2

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_action"
	Actions []ActionView `json:"actions,omitempty"`
	State   *StateView   `json:"state,omitempty"`

	// For "game_over"; Winner is 0 or 1, -1 for a draw.
	Winner int    `json:"winner"`
	Result string `json:"result,omitempty"`
}

// EventView is a simplified game event for the client.
type EventView struct {
	Turn    int    `json:"turn"`
	Phase   string `json:"phase"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// ActionView is a numbered action choice.
type ActionView struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// MinionView describes one minion in a zone.
type MinionView struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Attack     int      `json:"attack"`
	HP         int      `json:"hp"`
	MaxHP      int      `json:"max_hp"`
	Tier       int      `json:"tier"`
	Abilities  []string `json:"abilities,omitempty"`
	UsedReborn bool     `json:"used_reborn,omitempty"`
}

// StateView is the game state from one player's perspective.
type StateView struct {
	GameID   string     `json:"game_id,omitempty"`
	Turn     int        `json:"turn"`
	Phase    string     `json:"phase"`
	You      PlayerView `json:"you"`
	Opponent PlayerView `json:"opponent"`
}

// PlayerView shows one side. Shop, hand, graveyard and economy are only
// filled in for "you".
type PlayerView struct {
	Seat        int          `json:"seat"`
	Health      int          `json:"health"`
	TavernTier  int          `json:"tavern_tier"`
	Gold        int          `json:"gold,omitempty"`
	UpgradeCost int          `json:"upgrade_cost,omitempty"`
	HandCount   int          `json:"hand_count"`
	Shop        []MinionView `json:"shop,omitempty"`
	Hand        []MinionView `json:"hand,omitempty"`
	Board       []MinionView `json:"board"`
	Graveyard   []MinionView `json:"graveyard,omitempty"`
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "action"
	Index int `json:"index,omitempty"`

	// For "join" (initial handshake)
	Name string `json:"name,omitempty"`
}
