package game

import (
	"context"
	"testing"

	"github.com/Christian103103/HSemulator/internal/log"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// seqRand replays a fixed sequence of choices. Each value is reduced modulo n;
// once the sequence is exhausted every call returns 0.
type seqRand struct {
	vals  []int
	pos   int
	calls int
}

func newSeqRand(vals ...int) *seqRand {
	return &seqRand{vals: vals}
}

func (r *seqRand) Intn(n int) int {
	r.calls++
	if r.pos >= len(r.vals) {
		return 0
	}
	v := r.vals[r.pos] % n
	r.pos++
	return v
}

// queue replaces the remaining sequence.
func (r *seqRand) queue(vals ...int) {
	r.vals = vals
	r.pos = 0
}

// ScriptedController is a PlayerController that follows a predefined script of actions.
// Once the script runs out (or the next step is not available) it ends the turn.
type ScriptedController struct {
	t       *testing.T
	name    string
	actions []ScriptedAction
	pos     int

	notified []log.GameEvent
}

type ScriptedAction struct {
	// Match by ActionType: picks the first action of this type
	Type ActionType
	// Optional: match by minion name as well
	CardName string
}

func NewScriptedController(t *testing.T, name string) *ScriptedController {
	return &ScriptedController{t: t, name: name}
}

func (sc *ScriptedController) AddAction(actionType ActionType, cardName string) *ScriptedController {
	sc.actions = append(sc.actions, ScriptedAction{Type: actionType, CardName: cardName})
	return sc
}

func (sc *ScriptedController) ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error) {
	if sc.pos < len(sc.actions) {
		scripted := sc.actions[sc.pos]
		for _, a := range actions {
			if a.Type != scripted.Type {
				continue
			}
			if scripted.CardName != "" {
				m := state.Minion(a.CardID)
				if m == nil || m.Name != scripted.CardName {
					continue
				}
			}
			sc.pos++
			return a, nil
		}
	}
	for _, a := range actions {
		if a.Type == ActionEndTurn {
			return a, nil
		}
	}
	return actions[len(actions)-1], nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.notified = append(sc.notified, event)
	return nil
}

// --- Session helpers ---

// newTestSession builds a session over the default pool with a scripted RNG.
// Both shops are rolled during construction; tests queue combat choices after.
func newTestSession(t *testing.T, rng *seqRand) (*Session, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	s, err := NewSession(SessionConfig{
		Rand:   rng,
		Logger: logger,
		Log:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return s, logger
}

// place spawns minions from the given templates directly into a player's zone.
func place(gs *GameState, player int, zone ZoneType, cards ...*Card) []*Minion {
	out := make([]*Minion, 0, len(cards))
	for _, c := range cards {
		out = append(out, gs.spawn(c, player, zone))
	}
	return out
}

func vanilla(name string, atk, hp int) *Card {
	return &Card{Name: name, Attack: atk, HP: hp, Tier: 1}
}

// newCombatState returns a fresh buy-phase state with empty zones.
func newCombatState(t *testing.T) *GameState {
	t.Helper()
	return NewGameState(DefaultRules(), zaptest.NewLogger(t))
}

func names(ms []*Minion) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Name)
	}
	return out
}

func requireZones(t *testing.T, gs *GameState) {
	t.Helper()
	require.NoError(t, gs.CheckZones())
}

func dumpLog(t *testing.T, logger *log.MemoryLogger) {
	t.Helper()
	t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
}
