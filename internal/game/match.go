package game

import (
	"context"
	"fmt"

	"github.com/Christian103103/HSemulator/internal/log"
	"go.uber.org/zap"
)

// PlayerController is the interface that human (TCP), web and AI (MCP) players implement.
type PlayerController interface {
	// ChooseAction presents the legal buy-phase actions and waits for the player to pick one.
	ChooseAction(ctx context.Context, state *GameState, actions []Action) (Action, error)

	// Notify sends a game event notification (no response needed).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Pool       []*Card // card templates (nil = DefaultPool)
	Rules      Rules
	Rand       Rand
	Seed       int64 // RNG seed (0 for random)
	HeroDamage HeroDamageFunc
	Logger     log.EventLogger
	Log        *zap.Logger
	MaxTurns   int // stop after this many turns (0 = DefaultMaxTurns)
	MaxActions int // buy-phase actions per player per turn before End Turn is forced (0 = DefaultMaxActions)
}

const (
	DefaultMaxTurns   = 100
	DefaultMaxActions = 50
)

// Match drives a Session with two controllers: both players shop, then the
// round is fought, then the next turn begins, until someone is defeated.
type Match struct {
	Session     *Session
	Controllers [2]PlayerController
	ctx         context.Context
	maxTurns    int
	maxActions  int
	log         *zap.Logger

	// Events logged before Run are held back until controllers are live.
	started bool
	backlog []log.GameEvent
}

// NewMatch creates a new match from the given config and player controllers.
func NewMatch(cfg MatchConfig, p0, p1 PlayerController) (*Match, error) {
	m := &Match{
		Controllers: [2]PlayerController{p0, p1},
		ctx:         context.Background(),
		maxTurns:    cfg.MaxTurns,
		maxActions:  cfg.MaxActions,
	}
	if m.maxTurns <= 0 {
		m.maxTurns = DefaultMaxTurns
	}
	if m.maxActions <= 0 {
		m.maxActions = DefaultMaxActions
	}

	s, err := NewSession(SessionConfig{
		Pool:       cfg.Pool,
		Rules:      cfg.Rules,
		Rand:       cfg.Rand,
		Seed:       cfg.Seed,
		HeroDamage: cfg.HeroDamage,
		Logger:     cfg.Logger,
		Log:        cfg.Log,
		OnEvent:    m.notify,
	})
	if err != nil {
		return nil, err
	}
	m.Session = s
	m.log = s.Log
	return m, nil
}

// State is shorthand for the session's game state.
func (m *Match) State() *GameState {
	return m.Session.State
}

// Run executes the match loop. Returns the winner (0, 1, or -1 for draw).
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx
	m.started = true
	for _, event := range m.backlog {
		m.notify(event)
	}
	m.backlog = nil
	gs := m.Session.State

	for !gs.Over {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if err := m.runTurn(); err != nil {
			return gs.Winner, err
		}
		if gs.Over {
			break
		}
		if gs.Turn >= m.maxTurns {
			gs.Over = true
			gs.Winner = -1
			gs.Result = fmt.Sprintf("Turn limit reached (%d turns)", m.maxTurns)
			m.Session.emit(log.NewDrawEvent(gs.Turn, gs.Phase.String(), gs.Result))
			break
		}
		if err := m.Session.AdvanceTurn(); err != nil {
			return gs.Winner, err
		}
	}

	m.log.Info("match finished", zap.Int("turn", gs.Turn), zap.Int("winner", gs.Winner+1), zap.String("result", gs.Result))
	return gs.Winner, nil
}

// runTurn runs both buy phases (player 1 first) and then the round.
func (m *Match) runTurn() error {
	for p := 0; p < 2; p++ {
		if err := m.buyPhase(p); err != nil {
			return err
		}
	}
	_, err := m.Session.StartRound()
	return err
}

// buyPhase lets one player act until they end their turn.
func (m *Match) buyPhase(player int) error {
	s := m.Session
	for n := 0; n < m.maxActions; n++ {
		actions := s.LegalActions(player)
		if len(actions) == 0 {
			return nil
		}
		action, err := m.Controllers[player].ChooseAction(m.ctx, s.State, actions)
		if err != nil {
			return fmt.Errorf("player %d choose action: %w", player+1, err)
		}
		if action.Type == ActionEndTurn {
			return nil
		}
		if err := s.Apply(action); err != nil {
			// Rejected actions are no-ops; the player simply picks again.
			m.log.Debug("action rejected", zap.Int("player", player+1), zap.Stringer("action", action.Type), zap.Error(err))
		}
	}
	m.log.Warn("action limit reached, ending turn", zap.Int("player", player+1), zap.Int("limit", m.maxActions))
	return nil
}

// notify forwards an event to both controllers.
func (m *Match) notify(event log.GameEvent) {
	if !m.started {
		m.backlog = append(m.backlog, event)
		return
	}
	for i := range m.Controllers {
		if m.Controllers[i] == nil {
			continue
		}
		// Notifications are best effort.
		_ = m.Controllers[i].Notify(m.ctx, event)
	}
}
