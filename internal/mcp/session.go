package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	stdnet "net"
	"sync"

	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/Christian103103/HSemulator/internal/log"
	hsnet "github.com/Christian103103/HSemulator/internal/net"
	"go.uber.org/zap"
)

// DecisionType identifies what kind of decision the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseAction DecisionType = "choose_action"
	DecisionGameOver     DecisionType = "game_over"
)

// Opponent kinds accepted by start_game.
const (
	OpponentBot   = "bot"
	OpponentHuman = "human"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type    DecisionType       `json:"type"`
	Player  int                `json:"player"`
	State   *hsnet.StateView   `json:"state"`
	Actions []hsnet.ActionView `json:"actions,omitempty"`
}

// ActionResponse is sent back from the take_action tool to the controller.
type ActionResponse struct {
	Index int
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	GameID   string            `json:"game_id,omitempty"`
	Events   []hsnet.EventView `json:"events"`
	State    *hsnet.StateView  `json:"state,omitempty"`
	Pending  *PendingView      `json:"pending,omitempty"`
	GameOver bool              `json:"game_over"`
	Winner   int               `json:"winner"`
	Result   string            `json:"result,omitempty"`
	Port     string            `json:"port,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType       `json:"type"`
	ForPlayer string             `json:"for_player"`
	Actions   []hsnet.ActionView `json:"actions,omitempty"`
}

// GameSession holds the state of a single MCP game session.
type GameSession struct {
	match       *game.Match
	agentCtrl   *MCPController
	humanCtrl   *hsnet.NetworkController
	agentPlayer int

	listener  stdnet.Listener
	humanConn stdnet.Conn

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []hsnet.EventView
	gameOver bool
	winner   int
	result   string
	log      *zap.Logger
}

// NewGameSession creates a new game session with the agent on agentPlayer.
// Against a human it starts a TCP listener and blocks until `hsemu join`
// connects; against the bot the match starts immediately.
func NewGameSession(cfg game.MatchConfig, agentPlayer int, opponent, port string) (*GameSession, error) {
	zl := cfg.Log
	if zl == nil {
		zl = zap.NewNop()
	}
	sess := &GameSession{
		agentPlayer: agentPlayer,
		pendingCh:   make(chan *PendingDecision, 1),
		winner:      -1,
		log:         zl,
	}
	sess.agentCtrl = NewMCPController(agentPlayer, sess)

	var other game.PlayerController
	switch opponent {
	case OpponentBot, "":
		other = game.NewGreedyController()
	case OpponentHuman:
		conn, err := sess.acceptHuman(port)
		if err != nil {
			return nil, err
		}
		sess.humanCtrl = hsnet.NewNetworkController(conn, 1-agentPlayer)
		other = sess.humanCtrl
	default:
		return nil, fmt.Errorf("unknown opponent %q (want %q or %q)", opponent, OpponentBot, OpponentHuman)
	}

	ctrl0, ctrl1 := game.PlayerController(sess.agentCtrl), other
	if agentPlayer == 1 {
		ctrl0, ctrl1 = other, sess.agentCtrl
	}

	if cfg.Logger == nil {
		cfg.Logger = log.NewMemoryLogger()
	}
	match, err := game.NewMatch(cfg, ctrl0, ctrl1)
	if err != nil {
		sess.closeHuman()
		return nil, err
	}
	sess.match = match

	if sess.humanCtrl != nil {
		if err := sess.humanCtrl.SendHello(match.Session.GameID); err != nil {
			sess.closeHuman()
			return nil, fmt.Errorf("hello: %w", err)
		}
	}

	go sess.run()
	return sess, nil
}

func (s *GameSession) acceptHuman(port string) (stdnet.Conn, error) {
	ln, err := stdnet.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}

	// Accept one connection (blocks until the human runs `hsemu join`)
	conn, err := ln.Accept()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("accept: %w", err)
	}

	var joinMsg hsnet.ClientMessage
	if err := json.NewDecoder(conn).Decode(&joinMsg); err != nil {
		conn.Close()
		ln.Close()
		return nil, fmt.Errorf("read join message: %w", err)
	}
	s.log.Info("human joined", zap.String("name", joinMsg.Name), zap.Stringer("remote", conn.RemoteAddr()))

	s.listener = ln
	s.humanConn = conn
	return conn, nil
}

func (s *GameSession) closeHuman() {
	if s.humanConn != nil {
		s.humanConn.Close()
	}
	if s.listener != nil {
		s.listener.Close()
	}
}

// run plays the match to completion and posts the game-over decision.
func (s *GameSession) run() {
	winner, err := s.match.Run(context.Background())
	result := s.match.State().Result
	if err != nil {
		result = fmt.Sprintf("error: %v", err)
		s.log.Error("match failed", zap.Error(err))
	}
	if result == "" {
		result = fmt.Sprintf("Game over. Winner: player %d", winner+1)
	}

	if s.humanCtrl != nil {
		_ = s.humanCtrl.SendGameOver(winner, result)
	}
	s.closeHuman()

	s.mu.Lock()
	s.gameOver = true
	s.winner = winner
	s.result = result
	s.mu.Unlock()

	s.pendingCh <- &PendingDecision{
		Type:   DecisionGameOver,
		Player: winner,
		State:  s.stateView(),
	}
}

// GameID returns the session's game identifier.
func (s *GameSession) GameID() string {
	return s.match.Session.GameID
}

func (s *GameSession) stateView() *hsnet.StateView {
	sv := hsnet.BuildStateView(s.match.State(), s.agentPlayer)
	sv.GameID = s.GameID()
	return sv
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev *hsnet.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []hsnet.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	if events == nil {
		events = []hsnet.EventView{}
	}
	return events
}

// waitForPending blocks until the next decision arrives from the game engine,
// then builds a ToolResponse with accumulated events + the pending decision.
func (s *GameSession) waitForPending(ctx context.Context) (*ToolResponse, error) {
	var pending *PendingDecision
	select {
	case pending = <-s.pendingCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	s.currentPending = pending

	resp := &ToolResponse{
		GameID: s.GameID(),
		Events: s.drainEvents(),
		State:  pending.State,
		Winner: -1,
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		resp.Result = s.result
		s.mu.Unlock()
		return resp, nil
	}

	resp.Pending = &PendingView{
		Type:      pending.Type,
		ForPlayer: s.playerLabel(pending.Player),
		Actions:   pending.Actions,
	}
	return resp, nil
}

// playerLabel returns "agent" or "opponent" for the given player index.
func (s *GameSession) playerLabel(player int) string {
	if player == s.agentPlayer {
		return "agent"
	}
	return "opponent"
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
