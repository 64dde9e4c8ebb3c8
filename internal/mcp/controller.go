package mcp

import (
	"context"

	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/Christian103103/HSemulator/internal/log"
	"github.com/Christian103103/HSemulator/internal/net"
)

// MCPController implements game.PlayerController by sending decisions
// to the MCP session's pending channel and blocking on a response channel.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan ActionResponse
}

// NewMCPController creates a controller for the given player.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan ActionResponse),
	}
}

// ChooseAction implements game.PlayerController.
func (c *MCPController) ChooseAction(ctx context.Context, state *game.GameState, actions []game.Action) (game.Action, error) {
	sv := net.BuildStateView(state, c.player)
	sv.GameID = c.session.GameID()
	pending := &PendingDecision{
		Type:    DecisionChooseAction,
		Player:  c.player,
		State:   sv,
		Actions: net.ActionViews(actions),
	}

	select {
	case c.session.pendingCh <- pending:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	var ar ActionResponse
	select {
	case ar = <-c.responseCh:
	case <-ctx.Done():
		return game.Action{}, ctx.Err()
	}

	if ar.Index < 0 || ar.Index >= len(actions) {
		return actions[len(actions)-1], nil
	}
	return actions[ar.Index], nil
}

// Notify implements game.PlayerController. Events are buffered for the next
// tool response.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(net.EventViewOf(event))
	return nil
}
