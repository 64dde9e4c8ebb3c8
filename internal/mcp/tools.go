package mcp

import (
	"context"
	"strings"
	"sync"

	"github.com/Christian103103/HSemulator/internal/game"
	hsnet "github.com/Christian103103/HSemulator/internal/net"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tools holds the MCP tool handlers and the single active game session
// (one per stdio process).
type Tools struct {
	Match game.MatchConfig // pool, rules and seed for new games
	Port  string           // TCP port for a human opponent

	mu     sync.Mutex
	active *GameSession
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer, t *Tools) {
	s.AddTool(startGameTool(), t.handleStartGame)
	s.AddTool(takeActionTool(), t.handleTakeAction)
	s.AddTool(getGameStateTool(), t.handleGetGameState)
	s.AddTool(listCardsTool(), t.handleListCards)
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Start a new auto-battler match. Returns the initial game state and first pending decision. "+
			"Against a human, the opponent connects via `hsemu join --addr localhost:<port>` in a separate terminal "+
			"and this call blocks until they do."),
		mcp.WithNumber("agent_player", mcp.Required(), mcp.Description("Which seat the agent takes: 0 = Player 1, 1 = Player 2")),
		mcp.WithString("opponent", mcp.Description("Opponent kind: 'bot' (default) or 'human'")),
	)
}

func takeActionTool() mcp.Tool {
	return mcp.NewTool("take_action",
		mcp.WithDescription("Choose an action from the pending action list (buy, play, sell, refresh, upgrade, end turn). "+
			"Ending the turn lets the round be fought; its combat log arrives in the events of the next response."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the action to take from the actions list")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func listCardsTool() mcp.Tool {
	return mcp.NewTool("list_cards",
		mcp.WithDescription("List the card templates shops roll from, with stats, tier and abilities."),
	)
}

// --- Tool handlers ---

func (t *Tools) session() *GameSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *Tools) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.session() != nil {
		return mcp.NewToolResultError("A game is already running. Only one game at a time is supported."), nil
	}

	agentPlayer := request.GetInt("agent_player", 0)
	if agentPlayer != 0 && agentPlayer != 1 {
		return mcp.NewToolResultError("agent_player must be 0 or 1"), nil
	}
	opponent := strings.ToLower(request.GetString("opponent", OpponentBot))

	sess, err := NewGameSession(t.Match, agentPlayer, opponent, t.Port)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}

	t.mu.Lock()
	t.active = sess
	t.mu.Unlock()

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for first decision: %v", err), nil
	}
	t.finishIfOver(resp)
	if opponent == OpponentHuman {
		resp.Port = t.Port
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleTakeAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.session()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	pending := sess.currentPending
	if pending == nil || pending.Type != DecisionChooseAction {
		return mcp.NewToolResultError("No pending decision."), nil
	}

	index := request.GetInt("index", -1)
	if index < 0 || index >= len(pending.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. Must be 0-%d.", index, len(pending.Actions)-1), nil
	}

	select {
	case sess.agentCtrl.responseCh <- ActionResponse{Index: index}:
	case <-ctx.Done():
		return mcp.NewToolResultErrorf("Cancelled: %v", ctx.Err()), nil
	}

	resp, err := sess.waitForPending(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Error waiting for next decision: %v", err), nil
	}
	t.finishIfOver(resp)

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := t.session()
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	sess.mu.Lock()
	gameOver := sess.gameOver
	winner := sess.winner
	result := sess.result
	sess.mu.Unlock()

	resp := &ToolResponse{
		GameID:   sess.GameID(),
		Events:   sess.drainEvents(),
		GameOver: gameOver,
		Winner:   winner,
		Result:   result,
	}

	if pending := sess.currentPending; pending != nil {
		resp.State = pending.State
		if pending.Type == DecisionChooseAction {
			resp.Pending = &PendingView{
				Type:      pending.Type,
				ForPlayer: sess.playerLabel(pending.Player),
				Actions:   pending.Actions,
			}
		}
	}

	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleListCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pool := t.Match.Pool
	if len(pool) == 0 {
		pool = game.DefaultPool()
	}
	var b strings.Builder
	for _, c := range pool {
		b.WriteString(hsnet.FormatCard(c))
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}

// finishIfOver releases the active session once its game has ended.
func (t *Tools) finishIfOver(resp *ToolResponse) {
	if !resp.GameOver {
		return
	}
	t.mu.Lock()
	t.active = nil
	t.mu.Unlock()
}
