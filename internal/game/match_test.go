package game

import (
	"context"
	"testing"

	"github.com/Christian103103/HSemulator/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// runMatchToCompletion runs a match and returns it with its logger for inspection.
func runMatchToCompletion(t *testing.T, cfg MatchConfig, p0, p1 PlayerController) (*Match, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	cfg.Logger = logger
	cfg.Log = zaptest.NewLogger(t)

	m, err := NewMatch(cfg, p0, p1)
	require.NoError(t, err)

	winner, err := m.Run(context.Background())
	if err != nil {
		t.Logf("Event log:\n%s", log.FormatAll(logger.Events()))
		t.Fatalf("Match error: %v", err)
	}
	t.Logf("Match result: winner=%d (%s)", winner, m.State().Result)
	return m, logger
}

// TestMatchBotBeatsIdlePlayer: a player who never buys loses 2 health every round.
func TestMatchBotBeatsIdlePlayer(t *testing.T) {
	idle := NewScriptedController(t, "P2")
	m, logger := runMatchToCompletion(t, MatchConfig{Seed: 7}, NewGreedyController(), idle)
	gs := m.State()

	assert.True(t, gs.Over)
	assert.Equal(t, 0, gs.Winner)
	assert.Equal(t, 15, gs.Turn)
	assert.Equal(t, 0, gs.Players[1].Health)
	assert.Equal(t, 30, gs.Players[0].Health)
	assert.Len(t, logger.EventsOfType(log.EventRoundWin), 15)
	requireZones(t, gs)

	// Notifications reach both seats.
	assert.Equal(t, len(logger.Events()), len(idle.notified))
}

// TestMatchScriptedBuyAndPlay: scripted steps are taken in order within a turn.
func TestMatchScriptedBuyAndPlay(t *testing.T) {
	p0 := NewScriptedController(t, "P1").
		AddAction(ActionBuy, "").
		AddAction(ActionPlay, "")
	p1 := NewScriptedController(t, "P2")

	m, logger := runMatchToCompletion(t, MatchConfig{Seed: 1, MaxTurns: 1}, p0, p1)
	gs := m.State()

	assert.Len(t, logger.EventsOfType(log.EventPurchase), 1)
	assert.Len(t, logger.EventsOfType(log.EventPlay), 1)
	assert.Len(t, gs.Players[0].Board, 1)
	assert.Equal(t, 28, gs.Players[1].Health)
	assert.True(t, gs.Over)
	assert.Equal(t, -1, gs.Winner)
	assert.Equal(t, "Turn limit reached (1 turns)", gs.Result)
}

func TestMatchGreedyBotsTerminate(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		m, _ := runMatchToCompletion(t, MatchConfig{Seed: seed}, NewGreedyController(), NewGreedyController())
		gs := m.State()
		assert.True(t, gs.Over)
		assert.LessOrEqual(t, gs.Turn, DefaultMaxTurns)
		requireZones(t, gs)
		for _, p := range gs.Players {
			assert.LessOrEqual(t, len(p.Board)+len(p.Graveyard), BoardLimit)
		}
	}
}

func TestMatchActionLimit(t *testing.T) {
	// Always refreshing while gold lasts, then ending the turn.
	refresher := NewScriptedController(t, "P1")
	for i := 0; i < 10; i++ {
		refresher.AddAction(ActionRefresh, "")
	}
	m, err := NewMatch(MatchConfig{Seed: 3, MaxTurns: 1, MaxActions: 2}, refresher, NewScriptedController(t, "P2"))
	require.NoError(t, err)

	_, err = m.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.State().Players[0].Gold)
}

func TestMatchHonorsCancellation(t *testing.T) {
	m, err := NewMatch(MatchConfig{Seed: 5}, NewGreedyController(), NewGreedyController())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
