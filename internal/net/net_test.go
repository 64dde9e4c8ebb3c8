package net

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/Christian103103/HSemulator/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.NewSession(game.SessionConfig{Seed: 11, Log: zaptest.NewLogger(t)})
	require.NoError(t, err)
	return s
}

func TestBuildStateViewHidesOpponentEconomy(t *testing.T) {
	s := newSession(t)
	gs := s.State
	require.NoError(t, s.Purchase(1, gs.Players[1].Shop[0]))

	sv := BuildStateView(gs, 0)

	assert.Equal(t, 1, sv.Turn)
	assert.Equal(t, "Buy Phase", sv.Phase)
	assert.Equal(t, 1, sv.You.Seat)
	assert.Equal(t, 3, sv.You.Gold)
	assert.Equal(t, 5, sv.You.UpgradeCost)
	assert.Len(t, sv.You.Shop, 3)
	assert.Empty(t, sv.You.Hand)

	assert.Equal(t, 2, sv.Opponent.Seat)
	assert.Equal(t, 1, sv.Opponent.HandCount)
	assert.Zero(t, sv.Opponent.Gold)
	assert.Nil(t, sv.Opponent.Shop)
	assert.Nil(t, sv.Opponent.Hand)
	assert.Equal(t, 30, sv.Opponent.Health)

	data, err := json.Marshal(sv)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), `"shop"`))
}

func TestMinionViewOf(t *testing.T) {
	s := newSession(t)
	m := s.State.Zone(0, game.ZoneShop)[0]

	v := MinionViewOf(m)
	assert.Equal(t, m.ID, v.ID)
	assert.Equal(t, m.Name, v.Name)
	assert.Equal(t, m.Attack, v.Attack)
	assert.Equal(t, m.MaxHP, v.MaxHP)
}

func TestEventViewOf(t *testing.T) {
	ev := EventViewOf(log.NewCombatEvent(3, 1, log.EventDeath, "Wall", 7, "→ Wall dies."))
	assert.Equal(t, 3, ev.Turn)
	assert.Equal(t, "Combat Phase", ev.Phase)
	assert.Equal(t, "Wall", ev.Card)
	assert.Equal(t, "→ Wall dies.", ev.Details)
	assert.Equal(t, log.EventDeath.String(), ev.Type)
}

func TestControllerRoundTrip(t *testing.T) {
	s := newSession(t)
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	var out bytes.Buffer
	client := &Client{conn: clientConn, playerName: "P1", in: strings.NewReader("abc\n2\n"), out: &out}
	done := make(chan error, 1)
	go func() { done <- client.RunREPL(context.Background()) }()

	nc := NewNetworkController(serverConn, 0)
	require.NoError(t, nc.SendHello(s.GameID))
	require.NoError(t, nc.Notify(context.Background(), log.NewTurnEvent(1)))

	actions := s.LegalActions(0)
	got, err := nc.ChooseAction(context.Background(), s.State, actions)
	require.NoError(t, err)
	assert.Equal(t, actions[1], got)

	require.NoError(t, nc.SendGameOver(0, "Player 1 wins: Player 2's health reached 0"))
	require.NoError(t, <-done)

	text := out.String()
	assert.Contains(t, text, "you are Player 1")
	assert.Contains(t, text, s.GameID)
	assert.Contains(t, text, "=== Turn 1 ===")
	assert.Contains(t, text, "Enter a number between 1 and")
	assert.Contains(t, text, "GAME OVER")
	assert.Contains(t, text, "Player 1 wins")
}

func TestControllerOutOfRangeEndsTurn(t *testing.T) {
	s := newSession(t)
	serverConn, clientConn := net.Pipe()
	defer serverConn.Close()
	defer clientConn.Close()

	go func() {
		dec := json.NewDecoder(clientConn)
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return
		}
		_ = json.NewEncoder(clientConn).Encode(ClientMessage{Type: "action", Index: 99})
	}()

	nc := NewNetworkController(serverConn, 0)
	actions := s.LegalActions(0)
	got, err := nc.ChooseAction(context.Background(), s.State, actions)
	require.NoError(t, err)
	assert.Equal(t, game.ActionEndTurn, got.Type)
}

func TestFormatCard(t *testing.T) {
	assert.Equal(t,
		"Squire (tier 1) 1/2 [Battlecry]: Battlecry: Give another random friendly minion +1/+1.",
		FormatCard(game.Squire()))
	assert.Equal(t, "Wall (tier 1) 1/4", FormatCard(game.Wall()))
}
