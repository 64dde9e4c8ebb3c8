package net

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"

	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/Christian103103/HSemulator/internal/log"
	"go.uber.org/zap"
)

// Server hosts a match between the local player and one TCP client.
type Server struct {
	Port   string
	Match  game.MatchConfig // pool, rules and seed for the hosted match
	Log    *zap.Logger
	Stdout io.Writer // host's terminal (nil = os.Stdout)
	Stdin  io.Reader // host's input (nil = os.Stdin)
}

// Run starts the server, waits for a client to join, then runs the match.
func (s *Server) Run(ctx context.Context) error {
	zl := s.Log
	if zl == nil {
		zl = zap.NewNop()
	}
	out := s.Stdout
	if out == nil {
		out = os.Stdout
	}

	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer ln.Close()

	fmt.Fprintf(out, "Waiting for opponent on port %s...\n", s.Port)

	// Accept exactly one connection (the joiner)
	conn, err := ln.Accept()
	if err != nil {
		return fmt.Errorf("accept: %w", err)
	}
	defer conn.Close()

	zl.Info("opponent connected", zap.Stringer("remote", conn.RemoteAddr()))

	var joinMsg ClientMessage
	if err := json.NewDecoder(conn).Decode(&joinMsg); err != nil {
		return fmt.Errorf("read join message: %w", err)
	}
	if joinMsg.Type != "join" {
		return fmt.Errorf("expected join message, got %q", joinMsg.Type)
	}
	name := joinMsg.Name
	if name == "" {
		name = "Player 2"
	}
	fmt.Fprintf(out, "%s connected from %s\n", name, conn.RemoteAddr())

	return s.host(ctx, conn, out)
}

// host runs the match with the local player on seat 1 and conn on seat 2.
func (s *Server) host(ctx context.Context, conn net.Conn, out io.Writer) error {
	// Create a pipe for the host's local connection
	hostConn, hostServerConn := net.Pipe()
	defer hostServerConn.Close()

	// Player 0 = host, Player 1 = joiner
	hostCtrl := NewNetworkController(hostServerConn, 0)
	joinerCtrl := NewNetworkController(conn, 1)

	// Run the host's local REPL first: pipe writes block until it reads.
	errCh := make(chan error, 2)
	go func() {
		client := &Client{conn: hostConn, playerName: "P1", in: s.Stdin, out: out}
		errCh <- client.RunREPL(ctx)
	}()

	cfg := s.Match
	cfg.Log = s.Log
	if cfg.Logger == nil {
		cfg.Logger = log.NewMemoryLogger()
	}
	match, err := game.NewMatch(cfg, hostCtrl, joinerCtrl)
	if err != nil {
		return fmt.Errorf("new match: %w", err)
	}
	gameID := match.Session.GameID

	if err := joinerCtrl.SendHello(gameID); err != nil {
		return fmt.Errorf("hello: %w", err)
	}
	if err := hostCtrl.SendHello(gameID); err != nil {
		return fmt.Errorf("hello: %w", err)
	}

	go func() {
		winner, err := match.Run(ctx)
		if err != nil {
			errCh <- fmt.Errorf("match error: %w", err)
			return
		}
		result := match.State().Result
		_ = joinerCtrl.SendGameOver(winner, result)
		_ = hostCtrl.SendGameOver(winner, result)
		errCh <- nil
	}()

	// Wait for either the match or the REPL to finish
	return <-errCh
}
