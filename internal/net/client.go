package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn       net.Conn
	playerName string // "P1" or "P2"
	in         io.Reader
	out        io.Writer
}

// Connect connects to a server, sends the join message, and runs the REPL.
func Connect(ctx context.Context, addr, name string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	enc := json.NewEncoder(conn)
	if err := enc.Encode(ClientMessage{Type: "join", Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Println("Connected! Waiting for game to start...")

	client := &Client{conn: conn, playerName: "P2"}
	return client.RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively.
func (c *Client) RunREPL(ctx context.Context) error {
	if c.in == nil {
		c.in = os.Stdin
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	reader := bufio.NewReader(c.in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		switch msg.Type {
		case "hello":
			fmt.Fprintf(c.out, "[%s] Game %s: you are Player %d\n", c.playerName, msg.GameID, msg.Seat)

		case "notify":
			c.renderEvent(msg.Event)

		case "choose_action":
			c.renderState(msg.State)
			c.renderActions(msg.Actions)
			idx, err := c.readChoice(reader, len(msg.Actions))
			if err != nil {
				return err
			}
			if err := enc.Encode(ClientMessage{Type: "action", Index: idx}); err != nil {
				return fmt.Errorf("send action: %w", err)
			}

		case "game_over":
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}
	}
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	phase := ev.Phase
	for len(phase) < 14 {
		phase += " "
	}
	fmt.Fprintf(c.out, "T%-2d %s| %s\n", ev.Turn, phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	w := c.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════╗")

	opp := sv.Opponent
	fmt.Fprintf(w, "║  OPPONENT (Health: %d)  Tier: %d  Hand: %d\n", opp.Health, opp.TavernTier, opp.HandCount)
	fmt.Fprintf(w, "║  Board: %s\n", formatMinions(opp.Board))
	fmt.Fprintln(w, "║──────────────────────────────────────────────────────")

	you := sv.You
	fmt.Fprintf(w, "║  Board: %s\n", formatMinions(you.Board))
	fmt.Fprintf(w, "║  Hand:  %s\n", formatMinions(you.Hand))
	fmt.Fprintf(w, "║  Shop:  %s\n", formatMinions(you.Shop))
	upgrade := "maxed"
	if you.UpgradeCost > 0 {
		upgrade = strconv.Itoa(you.UpgradeCost)
	}
	fmt.Fprintf(w, "║  YOU (Health: %d)  Gold: %d  Tier: %d  Upgrade: %s\n",
		you.Health, you.Gold, you.TavernTier, upgrade)
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════╝")
	fmt.Fprintf(w, "Turn %d | %s\n", sv.Turn, sv.Phase)
}

func formatMinions(ms []MinionView) string {
	if len(ms) == 0 {
		return "(empty)"
	}
	parts := make([]string, 0, len(ms))
	for _, m := range ms {
		s := fmt.Sprintf("[%s %d/%d", m.Name, m.Attack, m.HP)
		if len(m.Abilities) > 0 {
			s += " " + strings.Join(m.Abilities, ",")
		}
		parts = append(parts, s+"]")
	}
	return strings.Join(parts, " ")
}

func (c *Client) renderActions(actions []ActionView) {
	fmt.Fprintln(c.out, "\nActions:")
	for _, a := range actions {
		fmt.Fprintf(c.out, "  %d) %s\n", a.Index+1, a.Desc)
	}
}

func (c *Client) readChoice(reader *bufio.Reader, count int) (int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		n, convErr := strconv.Atoi(line)
		if convErr == nil && n >= 1 && n <= count {
			return n - 1, nil // convert to 0-indexed
		}
		if err != nil {
			return 0, fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintf(c.out, "Enter a number between 1 and %d\n", count)
	}
}
