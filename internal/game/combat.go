package game

import (
	"fmt"

	"github.com/Christian103103/HSemulator/internal/log"
	"go.uber.org/zap"
)

// CombatState tracks the engine's progress through a single combat.
type CombatState int

const (
	CombatNotStarted CombatState = iota
	CombatActive
	CombatResolved
)

func (s CombatState) String() string {
	switch s {
	case CombatNotStarted:
		return "NotStarted"
	case CombatActive:
		return "Active"
	case CombatResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// CombatResult is everything a combat produced besides the board mutations.
type CombatResult struct {
	Log           []string // ordered, human-readable combat log
	Winner        int      // 0 or 1, or -1 for a tie
	Loser         int      // 0 or 1, or -1 for a tie
	Damage        int      // hero damage dealt to the loser
	FirstAttacker int      // -1 when no exchange happened
	Steps         int      // number of attacks
	Stalemate     bool     // stopped because neither side could deal damage
	State         CombatState
}

// Tie reports whether the round ended without a winner.
func (r CombatResult) Tie() bool {
	return r.Winner < 0
}

// CombatConfig carries the collaborators of ResolveCombat. Zero values get defaults.
type CombatConfig struct {
	Logger     log.EventLogger
	HeroDamage HeroDamageFunc
	MaxSteps   int
	Log        *zap.Logger
}

type combat struct {
	gs  *GameState
	rng Rand
	cfg CombatConfig
	res CombatResult
}

// ResolveCombat fights the two boards of gs to completion. Boards and
// graveyards are mutated in place and the loser's health is reduced; gold,
// shops and hands are never touched.
func ResolveCombat(gs *GameState, rng Rand, cfg CombatConfig) CombatResult {
	if cfg.Logger == nil {
		cfg.Logger = log.NewMemoryLogger()
	}
	if cfg.HeroDamage == nil {
		cfg.HeroDamage = FixedHeroDamage(DefaultHeroDamage)
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = MaxCombatSteps
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	c := &combat{
		gs:  gs,
		rng: rng,
		cfg: cfg,
		res: CombatResult{Winner: -1, Loser: -1, FirstAttacker: -1},
	}
	c.run()

	cfg.Log.Debug("combat resolved",
		zap.Int("turn", gs.Turn),
		zap.Int("steps", c.res.Steps),
		zap.Int("winner", c.res.Winner+1),
		zap.Bool("stalemate", c.res.Stalemate),
	)
	return c.res
}

func (c *combat) run() {
	gs := c.gs
	c.emit(log.EventCombatBegin, -1, nil, "Combat begins!")

	if c.bothBoardsOccupied() {
		c.res.State = CombatActive

		current := c.rng.Intn(2)
		c.res.FirstAttacker = current
		c.emit(log.EventFirstAttacker, current, nil,
			fmt.Sprintf("Player %d attacks first.", gs.Players[current].ID))

		for c.bothBoardsOccupied() {
			if c.res.Steps >= c.cfg.MaxSteps || !c.anyAttack() {
				c.res.Stalemate = true
				break
			}
			c.step(current)
			current = gs.Opponent(current)
		}
	}

	c.res.State = CombatResolved
	c.finish()
}

// step performs one attack by the leftmost minion of the acting player.
func (c *combat) step(current int) {
	gs := c.gs
	c.res.Steps++

	opp := gs.Opponent(current)
	attackerPlayer := gs.Players[current]
	defenderPlayer := gs.Players[opp]

	attacker := gs.Minion(attackerPlayer.Board[0])
	targetIndex := c.rng.Intn(len(defenderPlayer.Board))
	defender := gs.Minion(defenderPlayer.Board[targetIndex])

	c.emit(log.EventAttack, current, attacker, fmt.Sprintf(
		"Player %d's %s (%s) attacks Player %d's %s (%s).",
		attackerPlayer.ID, attacker.Name, attacker.Stats(),
		defenderPlayer.ID, defender.Name, defender.Stats(),
	))

	// Both hits read pre-exchange attack values.
	atk, def := attacker.Attack, defender.Attack
	defender.HP -= atk
	attacker.HP -= def

	if defender.Dead() {
		c.resolveDeath(opp, defender, targetIndex)
	}
	if attacker.Dead() {
		c.resolveDeath(current, attacker, 0)
	}
}

// resolveDeath revives m in place if it still has reborn, otherwise moves it
// from board index to the owner's graveyard.
func (c *combat) resolveDeath(player int, m *Minion, index int) {
	if m.CanReborn() {
		m.UsedReborn = true
		m.HP = 1
		c.emit(log.EventReborn, player, m, fmt.Sprintf("→ %s is reborn!", m.Name))
		return
	}

	c.emit(log.EventDeath, player, m, fmt.Sprintf("→ %s dies.", m.Name))
	board := c.gs.Players[player].Board
	if index >= len(board) || board[index] != m.ID {
		panic(fmt.Sprintf("combat: %s #%d expected at board index %d of player %d", m.Name, m.ID, index, player+1))
	}
	c.gs.transferAt(player, ZoneBoard, index, ZoneGraveyard)
}

// finish determines the round outcome and applies hero damage.
func (c *combat) finish() {
	gs := c.gs
	empty0 := len(gs.Players[0].Board) == 0
	empty1 := len(gs.Players[1].Board) == 0

	switch {
	case c.res.Stalemate:
		c.emit(log.EventStalemate, -1, nil, "Stalemate! No hero damage dealt.")
	case empty0 && empty1:
		c.emit(log.EventRoundTie, -1, nil, "It's a tie! No hero damage dealt.")
	default:
		winner := 0
		if empty0 {
			winner = 1
		}
		loser := gs.Opponent(winner)
		damage := c.cfg.HeroDamage(gs, winner)

		lp := gs.Players[loser]
		before := lp.Health
		lp.Health -= damage

		c.res.Winner = winner
		c.res.Loser = loser
		c.res.Damage = damage
		c.emit(log.EventRoundWin, winner, nil, fmt.Sprintf(
			"Player %d wins the round! Player %d takes %d damage.",
			gs.Players[winner].ID, lp.ID, damage,
		))
		c.cfg.Logger.Log(log.NewHPChangeEvent(gs.Turn, PhaseCombat.String(), loser, before, lp.Health, "lost the round"))
	}
}

func (c *combat) bothBoardsOccupied() bool {
	return len(c.gs.Players[0].Board) > 0 && len(c.gs.Players[1].Board) > 0
}

// anyAttack reports whether any minion on either board can deal damage.
func (c *combat) anyAttack() bool {
	for p := 0; p < 2; p++ {
		for _, m := range c.gs.Board(p) {
			if m.Attack > 0 {
				return true
			}
		}
	}
	return false
}

// emit appends a line to the combat log and mirrors it to the event logger.
func (c *combat) emit(t log.EventType, player int, m *Minion, line string) {
	c.res.Log = append(c.res.Log, line)
	name, id := "", 0
	if m != nil {
		name, id = m.Name, m.ID
	}
	c.cfg.Logger.Log(log.NewCombatEvent(c.gs.Turn, player, t, name, id, line))
}
