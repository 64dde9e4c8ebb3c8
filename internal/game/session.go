package game

import (
	"errors"
	"fmt"

	"github.com/Christian103103/HSemulator/internal/log"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrGameOver is returned by round operations once a player has been defeated.
	ErrGameOver = errors.New("game is over")
	// ErrWrongPhase is returned when a round operation is invoked out of order.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
	// ErrEmptyPool is returned when no template can ever appear in a tier-1 shop.
	ErrEmptyPool = errors.New("card pool has no tier 1 cards")
)

// SessionConfig holds configuration for creating a new session.
type SessionConfig struct {
	Pool       []*Card // card templates the shops roll from (nil = DefaultPool)
	Rules      Rules   // zero value = DefaultRules
	Rand       Rand    // randomness source (nil = seeded from Seed)
	Seed       int64   // RNG seed when Rand is nil (0 for random)
	HeroDamage HeroDamageFunc
	Logger     log.EventLogger
	Log        *zap.Logger
	OnEvent    func(log.GameEvent) // called after every logged event
}

// Session is the game-session context every operation runs against. It owns
// the state of both players and is the only writer of the phase.
type Session struct {
	GameID     string
	State      *GameState
	Rules      Rules
	Pool       []*Card
	Rand       Rand
	HeroDamage HeroDamageFunc
	Logger     log.EventLogger
	Log        *zap.Logger

	// LastCombat is the result of the most recent StartRound.
	LastCombat *CombatResult

	onEvent func(log.GameEvent)
}

// NewSession creates a session at turn 1 with both shops rolled.
func NewSession(cfg SessionConfig) (*Session, error) {
	rules := cfg.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	pool := cfg.Pool
	if len(pool) == 0 {
		pool = DefaultPool()
	}
	if !hasTier(pool, 1) {
		return nil, ErrEmptyPool
	}
	rng := cfg.Rand
	if rng == nil {
		rng = NewRand(cfg.Seed)
	}
	heroDamage := cfg.HeroDamage
	if heroDamage == nil {
		heroDamage = FixedHeroDamage(rules.HeroDamage)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	zl := cfg.Log
	if zl == nil {
		zl = zap.NewNop()
	}

	id := uuid.NewString()
	zl = zl.With(zap.String("game_id", id))

	s := &Session{
		GameID:     id,
		State:      NewGameState(rules, zl),
		Rules:      rules,
		Pool:       pool,
		Rand:       rng,
		HeroDamage: heroDamage,
		Logger:     logger,
		Log:        zl,
		onEvent:    cfg.OnEvent,
	}

	s.emit(log.NewTurnEvent(1))
	for p := 0; p < 2; p++ {
		s.emit(log.NewGoldGrantEvent(1, p, s.State.Players[p].Gold))
		s.refreshShop(p)
	}
	zl.Info("session created", zap.Int("pool_size", len(pool)))
	return s, nil
}

func hasTier(pool []*Card, tier int) bool {
	for _, c := range pool {
		if c.Tier <= tier {
			return true
		}
	}
	return false
}

// --- Buy-phase operations ---
//
// Every rejected action is a no-op. The returned *ActionError says why; callers
// that want the silent behaviour can ignore it.

// check gates every buy-phase action.
func (s *Session) check(action ActionType, player int) error {
	if player < 0 || player > 1 {
		return reject(action, player, RejectNotFound)
	}
	if s.State.Over {
		return reject(action, player, RejectGameOver)
	}
	if s.State.Phase != PhaseBuy {
		return reject(action, player, RejectWrongPhase)
	}
	return nil
}

// Purchase moves a shop minion into the player's hand for GoldPerCard gold.
func (s *Session) Purchase(player, shopCardID int) error {
	if err := s.check(ActionBuy, player); err != nil {
		return err
	}
	gs := s.State
	p := gs.Players[player]
	if p.Gold < s.Rules.GoldPerCard {
		return reject(ActionBuy, player, RejectInsufficientGold)
	}
	if !p.Has(ZoneShop, shopCardID) {
		return reject(ActionBuy, player, RejectNotFound)
	}

	m := gs.transfer(player, shopCardID, ZoneShop, ZoneHand)
	p.Gold -= s.Rules.GoldPerCard
	s.emit(log.NewPurchaseEvent(gs.Turn, player, m.Name, m.ID, s.Rules.GoldPerCard))
	return nil
}

// Play moves a hand minion to the right end of the board and fires its battlecry.
func (s *Session) Play(player, handCardID int) error {
	if err := s.check(ActionPlay, player); err != nil {
		return err
	}
	gs := s.State
	p := gs.Players[player]
	if !p.Has(ZoneHand, handCardID) {
		return reject(ActionPlay, player, RejectNotFound)
	}
	if len(p.Board) >= s.Rules.BoardLimit {
		return reject(ActionPlay, player, RejectBoardFull)
	}

	m := gs.transfer(player, handCardID, ZoneHand, ZoneBoard)
	s.emit(log.NewPlayEvent(gs.Turn, player, m.Name, m.ID, m.Stats(), len(p.Board)-1))

	if !m.Battlecry.None() {
		desc, _ := applyEffect(gs, s.Rand, player, m, m.Battlecry)
		s.emit(log.NewBattlecryEvent(gs.Turn, player, m.Name, m.ID, desc))
	}
	return nil
}

// Sell removes a minion from the player's hand or board for SellRefund gold.
func (s *Session) Sell(player int, zone ZoneType, cardID int) error {
	if err := s.check(ActionSell, player); err != nil {
		return err
	}
	if zone != ZoneHand && zone != ZoneBoard {
		return reject(ActionSell, player, RejectInvalidZone)
	}
	gs := s.State
	p := gs.Players[player]
	if !p.Has(zone, cardID) {
		return reject(ActionSell, player, RejectNotFound)
	}

	m := gs.discard(player, cardID, zone)
	p.Gold += s.Rules.SellRefund
	s.emit(log.NewSellEvent(gs.Turn, player, m.Name, m.ID, zone.String(), s.Rules.SellRefund))
	return nil
}

// Refresh rerolls the player's shop for RefreshCost gold.
func (s *Session) Refresh(player int) error {
	if err := s.check(ActionRefresh, player); err != nil {
		return err
	}
	p := s.State.Players[player]
	if p.Gold < s.Rules.RefreshCost {
		return reject(ActionRefresh, player, RejectInsufficientGold)
	}
	p.Gold -= s.Rules.RefreshCost
	s.refreshShop(player)
	return nil
}

// Upgrade raises the player's tavern tier and rerolls the shop at the new tier.
func (s *Session) Upgrade(player int) error {
	if err := s.check(ActionUpgrade, player); err != nil {
		return err
	}
	p := s.State.Players[player]
	if p.TavernTier >= s.Rules.TavernMaxTier {
		return reject(ActionUpgrade, player, RejectTierMaxed)
	}
	if p.Gold < p.UpgradeCost {
		return reject(ActionUpgrade, player, RejectInsufficientGold)
	}

	cost := p.UpgradeCost
	p.Gold -= cost
	p.TavernTier++
	if p.TavernTier >= s.Rules.TavernMaxTier {
		p.UpgradeCost = 0
	} else {
		p.UpgradeCost = s.Rules.UpgradeBaseCost
	}
	s.emit(log.NewUpgradeEvent(s.State.Turn, player, p.TavernTier, cost))
	s.refreshShop(player)
	return nil
}

// refreshShop discards the current shop and rolls ShopSize new minions from
// the templates at or below the player's tavern tier.
func (s *Session) refreshShop(player int) {
	gs := s.State
	p := gs.Players[player]
	for _, id := range append([]int(nil), p.Shop...) {
		gs.discard(player, id, ZoneShop)
	}

	var eligible []*Card
	for _, c := range s.Pool {
		if c.Tier <= p.TavernTier {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		return
	}

	names := make([]string, 0, s.Rules.ShopSize)
	for i := 0; i < s.Rules.ShopSize; i++ {
		m := gs.spawn(eligible[s.Rand.Intn(len(eligible))], player, ZoneShop)
		names = append(names, m.DisplayString())
	}
	s.emit(log.NewShopRefreshEvent(gs.Turn, gs.Phase.String(), player, names))
}

// --- Round operations ---

// StartRound ends the buy phase: end-of-turn effects fire for player 1's board
// then player 2's, left to right, and the combat engine resolves the round.
func (s *Session) StartRound() (CombatResult, error) {
	gs := s.State
	if gs.Over {
		return CombatResult{}, ErrGameOver
	}
	if gs.Phase != PhaseBuy {
		return CombatResult{}, fmt.Errorf("start round in %s: %w", gs.Phase, ErrWrongPhase)
	}

	gs.Phase = PhaseCombat
	s.emit(log.NewPhaseChangeEvent(gs.Turn, gs.Phase.String()))

	for p := 0; p < 2; p++ {
		for _, m := range gs.Board(p) {
			if m.EndOfTurn.None() {
				continue
			}
			desc, _ := applyEffect(gs, s.Rand, p, m, m.EndOfTurn)
			s.emit(log.NewEndOfTurnEvent(gs.Turn, p, m.Name, m.ID, desc))
		}
	}

	res := ResolveCombat(gs, s.Rand, CombatConfig{
		Logger:     sessionLogger{s},
		HeroDamage: s.HeroDamage,
		MaxSteps:   s.Rules.MaxCombatSteps,
		Log:        s.Log,
	})
	s.LastCombat = &res

	if gs.CheckWinCondition() {
		if gs.Winner >= 0 {
			s.emit(log.NewWinEvent(gs.Turn, gs.Phase.String(), gs.Winner, gs.Result))
		} else {
			s.emit(log.NewDrawEvent(gs.Turn, gs.Phase.String(), gs.Result))
		}
		s.Log.Info("game over", zap.Int("turn", gs.Turn), zap.String("result", gs.Result))
	}
	return res, nil
}

// AdvanceTurn resets both players for the next buy phase: survivors and the
// graveyard come back at full health, gold is granted, the upgrade discount
// ticks and shops are rerolled for free.
func (s *Session) AdvanceTurn() error {
	gs := s.State
	if gs.Over {
		return ErrGameOver
	}
	if gs.Phase != PhaseCombat {
		return fmt.Errorf("advance turn in %s: %w", gs.Phase, ErrWrongPhase)
	}

	gs.Turn++
	gs.Phase = PhaseBuy
	s.emit(log.NewTurnEvent(gs.Turn))

	for i, p := range gs.Players {
		for _, m := range gs.Board(i) {
			m.Restore()
		}
		for _, id := range append([]int(nil), p.Graveyard...) {
			m := gs.transfer(i, id, ZoneGraveyard, ZoneBoard)
			m.Restore()
			s.emit(log.NewResurrectEvent(gs.Turn, i, m.Name, m.ID))
		}

		p.Gold = s.Rules.GoldForTurn(gs.Turn)
		s.emit(log.NewGoldGrantEvent(gs.Turn, i, p.Gold))

		if p.TavernTier < s.Rules.TavernMaxTier {
			p.UpgradeCost = max(p.UpgradeCost-1, s.Rules.MinUpgradeCost)
		}
		s.refreshShop(i)
	}
	return nil
}

// --- Action list ---

// LegalActions lists the buy-phase actions currently available to player.
// End Turn is always last.
func (s *Session) LegalActions(player int) []Action {
	gs := s.State
	if gs.Over || gs.Phase != PhaseBuy {
		return nil
	}
	p := gs.Players[player]
	var actions []Action

	if len(p.Board) < s.Rules.BoardLimit {
		for _, m := range gs.Zone(player, ZoneHand) {
			actions = append(actions, Action{
				Type: ActionPlay, Player: player, CardID: m.ID, Zone: ZoneHand,
				Desc: fmt.Sprintf("Play %s", m.DisplayString()),
			})
		}
	}
	if p.Gold >= s.Rules.GoldPerCard {
		for _, m := range gs.Zone(player, ZoneShop) {
			actions = append(actions, Action{
				Type: ActionBuy, Player: player, CardID: m.ID, Zone: ZoneShop,
				Desc: fmt.Sprintf("Buy %s for %d gold", m.DisplayString(), s.Rules.GoldPerCard),
			})
		}
	}
	for _, z := range []ZoneType{ZoneHand, ZoneBoard} {
		for _, m := range gs.Zone(player, z) {
			actions = append(actions, Action{
				Type: ActionSell, Player: player, CardID: m.ID, Zone: z,
				Desc: fmt.Sprintf("Sell %s from %s for %d gold", m.DisplayString(), z, s.Rules.SellRefund),
			})
		}
	}
	if p.Gold >= s.Rules.RefreshCost {
		actions = append(actions, Action{
			Type: ActionRefresh, Player: player,
			Desc: fmt.Sprintf("Refresh shop (%d gold)", s.Rules.RefreshCost),
		})
	}
	if p.TavernTier < s.Rules.TavernMaxTier && p.Gold >= p.UpgradeCost {
		actions = append(actions, Action{
			Type: ActionUpgrade, Player: player,
			Desc: fmt.Sprintf("Upgrade tavern to tier %d (%d gold)", p.TavernTier+1, p.UpgradeCost),
		})
	}
	actions = append(actions, Action{Type: ActionEndTurn, Player: player, Desc: "End turn"})
	return actions
}

// Apply executes a buy-phase action. End Turn is a no-op here; the match
// loop interprets it.
func (s *Session) Apply(a Action) error {
	switch a.Type {
	case ActionBuy:
		return s.Purchase(a.Player, a.CardID)
	case ActionPlay:
		return s.Play(a.Player, a.CardID)
	case ActionSell:
		return s.Sell(a.Player, a.Zone, a.CardID)
	case ActionRefresh:
		return s.Refresh(a.Player)
	case ActionUpgrade:
		return s.Upgrade(a.Player)
	case ActionEndTurn:
		return s.check(ActionEndTurn, a.Player)
	default:
		return fmt.Errorf("unknown action type %d", a.Type)
	}
}

// --- Event plumbing ---

// emit logs an event and forwards it to the OnEvent hook.
func (s *Session) emit(event log.GameEvent) {
	s.Logger.Log(event)
	if s.onEvent != nil {
		s.onEvent(event)
	}
}

// sessionLogger routes combat events through Session.emit.
type sessionLogger struct {
	s *Session
}

func (l sessionLogger) Log(event log.GameEvent) { l.s.emit(event) }

func (l sessionLogger) Events() []log.GameEvent { return l.s.Logger.Events() }
