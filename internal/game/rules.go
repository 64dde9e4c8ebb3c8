package game

import (
	"math/rand"
	"time"
)

const (
	StartingHealth    = 30
	BoardLimit        = 7
	GoldPerCard       = 3
	SellRefund        = 1
	RefreshCost       = 1
	ShopSize          = 3
	TavernMaxTier     = 2
	UpgradeBaseCost   = 5
	MinUpgradeCost    = 1
	BaseGold          = 3
	MaxGold           = 10
	DefaultHeroDamage = 2
	MaxCombatSteps    = 1000
)

// Rules holds the tunable constants of a match.
type Rules struct {
	StartingHealth  int
	BoardLimit      int
	GoldPerCard     int
	SellRefund      int
	RefreshCost     int
	ShopSize        int
	TavernMaxTier   int
	UpgradeBaseCost int
	MinUpgradeCost  int
	BaseGold        int
	MaxGold         int
	HeroDamage      int
	MaxCombatSteps  int
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		StartingHealth:  StartingHealth,
		BoardLimit:      BoardLimit,
		GoldPerCard:     GoldPerCard,
		SellRefund:      SellRefund,
		RefreshCost:     RefreshCost,
		ShopSize:        ShopSize,
		TavernMaxTier:   TavernMaxTier,
		UpgradeBaseCost: UpgradeBaseCost,
		MinUpgradeCost:  MinUpgradeCost,
		BaseGold:        BaseGold,
		MaxGold:         MaxGold,
		HeroDamage:      DefaultHeroDamage,
		MaxCombatSteps:  MaxCombatSteps,
	}
}

// GoldForTurn returns the gold granted at the start of a turn (1-based).
// Income grows by one per turn until it reaches MaxGold.
func (r Rules) GoldForTurn(turn int) int {
	gold := r.BaseGold + (turn - 1)
	if gold > r.MaxGold {
		return r.MaxGold
	}
	return gold
}

// HeroDamageFunc decides how much damage the loser of a round takes.
type HeroDamageFunc func(gs *GameState, winner int) int

// FixedHeroDamage ignores the board and always deals n.
func FixedHeroDamage(n int) HeroDamageFunc {
	return func(*GameState, int) int { return n }
}

// Rand is the randomness source for coin flips, targeting and shop rolls.
// *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded source. Seed 0 picks a time-based seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
