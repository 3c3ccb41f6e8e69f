package session

import (
	rand "math/rand/v2"

	"github.com/lox/holdemclient/internal/holdem"
)

// Advisor produces a suggested action for the local player, mirroring the
// engine's baseline robot policy. It is a convenience for headless runs and
// the "suggest" UI affordance; it is never consulted automatically in
// interactive play.
type Advisor struct {
	rng *rand.Rand
}

// NewAdvisor creates an advisor with a deterministic seed so simulation runs
// are reproducible.
func NewAdvisor(seed uint64) *Advisor {
	return &Advisor{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Suggest picks an action for the given snapshot. With no bet to match it
// mostly checks, occasionally betting between a quarter and half of the pot.
// Facing a bet it folds, calls or raises up to twice the minimum raise. All
// amounts are clamped through the usual limits.
func (a *Advisor) Suggest(state *holdem.GameState, limits BetLimits) holdem.Action {
	if state == nil {
		return holdem.Action{Type: holdem.Check}
	}

	if state.CurrentBet == 0 {
		if a.rng.Float64() < 0.7 {
			return holdem.Action{Type: holdem.Check}
		}
		lo, hi := state.Pot/4, state.Pot/2
		amount := lo
		if hi > lo {
			amount = lo + a.rng.IntN(hi-lo+1)
		}
		return holdem.Action{Type: holdem.Bet, Amount: ComputeLimits(state, amount).Amount}
	}

	roll := a.rng.Float64()
	switch {
	case roll < 0.3:
		return holdem.Action{Type: holdem.Fold}
	case roll < 0.6:
		return holdem.Action{Type: holdem.Call}
	default:
		amount := limits.MinRaise
		if limits.MinRaise > 0 {
			amount += a.rng.IntN(limits.MinRaise + 1)
		}
		return holdem.Action{Type: holdem.Raise, Amount: ComputeLimits(state, amount).Amount}
	}
}
