package session

import (
	"math"

	"github.com/lox/holdemclient/internal/holdem"
)

// raiseFloor is the fixed minimum raise unit. Table stakes below this are
// not modeled.
const raiseFloor = 10

// BetLimits are the legal bounds for a bet or raise, derived from one state
// snapshot. They are recomputed on every state replacement and never outlive
// the state they came from.
type BetLimits struct {
	MinRaise int
	MaxBet   int
	Amount   int
}

// ComputeLimits derives bet limits from the state and clamps a proposed
// amount into them. A state with no players or no local seat yields all
// zeroes, which is a defined not-ready result rather than an error.
//
// Clamping: a zero (uninitialized) or below-minimum proposal is raised to
// MinRaise, then anything above MaxBet is cut to MaxBet. When the local
// player cannot cover the minimum raise the result is therefore MaxBet,
// the implicit all-in.
func ComputeLimits(state *holdem.GameState, proposed int) BetLimits {
	local, ok := localPlayer(state)
	if !ok {
		return BetLimits{}
	}

	limits := BetLimits{
		MinRaise: max(2*state.CurrentBet, raiseFloor),
		MaxBet:   local.Chips,
	}

	amount := proposed
	if amount < limits.MinRaise {
		amount = limits.MinRaise
	}
	if amount > limits.MaxBet {
		amount = limits.MaxBet
	}
	limits.Amount = amount
	return limits
}

// QuickBet returns a preset fraction of the pot, capped at the local player's
// chips. Fraction is expected in (0,1].
func QuickBet(state *holdem.GameState, fraction float64) int {
	local, ok := localPlayer(state)
	if !ok {
		return 0
	}
	amount := int(math.Floor(float64(state.Pot) * fraction))
	return min(amount, local.Chips)
}

func localPlayer(state *holdem.GameState) (holdem.Player, bool) {
	if state == nil || len(state.Players) == 0 {
		return holdem.Player{}, false
	}
	return state.LocalPlayer()
}
