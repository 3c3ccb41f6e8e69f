package session

import (
	"github.com/google/uuid"

	"github.com/lox/holdemclient/internal/holdem"
)

// store is the single session-scoped state object. Every round-scoped
// variable lives here (snapshot, derived limits, action history, round
// identity) and replace is the only mutation entry point, keeping the
// phase/limits/reveal invariants jointly consistent.
type store struct {
	roundID uuid.UUID
	state   *holdem.GameState
	limits  BetLimits
	history []holdem.Action
}

// reset discards all prior round state unconditionally and installs the
// opening snapshot of a new round.
func (s *store) reset(roundID uuid.UUID, state *holdem.GameState) {
	s.roundID = roundID
	s.state = state
	s.history = nil
	s.limits = ComputeLimits(state, 0)
}

// replace installs a full replacement snapshot, records its last action in
// the round history and recomputes the derived bet limits.
func (s *store) replace(state *holdem.GameState) {
	s.state = state
	if state.LastAction != nil {
		s.history = append(s.history, *state.LastAction)
	}
	s.limits = ComputeLimits(state, s.limits.Amount)
}

// ready reports whether a round is live.
func (s *store) ready() bool {
	return s.state != nil
}
