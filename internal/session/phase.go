package session

import (
	"github.com/charmbracelet/log"

	"github.com/lox/holdemclient/internal/holdem"
)

// PhaseMachine tracks the round's phase and enforces forward-only movement
// through preflop, flop, turn, river and showdown. Transition attempts whose
// precondition does not hold are swallowed: a mismatched deal step means a
// stale or duplicate trigger, not an engine fault, so it logs and leaves the
// phase unchanged.
type PhaseMachine struct {
	phase    holdem.Phase
	revealed bool
	logger   *log.Logger
}

// NewPhaseMachine creates a machine positioned at preflop.
func NewPhaseMachine(logger *log.Logger) *PhaseMachine {
	return &PhaseMachine{
		phase:  holdem.PreFlop,
		logger: logger.WithPrefix("phase"),
	}
}

// Phase returns the current phase.
func (m *PhaseMachine) Phase() holdem.Phase {
	return m.phase
}

// Revealed reports whether showdown has been reached and hidden hands are
// globally open.
func (m *PhaseMachine) Revealed() bool {
	return m.revealed
}

// Reset returns the machine to preflop for a new round.
func (m *PhaseMachine) Reset() {
	m.phase = holdem.PreFlop
	m.revealed = false
}

// AdvancesPhase reports whether the given action type triggers a phase
// advance once applied. Only Call and Check close a betting round; Fold,
// Bet and Raise leave the round in place awaiting the next actor.
func (m *PhaseMachine) AdvancesPhase(t holdem.ActionType) bool {
	return t == holdem.Check || t == holdem.Call
}

// NextDeal returns the deal step that realizes the next phase from the
// current one, or false when the round is at the river or beyond and no
// further deal exists.
func (m *PhaseMachine) NextDeal() (holdem.DealStep, bool) {
	return holdem.DealStepFor(m.phase)
}

// ApplyDeal moves the phase forward for a completed deal step. The step must
// source from the current phase; otherwise the call is a logged no-op so a
// duplicate or out-of-order trigger cannot move the phase backwards or skip
// ahead.
func (m *PhaseMachine) ApplyDeal(step holdem.DealStep) bool {
	if step.Source() != m.phase {
		m.logger.Debug("Ignoring deal step outside current phase",
			"step", step, "phase", m.phase)
		return false
	}
	m.logger.Debug("Phase advancing", "from", m.phase, "to", step.Target())
	m.phase = step.Target()
	return true
}

// EnterShowdown moves a river round to showdown and opens the reveal gate.
// Any other source phase is a logged no-op.
func (m *PhaseMachine) EnterShowdown() bool {
	if m.phase != holdem.River {
		m.logger.Debug("Ignoring showdown transition outside river", "phase", m.phase)
		return false
	}
	m.phase = holdem.Showdown
	m.revealed = true
	m.logger.Debug("Phase advancing", "from", holdem.River, "to", holdem.Showdown)
	return true
}
