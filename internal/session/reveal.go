package session

import (
	"github.com/lox/holdemclient/internal/holdem"
)

// HandVisible decides whether a player's hole cards may be shown. The local
// player always sees their own hand. Robot hands open at showdown, and
// simulation mode carries no hidden information at all.
func HandVisible(p holdem.Player, phase holdem.Phase, mode holdem.Mode) bool {
	if !p.IsRobot {
		return true
	}
	if mode == holdem.ModeSimulation {
		return true
	}
	return phase == holdem.Showdown
}

// HasFolded reports whether the seat has folded out of the round, derived
// from the recorded action history. An empty hand alone is ambiguous (cards
// may simply not have been dealt yet), so card count is never consulted.
func HasFolded(history []holdem.Action, playerIndex int) bool {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].PlayerIndex == playerIndex {
			return history[i].Type == holdem.Fold
		}
	}
	return false
}
