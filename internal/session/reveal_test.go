package session

import (
	"testing"

	"github.com/lox/holdemclient/internal/holdem"
)

func TestHandVisibleLocalPlayerAlways(t *testing.T) {
	local := holdem.Player{Name: "You"}
	phases := []holdem.Phase{holdem.PreFlop, holdem.Flop, holdem.Turn, holdem.River, holdem.Showdown}
	modes := []holdem.Mode{holdem.ModeSimulation, holdem.ModeInteractive}

	for _, phase := range phases {
		for _, mode := range modes {
			if !HandVisible(local, phase, mode) {
				t.Errorf("local hand hidden at %v/%v", phase, mode)
			}
		}
	}
}

func TestHandVisibleRobot(t *testing.T) {
	robot := holdem.Player{Name: "Robo", IsRobot: true}

	// Interactive play: hidden strictly before showdown.
	for _, phase := range []holdem.Phase{holdem.PreFlop, holdem.Flop, holdem.Turn, holdem.River} {
		if HandVisible(robot, phase, holdem.ModeInteractive) {
			t.Errorf("robot hand visible at %v in interactive play", phase)
		}
	}
	if !HandVisible(robot, holdem.Showdown, holdem.ModeInteractive) {
		t.Error("robot hand hidden at showdown")
	}

	// Simulation: no hidden information at any phase.
	for _, phase := range []holdem.Phase{holdem.PreFlop, holdem.Flop, holdem.Turn, holdem.River, holdem.Showdown} {
		if !HandVisible(robot, phase, holdem.ModeSimulation) {
			t.Errorf("robot hand hidden at %v in simulation", phase)
		}
	}
}

func TestHasFolded(t *testing.T) {
	history := []holdem.Action{
		{PlayerIndex: 0, Type: holdem.Check},
		{PlayerIndex: 1, Type: holdem.Fold},
		{PlayerIndex: 2, Type: holdem.Bet, Amount: 50},
		{PlayerIndex: 0, Type: holdem.Call},
	}

	if HasFolded(history, 0) {
		t.Error("seat 0 reported folded; last action was a call")
	}
	if !HasFolded(history, 1) {
		t.Error("seat 1 not reported folded")
	}
	if HasFolded(history, 2) {
		t.Error("seat 2 reported folded")
	}
	// No history for the seat: an empty hand is ambiguous and never counts
	// as folded on its own.
	if HasFolded(history, 3) {
		t.Error("seat with no actions reported folded")
	}
	if HasFolded(nil, 0) {
		t.Error("empty history reported folded")
	}
}
