package session

import (
	"testing"

	"github.com/lox/holdemclient/internal/holdem"
)

func TestAdvisorSuggestionsAreLegal(t *testing.T) {
	advisor := NewAdvisor(42)

	for _, currentBet := range []int{0, 20, 50} {
		state := limitsState(currentBet, 500, 200)
		limits := ComputeLimits(state, 0)

		for range 100 {
			action := advisor.Suggest(state, limits)
			if !action.Type.RequiresAmount() {
				if action.Amount != 0 {
					t.Fatalf("%v carries amount %d", action.Type, action.Amount)
				}
				continue
			}
			if action.Amount < limits.MinRaise || action.Amount > limits.MaxBet {
				t.Fatalf("%v amount %d outside [%d,%d]",
					action.Type, action.Amount, limits.MinRaise, limits.MaxBet)
			}
		}
	}
}

func TestAdvisorDeterministic(t *testing.T) {
	state := limitsState(50, 1000, 300)
	limits := ComputeLimits(state, 0)

	a, b := NewAdvisor(7), NewAdvisor(7)
	for range 50 {
		if got, want := a.Suggest(state, limits), b.Suggest(state, limits); got != want {
			t.Fatalf("same seed diverged: %v vs %v", got, want)
		}
	}
}

func TestAdvisorNilState(t *testing.T) {
	action := NewAdvisor(1).Suggest(nil, BetLimits{})
	if action.Type != holdem.Check {
		t.Errorf("nil state suggestion = %v, want check", action.Type)
	}
}
