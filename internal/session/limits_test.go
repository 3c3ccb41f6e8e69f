package session

import (
	"testing"

	"github.com/lox/holdemclient/internal/holdem"
)

func limitsState(currentBet, chips, pot int) *holdem.GameState {
	return &holdem.GameState{
		Players: []holdem.Player{
			{Name: "You", Chips: chips},
			{Name: "Robo", Chips: 1000, IsRobot: true},
		},
		Pot:        pot,
		CurrentBet: currentBet,
	}
}

func TestComputeLimits(t *testing.T) {
	tests := []struct {
		name       string
		currentBet int
		chips      int
		proposed   int
		wantMin    int
		wantMax    int
		wantAmount int
	}{
		{"uninitialized amount takes min raise", 0, 1000, 0, 10, 1000, 10},
		{"floor applies when bet is small", 3, 1000, 0, 10, 1000, 10},
		{"min raise doubles current bet", 50, 1000, 0, 100, 1000, 100},
		{"proposal below min is raised", 50, 1000, 40, 100, 1000, 100},
		{"proposal above max is cut", 0, 200, 500, 10, 200, 200},
		{"in-range proposal unchanged", 50, 1000, 250, 100, 1000, 250},
		{"short stack forces all-in", 50, 30, 0, 100, 30, 30},
		{"short stack forces all-in for any proposal", 50, 30, 500, 100, 30, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLimits(limitsState(tt.currentBet, tt.chips, 0), tt.proposed)
			if got.MinRaise != tt.wantMin {
				t.Errorf("MinRaise = %d, want %d", got.MinRaise, tt.wantMin)
			}
			if got.MaxBet != tt.wantMax {
				t.Errorf("MaxBet = %d, want %d", got.MaxBet, tt.wantMax)
			}
			if got.Amount != tt.wantAmount {
				t.Errorf("Amount = %d, want %d", got.Amount, tt.wantAmount)
			}
		})
	}
}

func TestComputeLimitsMinRaiseMonotonic(t *testing.T) {
	prev := 0
	for bet := 0; bet <= 200; bet += 7 {
		limits := ComputeLimits(limitsState(bet, 10000, 0), 0)
		want := max(2*bet, 10)
		if limits.MinRaise != want {
			t.Fatalf("MinRaise for bet %d = %d, want %d", bet, limits.MinRaise, want)
		}
		if limits.MinRaise < prev {
			t.Fatalf("MinRaise decreased from %d to %d at bet %d", prev, limits.MinRaise, bet)
		}
		prev = limits.MinRaise
	}
}

func TestComputeLimitsClampedWithinBounds(t *testing.T) {
	for _, proposed := range []int{-50, 0, 5, 10, 99, 100, 101, 5000} {
		limits := ComputeLimits(limitsState(50, 800, 0), proposed)
		if limits.Amount < limits.MinRaise || limits.Amount > limits.MaxBet {
			t.Errorf("Amount %d for proposal %d outside [%d,%d]",
				limits.Amount, proposed, limits.MinRaise, limits.MaxBet)
		}
	}
}

func TestComputeLimitsNotReady(t *testing.T) {
	cases := []*holdem.GameState{
		nil,
		{},
		{Players: []holdem.Player{{Name: "Robo", IsRobot: true}}},
	}
	for _, state := range cases {
		limits := ComputeLimits(state, 50)
		if limits != (BetLimits{}) {
			t.Errorf("expected zero limits for not-ready state, got %+v", limits)
		}
	}
}

func TestQuickBet(t *testing.T) {
	tests := []struct {
		name     string
		pot      int
		chips    int
		fraction float64
		want     int
	}{
		{"half pot", 200, 1000, 0.5, 100},
		{"half pot capped by chips", 200, 80, 0.5, 80},
		{"quarter pot floors", 203, 1000, 0.25, 50},
		{"full pot", 200, 1000, 1.0, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuickBet(limitsState(0, tt.chips, tt.pot), tt.fraction)
			if got != tt.want {
				t.Errorf("QuickBet = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQuickBetNotReady(t *testing.T) {
	if got := QuickBet(nil, 0.5); got != 0 {
		t.Errorf("QuickBet on nil state = %d, want 0", got)
	}
}
