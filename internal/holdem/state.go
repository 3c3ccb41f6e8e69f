// Package holdem holds the domain model for one round of play against the
// remote engine: players, community cards, actions and phases. The engine is
// authoritative; every state here arrives as a full replacement snapshot and
// is never patched field-by-field on the client.
package holdem

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"github.com/thoas/go-funk"

	"github.com/lox/holdemclient/internal/deck"
)

// Mode selects between open-information simulation and hidden-information play.
type Mode int

const (
	// ModeSimulation deals and advances without betting; all hands are open.
	ModeSimulation Mode = iota
	// ModeInteractive is a played round with hidden robot hands until showdown.
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeSimulation {
		return "simulation"
	}
	return "interactive"
}

// ModeFromString converts a wire string to a Mode.
func ModeFromString(s string) (Mode, error) {
	switch s {
	case "simulation":
		return ModeSimulation, nil
	case "interactive":
		return ModeInteractive, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// MarshalJSON encodes the mode as its wire string.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode from its wire string.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ModeFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Player is one seat at the table. Fields are only ever replaced along with
// the whole GameState; the client never mutates a player in place.
type Player struct {
	Name           string      `json:"name"`
	Chips          int         `json:"chips"`
	Cards          []deck.Card `json:"cards"`
	IsRobot        bool        `json:"is_robot"`
	WinProbability float64     `json:"win_probability"`
	Personality    string      `json:"personality,omitempty"`
}

// GameState is the full snapshot of a round as reported by the engine.
type GameState struct {
	Players            []Player    `json:"players"`
	CommunityCards     []deck.Card `json:"community_cards"`
	Pot                int         `json:"pot"`
	CurrentBet         int         `json:"current_bet"`
	Mode               Mode        `json:"mode"`
	CurrentPlayerIndex int         `json:"current_player_index"`
	LastAction         *Action     `json:"last_action,omitempty"`
}

// LocalPlayerIndex returns the seat index of the first non-robot player, or
// -1 when no local seat exists (not-ready state, not an error).
func (g *GameState) LocalPlayerIndex() int {
	if g == nil {
		return -1
	}
	_, idx, ok := lo.FindIndexOf(g.Players, func(p Player) bool { return !p.IsRobot })
	if !ok {
		return -1
	}
	return idx
}

// LocalPlayer returns the local seat, or false when absent.
func (g *GameState) LocalPlayer() (Player, bool) {
	idx := g.LocalPlayerIndex()
	if idx < 0 {
		return Player{}, false
	}
	return g.Players[idx], true
}

// Robots returns every remote-controlled seat.
func (g *GameState) Robots() []Player {
	if g == nil {
		return nil
	}
	return funk.Filter(g.Players, func(p Player) bool { return p.IsRobot }).([]Player)
}

// Clone returns a deep copy, used when handing snapshots to readers so that
// the session's own copy can never be aliased and mutated.
func (g *GameState) Clone() *GameState {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Players = make([]Player, len(g.Players))
	for i, p := range g.Players {
		clone.Players[i] = p
		clone.Players[i].Cards = append([]deck.Card(nil), p.Cards...)
	}
	clone.CommunityCards = append([]deck.Card(nil), g.CommunityCards...)
	if g.LastAction != nil {
		last := *g.LastAction
		clone.LastAction = &last
	}
	return &clone
}

// RoundConfig is the request to start a new round.
type RoundConfig struct {
	PlayerCount   int
	Mode          Mode
	StartingChips int
}

// Validate checks the config before it is sent to the engine.
func (c RoundConfig) Validate() error {
	if c.PlayerCount < 2 {
		return fmt.Errorf("player count must be at least 2, got %d", c.PlayerCount)
	}
	if c.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive, got %d", c.StartingChips)
	}
	return nil
}
