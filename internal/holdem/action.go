package holdem

import (
	"encoding/json"
	"fmt"
)

// ActionType is the kind of move a player submits to the engine.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Bet
	Raise
)

func (a ActionType) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise"}[a]
}

// RequiresAmount reports whether the action must carry a chip amount.
func (a ActionType) RequiresAmount() bool {
	return a == Bet || a == Raise
}

// ActionTypeFromString converts a wire string to an ActionType.
func ActionTypeFromString(s string) (ActionType, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// MarshalJSON encodes the action type as its wire string.
func (a ActionType) MarshalJSON() ([]byte, error) {
	if a < Fold || a > Raise {
		return nil, fmt.Errorf("invalid action type %d", int(a))
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes an action type from its wire string.
func (a *ActionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ActionTypeFromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Action records a move taken (or proposed) by a seat. Amount is meaningful
// only for Bet and Raise and is zero otherwise.
type Action struct {
	PlayerIndex int        `json:"player_index"`
	Type        ActionType `json:"action"`
	Amount      int        `json:"amount,omitempty"`
}

func (a Action) String() string {
	if a.Type.RequiresAmount() {
		return fmt.Sprintf("%s %d", a.Type, a.Amount)
	}
	return a.Type.String()
}
