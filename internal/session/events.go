package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/lox/holdemclient/internal/holdem"
)

// EventType identifies a session event.
type EventType string

const (
	EventTypeRoundStarted EventType = "round_started"
	EventTypeStateChanged EventType = "state_changed"
	EventTypePhaseChanged EventType = "phase_changed"
	EventTypeRoundError   EventType = "round_error"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything the session publishes to its subscribers. Events are
// delivered synchronously in the order the mutations happened, so a consumer
// always observes phase, limits and reveal state jointly consistent.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartedEvent is published when a new round replaces the previous one.
type RoundStartedEvent struct {
	RoundID   uuid.UUID
	Mode      holdem.Mode
	Players   int
	timestamp time.Time
}

func (e RoundStartedEvent) EventType() EventType { return EventTypeRoundStarted }
func (e RoundStartedEvent) Timestamp() time.Time { return e.timestamp }

// StateChangedEvent is published after every accepted state replacement.
type StateChangedEvent struct {
	State     *holdem.GameState
	Limits    BetLimits
	timestamp time.Time
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }
func (e StateChangedEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangedEvent is published when the phase machine advances.
type PhaseChangedEvent struct {
	From      holdem.Phase
	To        holdem.Phase
	Revealed  bool
	timestamp time.Time
}

func (e PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }
func (e PhaseChangedEvent) Timestamp() time.Time { return e.timestamp }

// RoundErrorEvent is published when a round-trip fails; the round itself is
// untouched and the message is suitable for direct display.
type RoundErrorEvent struct {
	Message   string
	timestamp time.Time
}

func (e RoundErrorEvent) EventType() EventType { return EventTypeRoundError }
func (e RoundErrorEvent) Timestamp() time.Time { return e.timestamp }

// Subscriber receives session events.
type Subscriber func(Event)
