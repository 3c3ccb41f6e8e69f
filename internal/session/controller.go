// Package session implements the client-side coordinator for one round of
// play: phase tracking, bet legality, action dispatch, reveal gating and the
// auto-advance chain. The remote engine stays authoritative; the session only
// decides what may be sent, applies full replacement snapshots, and controls
// what a reader is allowed to observe.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/holdemclient/internal/deck"
	"github.com/lox/holdemclient/internal/holdem"
)

// Controller owns the single live round. All round state is replaced
// wholesale through the store; readers get gated copies and are notified
// through subscribed events. One controller serves one UI surface, processed
// one event at a time.
type Controller struct {
	engine     Engine
	logger     *log.Logger
	mu         sync.Mutex
	store      store
	phases     *PhaseMachine
	dispatcher *Dispatcher

	subsMu sync.Mutex
	subs   []Subscriber
}

// New creates a controller bound to an engine.
func New(eng Engine, logger *log.Logger) *Controller {
	c := &Controller{
		engine: eng,
		logger: logger.WithPrefix("session"),
		phases: NewPhaseMachine(logger),
	}
	c.dispatcher = NewDispatcher(eng, &c.store, c.phases, &c.mu, logger)
	return c
}

// Subscribe registers a consumer for session events. Events are delivered
// synchronously in mutation order.
func (c *Controller) Subscribe(fn Subscriber) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Controller) publish(events ...Event) {
	c.subsMu.Lock()
	subs := append([]Subscriber(nil), c.subs...)
	c.subsMu.Unlock()
	for _, evt := range events {
		for _, fn := range subs {
			fn(evt)
		}
	}
}

// StartRound requests a fresh round, discarding all prior round state
// unconditionally. A round-trip still outstanding for the previous round
// resolves against a changed round ID and is discarded when it lands.
func (c *Controller) StartRound(ctx context.Context, cfg holdem.RoundConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	state, err := c.engine.StartRound(ctx, cfg)
	if err != nil {
		c.logger.Error("Failed to start round", "error", err)
		c.publish(RoundErrorEvent{Message: err.Error(), timestamp: time.Now()})
		return err
	}

	roundID := uuid.New()
	c.mu.Lock()
	c.store.reset(roundID, state)
	c.phases.Reset()
	limits := c.store.limits
	c.mu.Unlock()

	c.logger.Info("Round started", "round", roundID, "players", len(state.Players), "mode", state.Mode)
	c.publish(
		RoundStartedEvent{RoundID: roundID, Mode: state.Mode, Players: len(state.Players), timestamp: time.Now()},
		StateChangedEvent{State: state, Limits: limits, timestamp: time.Now()},
	)
	return nil
}

// SubmitAction sends one action on behalf of the local player. Engine
// rejections and transport failures surface as a round error event with the
// engine's message verbatim; local guard violations, stale responses and
// in-flight rejections are policy outcomes returned to the caller only.
func (c *Controller) SubmitAction(ctx context.Context, intent holdem.Action) error {
	c.mu.Lock()
	if c.store.ready() {
		intent.PlayerIndex = c.store.state.LocalPlayerIndex()
	}
	c.mu.Unlock()

	events, err := c.dispatcher.Submit(ctx, intent)
	c.publish(events...)
	if err != nil && c.userFacing(err) {
		c.publish(RoundErrorEvent{Message: err.Error(), timestamp: time.Now()})
	}
	return err
}

// AdvanceDeal steps the round to the next phase by requesting its community
// cards; manual stepping for simulation mode. Calling it when no advancement
// is legal is a no-op.
func (c *Controller) AdvanceDeal(ctx context.Context) error {
	events, err := c.dispatcher.AdvanceDeal(ctx)
	c.publish(events...)
	if err != nil && c.userFacing(err) {
		c.publish(RoundErrorEvent{Message: err.Error(), timestamp: time.Now()})
	}
	return err
}

// userFacing separates errors the user should see (engine rejections,
// transport failures) from absorbed local policy outcomes.
func (c *Controller) userFacing(err error) bool {
	return !errors.Is(err, ErrLocalGuard) &&
		!errors.Is(err, ErrStaleRound) &&
		!errors.Is(err, ErrActionInFlight) &&
		!errors.Is(err, ErrNoRound)
}

// Busy reports whether a round-trip is outstanding; the action surface
// should be disabled while true.
func (c *Controller) Busy() bool {
	return c.dispatcher.Busy()
}

// Phase returns the current round phase.
func (c *Controller) Phase() holdem.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phases.Phase()
}

// Revealed reports whether showdown has opened all hands.
func (c *Controller) Revealed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phases.Revealed()
}

// Limits clamps a proposed bet amount against the current snapshot.
func (c *Controller) Limits(proposed int) BetLimits {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ComputeLimits(c.store.state, proposed)
}

// QuickBet returns a pot-fraction preset capped at the local player's chips.
func (c *Controller) QuickBet(fraction float64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return QuickBet(c.store.state, fraction)
}

// Suggest asks an advisor for an action against the current snapshot. The
// suggestion is advice only; nothing is submitted.
func (c *Controller) Suggest(a *Advisor) holdem.Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return a.Suggest(c.store.state, c.store.limits)
}

// HasFolded reports whether a seat folded out of the round, derived from the
// recorded action history rather than card count.
func (c *Controller) HasFolded(playerIndex int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return HasFolded(c.store.history, playerIndex)
}

// SeatView is one seat as a reader may observe it. Cards is nil whenever the
// reveal gate is closed for the seat.
type SeatView struct {
	Name           string
	Chips          int
	Cards          []deck.Card
	HandVisible    bool
	Folded         bool
	IsRobot        bool
	WinProbability float64
	Personality    string
	Acting         bool
}

// TableView is the externally observable snapshot of the round. Hidden hands
// are stripped before the view leaves the controller, so a gated hand can
// never appear in any read.
type TableView struct {
	Phase      holdem.Phase
	Mode       holdem.Mode
	Pot        int
	CurrentBet int
	Community  []deck.Card
	Seats      []SeatView
	LastAction *holdem.Action
	Limits     BetLimits
	Revealed   bool
	Busy       bool
}

// View assembles the gated read model for the current round. Returns false
// when no round is live.
func (c *Controller) View() (TableView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.store.ready() {
		return TableView{}, false
	}

	state := c.store.state.Clone()
	phase := c.phases.Phase()

	view := TableView{
		Phase:      phase,
		Mode:       state.Mode,
		Pot:        state.Pot,
		CurrentBet: state.CurrentBet,
		Community:  state.CommunityCards,
		LastAction: state.LastAction,
		Limits:     c.store.limits,
		Revealed:   c.phases.Revealed(),
		Busy:       c.dispatcher.Busy(),
	}

	view.Seats = make([]SeatView, len(state.Players))
	for i, p := range state.Players {
		seat := SeatView{
			Name:           p.Name,
			Chips:          p.Chips,
			HandVisible:    HandVisible(p, phase, state.Mode),
			Folded:         HasFolded(c.store.history, i),
			IsRobot:        p.IsRobot,
			WinProbability: p.WinProbability,
			Personality:    p.Personality,
			Acting:         i == state.CurrentPlayerIndex,
		}
		if seat.HandVisible {
			seat.Cards = p.Cards
		}
		view.Seats[i] = seat
	}
	return view, true
}
