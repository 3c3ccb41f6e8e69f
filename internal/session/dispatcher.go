package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/holdemclient/internal/holdem"
)

// Engine is the session's view of the remote engine. *engine.Client satisfies
// it; tests substitute fakes.
type Engine interface {
	StartRound(ctx context.Context, cfg holdem.RoundConfig) (*holdem.GameState, error)
	Deal(ctx context.Context, step holdem.DealStep) (*holdem.GameState, error)
	SubmitAction(ctx context.Context, action holdem.Action) (*holdem.GameState, error)
}

var (
	// ErrNoRound is returned when no round is live.
	ErrNoRound = errors.New("no round in progress")

	// ErrActionInFlight is returned when a submission arrives while another
	// round-trip is outstanding. Submissions are rejected, never queued.
	ErrActionInFlight = errors.New("another action is already in flight")

	// ErrStaleRound is returned when a round-trip resolves after a newer
	// round has replaced the one it was issued for; its response is discarded.
	ErrStaleRound = errors.New("round superseded, response discarded")

	// ErrLocalGuard marks a client-side precondition failure caught before
	// any network call. It indicates a stale or duplicate trigger and is
	// absorbed without a user-visible error.
	ErrLocalGuard = errors.New("local guard rejected the request")
)

// Dispatcher pushes one player action (or deal step) at a time to the engine
// and reconciles the authoritative response into the session store. Exactly
// one outbound round-trip happens per call and nothing retries automatically.
// The in-flight gate is the session's concurrency invariant: the surrounding
// event loop does not serialize for us, so at most one outstanding round-trip
// per round is enforced here explicitly.
type Dispatcher struct {
	engine   Engine
	store    *store
	phases   *PhaseMachine
	mu       *sync.Mutex
	inFlight atomic.Bool
	logger   *log.Logger
}

// NewDispatcher wires a dispatcher to the session's store and phase machine.
// The mutex is shared with the owning controller; it guards store and phase
// access but is never held across a network round-trip.
func NewDispatcher(eng Engine, st *store, phases *PhaseMachine, mu *sync.Mutex, logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		engine: eng,
		store:  st,
		phases: phases,
		mu:     mu,
		logger: logger.WithPrefix("dispatch"),
	}
}

// Busy reports whether a round-trip is currently outstanding. Callers should
// treat the action-trigger surface as unavailable while it returns true.
func (d *Dispatcher) Busy() bool {
	return d.inFlight.Load()
}

// Submit validates and sends one action. On success the snapshot is replaced
// wholesale, limits are recomputed, and the action is fed to the phase
// machine, which may chain exactly one further deal round-trip. On any
// engine rejection or transport failure the round is left exactly where it
// was. The returned events are in mutation order for the caller to publish.
func (d *Dispatcher) Submit(ctx context.Context, intent holdem.Action) ([]Event, error) {
	d.mu.Lock()
	if !d.store.ready() {
		d.mu.Unlock()
		return nil, ErrNoRound
	}
	if err := d.validate(intent); err != nil {
		d.mu.Unlock()
		return nil, err
	}
	roundID := d.store.roundID
	d.mu.Unlock()

	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, ErrActionInFlight
	}
	defer d.inFlight.Store(false)

	if !intent.Type.RequiresAmount() {
		intent.Amount = 0
	}

	state, err := d.engine.SubmitAction(ctx, intent)
	if err != nil {
		d.logger.Warn("Action rejected", "action", intent.Type, "error", err)
		return nil, err
	}

	d.mu.Lock()
	if d.store.roundID != roundID {
		d.mu.Unlock()
		d.logger.Debug("Discarding action response for superseded round")
		return nil, ErrStaleRound
	}
	d.store.replace(state)
	events := []Event{StateChangedEvent{State: state, Limits: d.store.limits, timestamp: time.Now()}}

	if !d.phases.AdvancesPhase(intent.Type) {
		d.mu.Unlock()
		return events, nil
	}

	if d.phases.Phase() == holdem.River {
		from := d.phases.Phase()
		d.phases.EnterShowdown()
		events = append(events, PhaseChangedEvent{
			From: from, To: d.phases.Phase(), Revealed: d.phases.Revealed(), timestamp: time.Now(),
		})
		d.mu.Unlock()
		return events, nil
	}

	step, ok := d.phases.NextDeal()
	d.mu.Unlock()
	if !ok {
		return events, nil
	}

	dealEvents, err := d.deal(ctx, roundID, step)
	events = append(events, dealEvents...)
	return events, err
}

// AdvanceDeal performs the next deal step for the current phase; this is the
// only driver of phase advancement in simulation mode. A round already at
// the river is closed out locally by moving to showdown, and any further
// call is a no-op, so duplicate triggers advance at most once.
func (d *Dispatcher) AdvanceDeal(ctx context.Context) ([]Event, error) {
	d.mu.Lock()
	if !d.store.ready() {
		d.mu.Unlock()
		return nil, ErrNoRound
	}
	roundID := d.store.roundID
	phase := d.phases.Phase()

	if phase == holdem.River {
		from := phase
		d.phases.EnterShowdown()
		evt := PhaseChangedEvent{
			From: from, To: d.phases.Phase(), Revealed: d.phases.Revealed(), timestamp: time.Now(),
		}
		d.mu.Unlock()
		return []Event{evt}, nil
	}

	step, ok := d.phases.NextDeal()
	d.mu.Unlock()
	if !ok {
		d.logger.Debug("No deal step available", "phase", phase)
		return nil, nil
	}

	if !d.inFlight.CompareAndSwap(false, true) {
		return nil, ErrActionInFlight
	}
	defer d.inFlight.Store(false)

	return d.deal(ctx, roundID, step)
}

// deal performs one community-card round-trip and applies it. The phase
// machine's guard decides whether the step still applies once the response
// arrives; a mismatch is swallowed as a stale trigger.
func (d *Dispatcher) deal(ctx context.Context, roundID uuid.UUID, step holdem.DealStep) ([]Event, error) {
	state, err := d.engine.Deal(ctx, step)
	if err != nil {
		d.logger.Warn("Deal failed", "step", step, "error", err)
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.store.roundID != roundID {
		d.logger.Debug("Discarding deal response for superseded round", "step", step)
		return nil, ErrStaleRound
	}

	from := d.phases.Phase()
	if !d.phases.ApplyDeal(step) {
		return nil, nil
	}

	d.store.replace(state)
	return []Event{
		StateChangedEvent{State: state, Limits: d.store.limits, timestamp: time.Now()},
		PhaseChangedEvent{From: from, To: d.phases.Phase(), Revealed: d.phases.Revealed(), timestamp: time.Now()},
	}, nil
}

// validate enforces the amount precondition: present and within limits for
// Bet/Raise, absent otherwise. Violations are local guard failures, caught
// before any network call.
func (d *Dispatcher) validate(intent holdem.Action) error {
	if !intent.Type.RequiresAmount() {
		return nil
	}
	limits := d.store.limits
	if intent.Amount < limits.MinRaise || intent.Amount > limits.MaxBet {
		d.logger.Debug("Amount outside limits",
			"amount", intent.Amount, "min", limits.MinRaise, "max", limits.MaxBet)
		return ErrLocalGuard
	}
	return nil
}
