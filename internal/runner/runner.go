// Package runner steps simulation rounds without a UI: start a round, deal
// through to the river, close out at showdown, repeat. Each step awaits the
// previous one, matching the session's one-outstanding-call rule.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemclient/internal/holdem"
	"github.com/lox/holdemclient/internal/session"
)

// Runner drives one session through complete simulation rounds.
type Runner struct {
	controller *session.Controller
	clock      quartz.Clock
	pause      time.Duration
	logger     *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock injects the clock used for deal pacing; tests use a mock.
func WithClock(clock quartz.Clock) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithPause sets the delay between deal steps so a watcher can follow along.
func WithPause(d time.Duration) Option {
	return func(r *Runner) {
		r.pause = d
	}
}

// New creates a runner for the given controller.
func New(ctrl *session.Controller, logger *log.Logger, opts ...Option) *Runner {
	r := &Runner{
		controller: ctrl,
		clock:      quartz.NewReal(),
		logger:     logger.WithPrefix("runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays the given number of rounds to completion.
func (r *Runner) Run(ctx context.Context, cfg holdem.RoundConfig, rounds int) error {
	for i := 0; i < rounds; i++ {
		if err := r.playRound(ctx, cfg); err != nil {
			return fmt.Errorf("round %d: %w", i+1, err)
		}
	}
	return nil
}

func (r *Runner) playRound(ctx context.Context, cfg holdem.RoundConfig) error {
	if err := r.controller.StartRound(ctx, cfg); err != nil {
		return err
	}

	for r.controller.Phase() != holdem.Showdown {
		if err := r.sleep(ctx); err != nil {
			return err
		}
		before := r.controller.Phase()
		if err := r.controller.AdvanceDeal(ctx); err != nil {
			return err
		}
		r.logger.Info("Advanced", "from", before, "to", r.controller.Phase())
	}

	if view, ok := r.controller.View(); ok {
		r.logger.Info("Round complete", "pot", view.Pot, "board", len(view.Community))
	}
	return nil
}

func (r *Runner) sleep(ctx context.Context) error {
	if r.pause <= 0 {
		return nil
	}
	timer := r.clock.NewTimer(r.pause)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunMany plays rounds on several independent sessions concurrently. Each
// session still performs its own round-trips strictly in sequence.
func RunMany(ctx context.Context, runners []*Runner, cfg holdem.RoundConfig, rounds int) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, r := range runners {
		g.Go(func() error {
			return r.Run(ctx, cfg, rounds)
		})
	}
	return g.Wait()
}
