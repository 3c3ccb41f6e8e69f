package runner

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemclient/internal/holdem"
	"github.com/lox/holdemclient/internal/session"
)

// fakeEngine serves scripted simulation states.
type fakeEngine struct {
	mu     sync.Mutex
	starts int
	deals  []holdem.DealStep
}

func (f *fakeEngine) StartRound(_ context.Context, cfg holdem.RoundConfig) (*holdem.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	return &holdem.GameState{
		Players: []holdem.Player{
			{Name: "You", Chips: cfg.StartingChips},
			{Name: "Robo", Chips: cfg.StartingChips, IsRobot: true},
		},
		Mode: cfg.Mode,
	}, nil
}

func (f *fakeEngine) Deal(_ context.Context, step holdem.DealStep) (*holdem.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deals = append(f.deals, step)
	return &holdem.GameState{
		Players: []holdem.Player{
			{Name: "You", Chips: 1000},
			{Name: "Robo", Chips: 1000, IsRobot: true},
		},
		Mode: holdem.ModeSimulation,
	}, nil
}

func (f *fakeEngine) SubmitAction(context.Context, holdem.Action) (*holdem.GameState, error) {
	panic("simulation runs never submit actions")
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func simConfig() holdem.RoundConfig {
	return holdem.RoundConfig{PlayerCount: 2, Mode: holdem.ModeSimulation, StartingChips: 1000}
}

func TestRunPlaysRoundsToShowdown(t *testing.T) {
	eng := &fakeEngine{}
	ctrl := session.New(eng, testLogger())
	r := New(ctrl, testLogger())

	require.NoError(t, r.Run(context.Background(), simConfig(), 2))

	assert.Equal(t, 2, eng.starts)
	assert.Equal(t, []holdem.DealStep{
		holdem.DealFlop, holdem.DealTurn, holdem.DealRiver,
		holdem.DealFlop, holdem.DealTurn, holdem.DealRiver,
	}, eng.deals)
	assert.Equal(t, holdem.Showdown, ctrl.Phase())
}

func TestRunPacesDealsOnClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	eng := &fakeEngine{}
	ctrl := session.New(eng, testLogger())

	mock := quartz.NewMock(t)
	trap := mock.Trap().NewTimer()
	defer trap.Close()

	r := New(ctrl, testLogger(), WithClock(mock), WithPause(time.Second))

	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx, simConfig(), 1)
	}()

	// One paced wait per advancement: flop, turn, river, showdown close-out.
	for i := 0; i < 4; i++ {
		call := trap.MustWait(ctx)
		call.Release()
		mock.Advance(time.Second).MustWait(ctx)
	}

	require.NoError(t, <-done)
	assert.Equal(t, holdem.Showdown, ctrl.Phase())
}

func TestRunMany(t *testing.T) {
	engines := make([]*fakeEngine, 3)
	runners := make([]*Runner, 3)
	for i := range runners {
		engines[i] = &fakeEngine{}
		runners[i] = New(session.New(engines[i], testLogger()), testLogger())
	}

	require.NoError(t, RunMany(context.Background(), runners, simConfig(), 2))
	for i, eng := range engines {
		assert.Equal(t, 2, eng.starts, "session %d", i)
		assert.Len(t, eng.deals, 6, "session %d", i)
	}
}
