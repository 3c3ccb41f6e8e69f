package tui

import (
	"context"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemclient/internal/holdem"
	"github.com/lox/holdemclient/internal/session"
	"github.com/lox/holdemclient/internal/view"
)

type fakeEngine struct {
	state *holdem.GameState
}

func (f *fakeEngine) StartRound(ctx context.Context, cfg holdem.RoundConfig) (*holdem.GameState, error) {
	return f.state.Clone(), nil
}

func (f *fakeEngine) Deal(ctx context.Context, step holdem.DealStep) (*holdem.GameState, error) {
	return f.state.Clone(), nil
}

func (f *fakeEngine) SubmitAction(ctx context.Context, action holdem.Action) (*holdem.GameState, error) {
	next := f.state.Clone()
	next.LastAction = &action
	return next, nil
}

func testState() *holdem.GameState {
	return &holdem.GameState{
		Players: []holdem.Player{
			{Name: "You", Chips: 1000},
			{Name: "Bot 1", Chips: 1000, IsRobot: true},
		},
		Pot:  200,
		Mode: holdem.ModeInteractive,
	}
}

func testModel(t *testing.T) (Model, *session.Controller) {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	ctrl := session.New(&fakeEngine{state: testState()}, logger)
	cfg := holdem.RoundConfig{PlayerCount: 2, StartingChips: 1000, Mode: holdem.ModeInteractive}
	m := New(ctrl, view.NewRenderer(), cfg, logger)

	// Run the startup command synchronously, as Bubble Tea's runtime would.
	msg := m.startRound()()
	updated, _ := m.Update(msg)
	return updated.(Model), ctrl
}

func TestStartRoundClearsBusy(t *testing.T) {
	m, ctrl := testModel(t)

	assert.False(t, m.busy)
	require.Equal(t, holdem.PreFlop, ctrl.Phase())
	assert.Contains(t, m.View(), "min raise 10")
}

func TestActionKeysIgnoredWhileBusy(t *testing.T) {
	m, _ := testModel(t)
	m.busy = true

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	assert.Nil(t, cmd)
	assert.True(t, updated.(Model).busy)
}

func TestQuitAlwaysAvailable(t *testing.T) {
	m, _ := testModel(t)
	m.busy = true

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestFoldDispatches(t *testing.T) {
	m, ctrl := testModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	// Drain the batch to run the submit command and feed its result back.
	for _, msg := range drain(t, cmd) {
		if done, ok := msg.(actionDoneMsg); ok {
			assert.NoError(t, done.err)
			updated, _ := m.Update(done)
			m = updated.(Model)
		}
	}
	assert.False(t, m.busy)
	assert.True(t, ctrl.HasFolded(0))
}

func TestQuickBetPresetFillsInput(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = updated.(Model)

	// Half of a 200 pot.
	assert.Equal(t, "100", m.amountInput.Value())
}

func TestFocusedInputCapturesDigits(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(Model)
	require.True(t, m.amountInput.Focused())

	// With focus held, '2' is typed text rather than a pot preset.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = updated.(Model)
	assert.Equal(t, "2", m.amountInput.Value())

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	assert.False(t, m.amountInput.Focused())
}

func TestSuggestSetsStatus(t *testing.T) {
	m, _ := testModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(Model)
	assert.Contains(t, m.status, "suggestion: ")
	assert.False(t, m.busy)
}

func TestBetAmountClampsToMinimum(t *testing.T) {
	m, _ := testModel(t)

	m.amountInput.SetValue("3")
	assert.Equal(t, 10, m.betAmount())

	m.amountInput.SetValue("not a number")
	assert.Equal(t, 10, m.betAmount())

	m.amountInput.SetValue("999999")
	assert.Equal(t, 1000, m.betAmount())
}

// drain runs a command and recursively flattens batches into messages.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(t, c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}
