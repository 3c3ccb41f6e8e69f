// Package tui is the interactive terminal front end. It owns no game state:
// every keypress becomes a session call and every frame is drawn from the
// gated table view. While a round-trip is outstanding the action keys are
// ignored, honoring the one-outstanding-call rule.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdemclient/internal/holdem"
	"github.com/lox/holdemclient/internal/session"
	"github.com/lox/holdemclient/internal/view"
)

// Model is the Bubble Tea model for an interactive session.
type Model struct {
	controller *session.Controller
	renderer   *view.Renderer
	advisor    *session.Advisor
	cfg        holdem.RoundConfig
	logger     *log.Logger

	amountInput textinput.Model
	spin        spinner.Model

	busy   bool
	errMsg string
	status string
	width  int
}

type roundStartedMsg struct{ err error }
type actionDoneMsg struct{ err error }
type dealDoneMsg struct{ err error }

// New creates the TUI model. The round is started by Init.
func New(ctrl *session.Controller, renderer *view.Renderer, cfg holdem.RoundConfig, logger *log.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "bet amount"
	ti.Prompt = "amount> "
	ti.CharLimit = 8
	ti.Width = 20
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		controller:  ctrl,
		renderer:    renderer,
		advisor:     session.NewAdvisor(uint64(time.Now().UnixNano())),
		cfg:         cfg,
		logger:      logger.WithPrefix("tui"),
		amountInput: ti,
		spin:        sp,
		busy:        true,
	}
}

// Init starts the first round.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.startRound())
}

func (m Model) startRound() tea.Cmd {
	return func() tea.Msg {
		return roundStartedMsg{err: m.controller.StartRound(context.Background(), m.cfg)}
	}
}

func (m Model) submit(action holdem.Action) tea.Cmd {
	return func() tea.Msg {
		return actionDoneMsg{err: m.controller.SubmitAction(context.Background(), action)}
	}
}

func (m Model) advanceDeal() tea.Cmd {
	return func() tea.Msg {
		return dealDoneMsg{err: m.controller.AdvanceDeal(context.Background())}
	}
}

// Update handles input and session completions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case roundStartedMsg:
		m.busy = false
		m.errMsg = errText(msg.err)
		m.status = "round started"
		return m, nil

	case actionDoneMsg, dealDoneMsg:
		m.busy = false
		switch done := msg.(type) {
		case actionDoneMsg:
			m.errMsg = errText(done.err)
		case dealDoneMsg:
			m.errMsg = errText(done.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the amount field is focused every key belongs to it, so typed
	// digits are never mistaken for preset keys.
	if m.amountInput.Focused() {
		switch msg.String() {
		case "enter", "esc":
			m.amountInput.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.amountInput, cmd = m.amountInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	// The action surface is unavailable while a round-trip is outstanding.
	if m.busy {
		return m, nil
	}

	switch msg.String() {
	case "a":
		m.amountInput.Focus()
		return m, textinput.Blink

	case "n":
		m.busy = true
		m.status = "starting round"
		return m, tea.Batch(m.spin.Tick, m.startRound())

	case "d":
		m.busy = true
		m.status = "dealing"
		return m, tea.Batch(m.spin.Tick, m.advanceDeal())

	case "f":
		return m.dispatch(holdem.Action{Type: holdem.Fold})

	case "c":
		t := holdem.Check
		if v, ok := m.controller.View(); ok && v.CurrentBet > 0 {
			t = holdem.Call
		}
		return m.dispatch(holdem.Action{Type: t})

	case "b":
		amount := m.betAmount()
		t := holdem.Bet
		if v, ok := m.controller.View(); ok && v.CurrentBet > 0 {
			t = holdem.Raise
		}
		return m.dispatch(holdem.Action{Type: t, Amount: amount})

	case "1", "2", "3", "4":
		fraction := map[string]float64{"1": 0.25, "2": 0.5, "3": 0.75, "4": 1.0}[msg.String()]
		m.amountInput.SetValue(strconv.Itoa(m.controller.QuickBet(fraction)))
		return m, nil

	case "s":
		suggestion := m.controller.Suggest(m.advisor)
		m.status = "suggestion: " + suggestion.String()
		if suggestion.Type.RequiresAmount() {
			m.amountInput.SetValue(strconv.Itoa(suggestion.Amount))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) dispatch(action holdem.Action) (tea.Model, tea.Cmd) {
	m.busy = true
	m.errMsg = ""
	m.status = action.String()
	return m, tea.Batch(m.spin.Tick, m.submit(action))
}

// betAmount reads the amount input and clamps it into the legal range, so
// the user can never submit an illegal size from the UI.
func (m Model) betAmount() int {
	parsed, _ := strconv.Atoi(strings.TrimSpace(m.amountInput.Value()))
	return m.controller.Limits(parsed).Amount
}

// View draws the table, input and status line.
func (m Model) View() string {
	var b strings.Builder

	if v, ok := m.controller.View(); ok {
		b.WriteString(m.renderer.Table(v))
		b.WriteString("\n")
		limits := v.Limits
		b.WriteString(fmt.Sprintf("min raise %d · max bet %d\n", limits.MinRaise, limits.MaxBet))
	} else {
		b.WriteString("no round in progress\n")
	}

	b.WriteString("\n" + m.amountInput.View() + "\n")

	if m.busy {
		b.WriteString(m.spin.View() + " " + m.status + "\n")
	} else if m.errMsg != "" {
		b.WriteString(m.renderer.Error(m.errMsg) + "\n")
	} else if m.status != "" {
		b.WriteString(m.status + "\n")
	}

	b.WriteString("\n[f]old [c]heck/call [b]et/raise [a]mount [s]uggest [1-4] pot presets [d]eal [n]ew round [q]uit\n")
	return b.String()
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
