// Package view renders session snapshots for the terminal. It is a thin
// presentation layer: everything it shows arrives already gated by the
// session, so a hidden hand reaches this package only as an absent slice.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/holdemclient/internal/deck"
	"github.com/lox/holdemclient/internal/session"
)

// Styles holds the lipgloss styling for table output.
type Styles struct {
	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	CardBack  lipgloss.Style
	Seat      lipgloss.Style
	Acting    lipgloss.Style
	Folded    lipgloss.Style
	PotInfo   lipgloss.Style
	Error     lipgloss.Style
}

// DefaultStyles returns the standard table styling.
func DefaultStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		CardBack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Seat: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Acting: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Folded: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Strikethrough(true),
		PotInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
	}
}

// Renderer draws table views as styled text.
type Renderer struct {
	styles   *Styles
	cardBack string
	showOdds bool
	colored  bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithCardBack sets the glyph used for hidden cards.
func WithCardBack(back string) Option {
	return func(r *Renderer) {
		r.cardBack = back
	}
}

// WithOdds toggles win-probability display.
func WithOdds(show bool) Option {
	return func(r *Renderer) {
		r.showOdds = show
	}
}

// NewRenderer creates a renderer, detecting the terminal color profile.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		styles:   DefaultStyles(),
		cardBack: "▒▒",
		showOdds: true,
		colored:  termenv.ColorProfile() != termenv.Ascii,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Card renders a single face-up card with suit coloring.
func (r *Renderer) Card(c deck.Card) string {
	text := c.Display()
	if !r.colored {
		return text
	}
	if c.Suit.IsRed() {
		return r.styles.RedCard.Render(text)
	}
	return r.styles.BlackCard.Render(text)
}

// Cards renders a card sequence separated by spaces.
func (r *Renderer) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

// hiddenHand renders two card backs.
func (r *Renderer) hiddenHand() string {
	back := r.cardBack
	if r.colored {
		back = r.styles.CardBack.Render(r.cardBack)
	}
	return back + " " + back
}

// Seat renders one seat line. A folded seat shows as folded regardless of
// card count; a gated hand shows card backs.
func (r *Renderer) Seat(seat session.SeatView) string {
	var hand string
	switch {
	case seat.Folded:
		hand = "folded"
	case !seat.HandVisible:
		hand = r.hiddenHand()
	case len(seat.Cards) == 0:
		hand = "--"
	default:
		hand = r.Cards(seat.Cards)
	}

	line := fmt.Sprintf("%-10s %6d  %s", seat.Name, seat.Chips, hand)
	if r.showOdds && seat.HandVisible && !seat.Folded {
		line += fmt.Sprintf("  (%.0f%%)", seat.WinProbability*100)
	}

	if !r.colored {
		if seat.Acting {
			return "> " + line
		}
		return "  " + line
	}
	switch {
	case seat.Folded:
		return "  " + r.styles.Folded.Render(line)
	case seat.Acting:
		return "> " + r.styles.Acting.Render(line)
	default:
		return "  " + r.styles.Seat.Render(line)
	}
}

// Table renders the full table view.
func (r *Renderer) Table(v session.TableView) string {
	var b strings.Builder

	header := fmt.Sprintf("%s · %s", v.Phase, v.Mode)
	if r.colored {
		header = r.styles.Header.Render(header)
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	board := "--"
	if len(v.Community) > 0 {
		board = r.Cards(v.Community)
	}
	b.WriteString("Board: " + board + "\n")

	potLine := fmt.Sprintf("Pot %d · Bet %d", v.Pot, v.CurrentBet)
	if r.colored {
		potLine = r.styles.PotInfo.Render(potLine)
	}
	b.WriteString(potLine + "\n\n")

	for _, seat := range v.Seats {
		b.WriteString(r.Seat(seat))
		b.WriteString("\n")
	}

	if v.LastAction != nil {
		b.WriteString(fmt.Sprintf("\nLast action: seat %d %s\n", v.LastAction.PlayerIndex, v.LastAction))
	}
	return b.String()
}

// Error renders a user-facing error message.
func (r *Renderer) Error(msg string) string {
	if !r.colored {
		return "error: " + msg
	}
	return r.styles.Error.Render("error: " + msg)
}
