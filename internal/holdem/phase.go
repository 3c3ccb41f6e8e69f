package holdem

// Phase is a stage of community-card reveal plus the terminal showdown.
// Phases are totally ordered and only ever advance within a round.
type Phase int

const (
	PreFlop Phase = iota
	Flop
	Turn
	River
	Showdown
)

func (p Phase) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[p]
}

// Next returns the following phase. Showdown is terminal and returns itself.
func (p Phase) Next() Phase {
	if p >= Showdown {
		return Showdown
	}
	return p + 1
}

// CommunityCount returns how many community cards are on the board once the
// phase's deal has been applied.
func (p Phase) CommunityCount() int {
	switch p {
	case Flop:
		return 3
	case Turn:
		return 4
	case River, Showdown:
		return 5
	default:
		return 0
	}
}

// DealStep identifies one community-card deal request to the engine.
type DealStep int

const (
	DealFlop DealStep = iota
	DealTurn
	DealRiver
)

func (d DealStep) String() string {
	return [...]string{"flop", "turn", "river"}[d]
}

// Source is the phase the round must be in for the step to apply.
func (d DealStep) Source() Phase {
	return [...]Phase{PreFlop, Flop, Turn}[d]
}

// Target is the phase the round enters once the step's cards are applied.
func (d DealStep) Target() Phase {
	return [...]Phase{Flop, Turn, River}[d]
}

// DealStepFor returns the deal step that advances out of the given phase,
// or false when the phase has no further deal (River and Showdown).
func DealStepFor(p Phase) (DealStep, bool) {
	switch p {
	case PreFlop:
		return DealFlop, true
	case Flop:
		return DealTurn, true
	case Turn:
		return DealRiver, true
	default:
		return 0, false
	}
}
