// Package deck defines card value types matching the engine's wire format.
// The engine serializes suits and ranks by name ("Hearts", "Ace"), so the
// JSON codecs here round-trip those names rather than compact notation.
package deck

import (
	"encoding/json"
	"fmt"
)

// Suit is one of the four card suits.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = [...]string{"Hearts", "Diamonds", "Clubs", "Spades"}

func (s Suit) String() string {
	if s < Hearts || s > Spades {
		return "Unknown"
	}
	return suitNames[s]
}

// Glyph returns the unicode symbol for the suit.
func (s Suit) Glyph() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed reports whether the suit renders red.
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// ParseSuit converts a wire name into a Suit.
func ParseSuit(name string) (Suit, error) {
	for i, n := range suitNames {
		if n == name {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// MarshalJSON encodes the suit as its wire name.
func (s Suit) MarshalJSON() ([]byte, error) {
	if s < Hearts || s > Spades {
		return nil, fmt.Errorf("invalid suit %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a suit from its wire name.
func (s *Suit) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSuit(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Rank is a card rank from Two up to Ace.
type Rank int

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankNames = [...]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

func (r Rank) String() string {
	if r < Two || r > Ace {
		return "Unknown"
	}
	return rankNames[r]
}

// Short returns the single-character rank used in compact notation (T for Ten).
func (r Rank) Short() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string("23456789TJQKA"[r])
}

// ParseRank converts a wire name into a Rank.
func ParseRank(name string) (Rank, error) {
	for i, n := range rankNames {
		if n == name {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", name)
}

// MarshalJSON encodes the rank as its wire name.
func (r Rank) MarshalJSON() ([]byte, error) {
	if r < Two || r > Ace {
		return nil, fmt.Errorf("invalid rank %d", int(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a rank from its wire name.
func (r *Rank) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseRank(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Card is an immutable suit/rank pair.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// String returns compact notation like "As" or "Th".
func (c Card) String() string {
	suits := "hdcs"
	if c.Suit < Hearts || c.Suit > Spades {
		return "??"
	}
	return c.Rank.Short() + string(suits[c.Suit])
}

// Display returns the rank short form plus suit glyph, e.g. "A♠".
func (c Card) Display() string {
	return c.Rank.Short() + c.Suit.Glyph()
}

// ParseCard parses compact notation ("As", "Th") into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankIdx := -1
	for i := 0; i < 13; i++ {
		if "23456789TJQKA"[i] == s[0] {
			rankIdx = i
			break
		}
	}
	if rankIdx == -1 {
		return Card{}, fmt.Errorf("invalid rank in %q", s)
	}
	var suit Suit
	switch s[1] {
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	case 's':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit in %q", s)
	}
	return Card{Suit: suit, Rank: Rank(rankIdx)}, nil
}

// MustParseCard is ParseCard that panics on error, for tests and fixtures.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a list of compact notations into cards.
func ParseCards(strs ...string) ([]Card, error) {
	cards := make([]Card, 0, len(strs))
	for _, s := range strs {
		c, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
