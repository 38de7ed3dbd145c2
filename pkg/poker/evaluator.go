package poker

import (
	"errors"
	"fmt"
	"holdemshot-server/pkg/deck"
	"strings"
)

// ErrNotEnoughCards is returned when fewer than five playable cards are available
var ErrNotEnoughCards = errors.New("at least five non-joker cards are required")

// Score is the result of evaluating a hand
// Scores are compared lexicographically: category first, then each tie-breaker
type Score struct {
	Hand  Hand      `json:"hand"`
	Ranks []int     `json:"ranks"`
	Cards deck.Hand `json:"-"`
}

// Compare returns 1 if s beats other, -1 if other beats s, and 0 on a tie
func (s Score) Compare(other Score) int {
	if s.Hand != other.Hand {
		if s.Hand > other.Hand {
			return 1
		}

		return -1
	}

	for i := 0; i < len(s.Ranks) && i < len(other.Ranks); i++ {
		if s.Ranks[i] > other.Ranks[i] {
			return 1
		} else if s.Ranks[i] < other.Ranks[i] {
			return -1
		}
	}

	return 0
}

// Tuple returns the score as [category, tie-breakers...]
func (s Score) Tuple() []int {
	return append([]int{int(s.Hand)}, s.Ranks...)
}

// String returns a description of the score
func (s Score) String() string {
	return s.Describe()
}

// Describe returns a human readable description, i.e., Full House (Aces over Kings)
func (s Score) Describe() string {
	if len(s.Ranks) == 0 {
		return s.Hand.String()
	}

	switch s.Hand {
	case StraightFlush:
		if s.Ranks[0] == deck.Ace {
			return "Royal Flush"
		}

		return fmt.Sprintf("Straight Flush (%s high)", rankName(s.Ranks[0]))
	case FourOfAKind, ThreeOfAKind, OnePair:
		return fmt.Sprintf("%s (%s)", s.Hand, rankPlural(s.Ranks[0]))
	case FullHouse:
		return fmt.Sprintf("Full House (%s over %s)", rankPlural(s.Ranks[0]), rankPlural(s.Ranks[1]))
	case TwoPair:
		return fmt.Sprintf("Two Pair (%s and %s)", rankPlural(s.Ranks[0]), rankPlural(s.Ranks[1]))
	case Straight, Flush:
		return fmt.Sprintf("%s (%s high)", s.Hand, rankName(s.Ranks[0]))
	default:
		return fmt.Sprintf("High Card (%s)", rankName(s.Ranks[0]))
	}
}

// Evaluate returns the best five card score out of cards
// Jokers never play and are removed before evaluation
func Evaluate(cards ...deck.Card) (Score, error) {
	playable := deck.Hand(cards).WithoutJokers()
	if len(playable) < handSize {
		return Score{}, ErrNotEnoughCards
	}

	var best Score
	found := false
	eachCombination(len(playable), handSize, func(indices []int) {
		five := make([]deck.Card, handSize)
		for i, idx := range indices {
			five[i] = playable[idx]
		}

		score := NewHandAnalyzer(five).GetScore()
		if !found || score.Compare(best) > 0 {
			best = score
			found = true
		}
	})

	return best, nil
}

// MustEvaluate is Evaluate, but panics on error
func MustEvaluate(cards ...deck.Card) Score {
	score, err := Evaluate(cards...)
	if err != nil {
		panic(err)
	}

	return score
}

// eachCombination calls fn with every k-sized ascending index set out of n
func eachCombination(n, k int, fn func(indices []int)) {
	indices := make([]int, k)
	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == k {
			fn(indices)
			return
		}

		for i := start; i <= n-(k-depth); i++ {
			indices[depth] = i
			walk(i+1, depth+1)
		}
	}

	walk(0, 0)
}

var rankNames = [...]string{
	"", "", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten",
	"Jack", "Queen", "King", "Ace",
}

func rankName(rank int) string {
	if rank == deck.LowAce {
		return rankNames[deck.Ace]
	}

	if rank > 1 && rank < len(rankNames) {
		return rankNames[rank]
	}

	return fmt.Sprintf("%d", rank)
}

func rankPlural(rank int) string {
	name := rankName(rank)
	if strings.HasSuffix(name, "x") {
		return name + "es"
	}

	return name + "s"
}
