// Package bot contains built-in opponents for rooms without a second human
package bot

import "holdemshot-server/pkg/deck"

// View is a read-only projection of the round as seen by one seat
type View struct {
	Street  string
	Hand    deck.Hand
	Board   deck.Hand
	Bullets int
}

// Strategy decides which hole cards a bot replaces during an exchange window
type Strategy interface {
	// ChooseExchange returns the hole card indices to replace; an empty result means ready without exchanging
	ChooseExchange(view View) []int
	// Name returns a human-readable identifier for logging
	Name() string
}

// lowRankCutoff is the rank below which an unpaired card is worth replacing
const lowRankCutoff = 10

// Heuristic replaces unpaired low cards and always keeps jokers
type Heuristic struct{}

// NewHeuristic returns the default bot strategy
func NewHeuristic() Heuristic {
	return Heuristic{}
}

// Name returns the strategy name
func (Heuristic) Name() string {
	return "heuristic"
}

// ChooseExchange returns up to two indices of hole cards that are not jokers,
// do not pair with the other hole card or the board, and rank below ten
func (Heuristic) ChooseExchange(view View) []int {
	counts := make(map[int]int)
	for _, card := range view.Hand {
		if !card.IsJoker() {
			counts[card.Rank]++
		}
	}

	for _, card := range view.Board {
		counts[card.Rank]++
	}

	indices := make([]int, 0, 2)
	for i, card := range view.Hand {
		if len(indices) == 2 {
			break
		}

		if card.IsJoker() || counts[card.Rank] > 1 || card.Rank >= lowRankCutoff {
			continue
		}

		indices = append(indices, i)
	}

	return indices
}
