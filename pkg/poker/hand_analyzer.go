package poker

import (
	"holdemshot-server/pkg/deck"
	"sort"
)

const handSize = 5

// HandAnalyzer analyzes exactly five cards
type HandAnalyzer struct {
	cards    []deck.Card
	ranks    []int
	quads    []int
	trips    []int
	pairs    []int
	kickers  []int
	flush    bool
	straight int

	hand Hand
}

// NewHandAnalyzer will return a new HandAnalyzer instance
// cards must hold five non-joker cards
func NewHandAnalyzer(cards []deck.Card) *HandAnalyzer {
	if len(cards) != handSize {
		panic("hand analyzer requires five cards")
	}

	newCards := make([]deck.Card, len(cards))
	copy(newCards, cards)

	sort.Stable(sort.Reverse(sortByRank(newCards)))

	h := &HandAnalyzer{
		cards: newCards,
	}

	// the method order here is required
	h.analyzeHand()
	h.calculateHand()

	return h
}

// analyzeHand groups the cards by rank and checks for flushes and straights
func (h *HandAnalyzer) analyzeHand() {
	h.ranks = make([]int, len(h.cards))
	counts := make(map[int]int, len(h.cards))
	h.flush = true
	for i, card := range h.cards {
		h.ranks[i] = card.Rank
		counts[card.Rank]++
		if card.Suit != h.cards[0].Suit {
			h.flush = false
		}
	}

	// ranks are already sorted high to low, so walking them in order keeps
	// every group sorted high to low as well
	seen := make(map[int]bool, len(counts))
	for _, rank := range h.ranks {
		if seen[rank] {
			continue
		}
		seen[rank] = true

		switch counts[rank] {
		case 4:
			h.quads = append(h.quads, rank)
		case 3:
			h.trips = append(h.trips, rank)
		case 2:
			h.pairs = append(h.pairs, rank)
		default:
			h.kickers = append(h.kickers, rank)
		}
	}

	h.straight = straightHigh(h.ranks)
}

func (h *HandAnalyzer) calculateHand() {
	switch {
	case h.straight > 0 && h.flush:
		h.hand = StraightFlush
	case len(h.quads) > 0:
		h.hand = FourOfAKind
	case len(h.trips) > 0 && len(h.pairs) > 0:
		h.hand = FullHouse
	case h.flush:
		h.hand = Flush
	case h.straight > 0:
		h.hand = Straight
	case len(h.trips) > 0:
		h.hand = ThreeOfAKind
	case len(h.pairs) > 1:
		h.hand = TwoPair
	case len(h.pairs) > 0:
		h.hand = OnePair
	default:
		h.hand = HighCard
	}
}

// GetHand returns the category of the five cards
func (h *HandAnalyzer) GetHand() Hand {
	return h.hand
}

// GetStraight returns the high card of the straight
// A wheel (A-2-3-4-5) is five-high
func (h *HandAnalyzer) GetStraight() (int, bool) {
	return h.straight, h.straight > 0
}

// GetFourOfAKind returns the rank of the quads
func (h *HandAnalyzer) GetFourOfAKind() (int, bool) {
	if len(h.quads) == 0 {
		return 0, false
	}

	return h.quads[0], true
}

// GetFullHouse returns the trips rank and the pair rank
func (h *HandAnalyzer) GetFullHouse() ([]int, bool) {
	if h.hand != FullHouse {
		return nil, false
	}

	return []int{h.trips[0], h.pairs[0]}, true
}

// GetThreeOfAKind returns the rank of the trips
func (h *HandAnalyzer) GetThreeOfAKind() (int, bool) {
	if len(h.trips) == 0 {
		return 0, false
	}

	return h.trips[0], true
}

// GetTwoPair returns the rank of the high pair then the low pair
func (h *HandAnalyzer) GetTwoPair() ([]int, bool) {
	if len(h.pairs) < 2 {
		return nil, false
	}

	return []int{h.pairs[0], h.pairs[1]}, true
}

// GetPair returns the rank of the pair
func (h *HandAnalyzer) GetPair() (int, bool) {
	if len(h.pairs) == 0 {
		return 0, false
	}

	return h.pairs[0], true
}

// GetScore returns the category and its descending tie-breakers
func (h *HandAnalyzer) GetScore() Score {
	var ranks []int
	switch h.GetHand() {
	case StraightFlush, Straight:
		high, _ := h.GetStraight()
		ranks = []int{high}
	case FourOfAKind:
		quads, _ := h.GetFourOfAKind()
		ranks = append([]int{quads}, h.kickers...)
	case FullHouse:
		ranks, _ = h.GetFullHouse()
	case ThreeOfAKind:
		trips, _ := h.GetThreeOfAKind()
		ranks = append([]int{trips}, h.kickers...)
	case TwoPair:
		pairs, _ := h.GetTwoPair()
		ranks = append(pairs, h.kickers...)
	case OnePair:
		pair, _ := h.GetPair()
		ranks = append([]int{pair}, h.kickers...)
	default:
		ranks = append([]int{}, h.ranks...)
	}

	return Score{
		Hand:  h.hand,
		Ranks: ranks,
		Cards: deck.Hand(h.cards).Clone(),
	}
}
