package poker

import "holdemshot-server/pkg/deck"

// straightHigh returns the high card of a five card straight, or 0
// ranks must contain five distinct ranks sorted from high to low
// A-2-3-4-5 (the wheel) plays the ace low and is five-high
func straightHigh(ranks []int) int {
	if len(ranks) != handSize {
		return 0
	}

	for i := 1; i < len(ranks); i++ {
		if ranks[i] == ranks[i-1] {
			return 0
		}
	}

	if ranks[0]-ranks[4] == 4 {
		return ranks[0]
	}

	if ranks[0] == deck.Ace && ranks[1] == 5 && ranks[4] == 2 {
		return 5
	}

	return 0
}
