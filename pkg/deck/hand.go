package deck

// Hand represents a collection of cards
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c.Equal(card) {
			return true
		}
	}

	return false
}

// HasJoker returns true if any card in the hand is a joker
func (h Hand) HasJoker() bool {
	for _, c := range h {
		if c.IsJoker() {
			return true
		}
	}

	return false
}

// WithoutJokers returns a copy of the hand with every joker removed
func (h Hand) WithoutJokers() Hand {
	h2 := make(Hand, 0, len(h))
	for _, c := range h {
		if !c.IsJoker() {
			h2 = append(h2, c)
		}
	}

	return h2
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
