package holdemshot

import (
	"holdemshot-server/pkg/deck"
)

// Participant is an individual seat in the game
type Participant struct {
	PlayerID string
	Name     string
	seat     int

	hand       deck.Hand
	eliminated bool
	// heldJoker is frozen at deal and never recomputed after an exchange
	heldJoker bool
	ready     bool
	exchanged bool
	replaced  int
}

type participantJSON struct {
	PlayerID   string    `json:"playerId"`
	Name       string    `json:"name"`
	Seat       int       `json:"seat"`
	Hand       deck.Hand `json:"hand"`
	Eliminated bool      `json:"eliminated"`
	HeldJoker  bool      `json:"heldJoker"`
	Ready      bool      `json:"ready"`
	Replaced   int       `json:"replaced"`
}

func newParticipant(id, name string, seat int) *Participant {
	return &Participant{
		PlayerID: id,
		Name:     name,
		seat:     seat,
		hand:     make(deck.Hand, 0, 2),
	}
}

// newRound resets the participant before the hole cards are dealt
func (p *Participant) newRound() {
	p.hand = make(deck.Hand, 0, 2)
	p.heldJoker = false
	p.openWindow()
}

// openWindow resets the participant for an exchange window
func (p *Participant) openWindow() {
	p.ready = false
	p.exchanged = false
	p.replaced = 0
}

// participantJSON returns a view of the participant
// Unless forceReveal is true, the hole cards are replaced with face down placeholders
// and the held-joker flag is hidden
func (p *Participant) participantJSON(forceReveal bool) *participantJSON {
	hand := p.hand
	heldJoker := p.heldJoker
	if !forceReveal {
		hand = make(deck.Hand, len(p.hand))
		for i := range hand {
			hand[i] = deck.FaceDown
		}
		heldJoker = false
	}

	return &participantJSON{
		PlayerID:   p.PlayerID,
		Name:       p.Name,
		Seat:       p.seat,
		Hand:       hand,
		Eliminated: p.eliminated,
		HeldJoker:  heldJoker,
		Ready:      p.ready,
		Replaced:   p.replaced,
	}
}
