package holdemshot

import "encoding/json"

// Phase represents where the round currently is
type Phase int

// constants for Phase
const (
	PhaseDeal Phase = iota
	PhaseFlop
	PhaseExchange
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseJokerCheck
	PhaseElimination
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDeal:
		return "deal"
	case PhaseFlop:
		return "flop"
	case PhaseExchange:
		return "exchange"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseJokerCheck:
		return "joker-check"
	case PhaseElimination:
		return "elimination"
	case PhaseGameOver:
		return "game-over"
	}

	return ""
}

// MarshalJSON encodes JSON
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}

// boardSize returns how many community cards are showing once a street is revealed
func boardSize(street Phase) int {
	switch street {
	case PhaseFlop:
		return 3
	case PhaseTurn:
		return 4
	case PhaseRiver:
		return 5
	}

	return 0
}

// nextStreet returns what follows an exchange window scoped to street
func nextStreet(street Phase) Phase {
	switch street {
	case PhaseFlop:
		return PhaseTurn
	case PhaseTurn:
		return PhaseRiver
	}

	return PhaseShowdown
}
