package holdemshot

import (
	"holdemshot-server/pkg/deck"
	"holdemshot-server/pkg/playable"
)

// PlayerState is everything a single seat is allowed to see
type PlayerState struct {
	Phase           Phase                  `json:"phase"`
	Street          Phase                  `json:"street"`
	Round           int                    `json:"round"`
	Bullets         int                    `json:"bullets"`
	Private         bool                   `json:"private"`
	Board           deck.Hand              `json:"board"`
	Participant     *participantJSON       `json:"participant"`
	Opponent        *participantJSON       `json:"opponent"`
	Exchangeable    []int                  `json:"exchangeable"`
	CanExchange     bool                   `json:"canExchange"`
	BothReady       bool                   `json:"bothReady"`
	LastShowdown    *ShowdownEvent         `json:"lastShowdown"`
	LastElimination *EliminationEvent      `json:"lastElimination"`
	GameOver        *GameOverEvent         `json:"gameOver"`
	Log             []*playable.LogMessage `json:"log"`
}

func (g *Game) getPlayerState(p *Participant) *PlayerState {
	canExchange := g.phase == PhaseExchange && !p.exchanged

	exchangeable := []int{}
	if canExchange {
		for i := range p.hand {
			exchangeable = append(exchangeable, i)
		}
	}

	return &PlayerState{
		Phase:           g.phase,
		Street:          g.street,
		Round:           g.round,
		Bullets:         g.options.Bullets,
		Private:         g.options.Private,
		Board:           g.board.Clone(),
		Participant:     p.participantJSON(true),
		Opponent:        g.opponent(p).participantJSON(false),
		Exchangeable:    exchangeable,
		CanExchange:     canExchange,
		BothReady:       g.bothReady(),
		LastShowdown:    g.lastShowdown,
		LastElimination: g.lastElimination,
		GameOver:        g.gameOver,
		Log:             g.Log(),
	}
}
