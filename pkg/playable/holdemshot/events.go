package holdemshot

import (
	"holdemshot-server/pkg/deck"
	"holdemshot-server/pkg/playable"
)

// reasons a game can end
const (
	ReasonEliminated   = "eliminated"
	ReasonResigned     = "resigned"
	ReasonDisconnected = "disconnected"
)

// ShowdownHand is one seat's revealed hand at showdown
type ShowdownHand struct {
	PlayerID    string    `json:"playerId"`
	Name        string    `json:"name"`
	Seat        int       `json:"seat"`
	Hand        deck.Hand `json:"hand"`
	Best        deck.Hand `json:"best"`
	Description string    `json:"description"`
	Score       []int     `json:"score"`
}

// ShowdownEvent reveals both hands
// Winner is the winning seat, or -1 on a draw
type ShowdownEvent struct {
	Round  int             `json:"round"`
	Board  deck.Hand       `json:"board"`
	Hands  []*ShowdownHand `json:"hands"`
	Winner int             `json:"winner"`
}

// EliminationEvent is the result of the joker check and the roulette
// Position is -1 and Loaded is empty when the loser was exempt
type EliminationEvent struct {
	Round       int    `json:"round"`
	LoserSeat   int    `json:"loserSeat"`
	Loser       string `json:"loser"`
	BaseBullets int    `json:"baseBullets"`
	Bullets     int    `json:"bullets"`
	Exempt      bool   `json:"exempt"`
	Fired       bool   `json:"fired"`
	Position    int    `json:"position"`
	Loaded      []int  `json:"loaded"`
}

// GameOverEvent announces the end of the game
type GameOverEvent struct {
	WinnerID   string `json:"winnerId"`
	Winner     string `json:"winner"`
	WinnerSeat int    `json:"winnerSeat"`
	LoserID    string `json:"loserId"`
	Loser      string `json:"loser"`
	LoserSeat  int    `json:"loserSeat"`
	Reason     string `json:"reason"`
	Rounds     int    `json:"rounds"`
}

func (g *Game) emit(key string, data interface{}) {
	g.events = append(g.events, &playable.Response{
		Key:   key,
		Value: g.Key(),
		Data:  data,
	})
}

// Events drains the result events produced since the last call
func (g *Game) Events() []*playable.Response {
	events := g.events
	g.events = nil
	return events
}
