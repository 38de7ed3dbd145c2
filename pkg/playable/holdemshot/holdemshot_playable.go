package holdemshot

import (
	"fmt"
	"holdemshot-server/pkg/bot"
	"holdemshot-server/pkg/playable"
)

// inbound actions handled by the game
const (
	ActionExchange = "exchange"
	ActionReady    = "ready"
	ActionResign   = "resign"
)

// Action performs a player action
func (g *Game) Action(playerID string, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	switch message.Action {
	case ActionExchange:
		indices, ok := message.AdditionalData.GetIntSlice("indices")
		if !ok && message.AdditionalData["indices"] != nil {
			return nil, false, ErrInvalidExchange
		}

		err = g.Exchange(playerID, indices)
	case ActionReady:
		err = g.Ready(playerID)
	case ActionResign:
		err = g.Resign(playerID)
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}

	if err != nil {
		return nil, false, err
	}

	return playable.OK(message.Context), true, nil
}

// GetPlayerState returns the current state for the player
func (g *Game) GetPlayerState(playerID string) (*playable.Response, error) {
	p, err := g.participantByID(playerID)
	if err != nil {
		return nil, err
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Key(),
		Data:  g.getPlayerState(p),
	}, nil
}

// GetEndOfGameDetails returns details after the game finishes
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if g.gameOver == nil {
		return nil, false
	}

	return &playable.GameOverDetails{
		WinnerID: g.gameOver.WinnerID,
		Winner:   g.gameOver.Winner,
		LoserID:  g.gameOver.LoserID,
		Loser:    g.gameOver.Loser,
		Reason:   g.gameOver.Reason,
		Rounds:   g.gameOver.Rounds,
		Log:      g.Log(),
	}, true
}

// PendingDecision returns the view a bot decides its exchange on
func (g *Game) PendingDecision(playerID string) (bot.View, bool) {
	if !g.CanExchange(playerID) {
		return bot.View{}, false
	}

	p, _ := g.participantByID(playerID)
	return bot.View{
		Street:  g.street.String(),
		Hand:    p.hand.Clone(),
		Board:   g.board.Clone(),
		Bullets: g.options.Bullets,
	}, true
}

// Name returns the name
func (g *Game) Name() string {
	if g.options.Bullets == 1 {
		return "Hold'em & Shot (1 bullet)"
	}

	return fmt.Sprintf("Hold'em & Shot (%d bullets)", g.options.Bullets)
}

// Key returns the key
func (g *Game) Key() string {
	return "holdem-shot"
}
