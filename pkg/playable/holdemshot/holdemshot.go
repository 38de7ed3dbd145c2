// Package holdemshot is a heads-up game of Texas Hold'em where the loser of
// each showdown faces the roulette until one player is eliminated
package holdemshot

import (
	"fmt"
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/deck"
	"holdemshot-server/pkg/playable"
	"holdemshot-server/pkg/poker"
	"holdemshot-server/pkg/roulette"

	"github.com/sirupsen/logrus"
)

// Game is a game of Hold'em & Shot
type Game struct {
	logger       logrus.FieldLogger
	rng          rng.Generator
	options      Options
	participants [2]*Participant
	idToSeat     map[string]int

	deck   *deck.Deck
	board  deck.Hand
	phase  Phase
	street Phase
	round  int

	lastShowdown    *ShowdownEvent
	lastElimination *EliminationEvent
	gameOver        *GameOverEvent

	events []*playable.Response
	log    []*playable.LogMessage

	started bool
}

var _ playable.Playable = (*Game)(nil)
var _ playable.Autopilot = (*Game)(nil)

// NewGame returns a new game for exactly two players
// The game does nothing until Start() is called
func NewGame(logger logrus.FieldLogger, players []playable.Player, opts Options, g rng.Generator) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if len(players) != 2 {
		return nil, ErrPlayerCount
	}

	if players[0].GetPlayerID() == players[1].GetPlayerID() {
		return nil, fmt.Errorf("player %s cannot take both seats", players[0].GetPlayerID())
	}

	game := &Game{
		logger:   logger,
		rng:      g,
		options:  opts,
		idToSeat: make(map[string]int, 2),
		board:    make(deck.Hand, 0, 5),
		phase:    PhaseDeal,
	}

	for seat, player := range players {
		game.participants[seat] = newParticipant(player.GetPlayerID(), player.GetDisplayName(), seat)
		game.idToSeat[player.GetPlayerID()] = seat
	}

	return game, nil
}

// Start runs the first deal
func (g *Game) Start() error {
	if g.started {
		return ErrAlreadyStarted
	}

	g.started = true
	return g.deal()
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Round returns the current round, starting at 1
func (g *Game) Round() int {
	return g.round
}

// Board returns a copy of the community cards
func (g *Game) Board() deck.Hand {
	return g.board.Clone()
}

// IsGameOver returns true once a player has been eliminated, resigned or disconnected
func (g *Game) IsGameOver() bool {
	return g.phase == PhaseGameOver
}

func (g *Game) participantByID(playerID string) (*Participant, error) {
	seat, ok := g.idToSeat[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	return g.participants[seat], nil
}

func (g *Game) opponent(p *Participant) *Participant {
	return g.participants[1-p.seat]
}

// deal starts a new round with a freshly shuffled deck and runs straight into the flop
func (g *Game) deal() error {
	g.round++
	g.phase = PhaseDeal
	g.street = PhaseDeal
	g.board = make(deck.Hand, 0, 5)

	g.deck = deck.New(g.rng)
	g.deck.Shuffle()
	shuffled := g.deck.HashCode()

	for _, p := range g.participants {
		p.newRound()
	}

	for i := 0; i < 2; i++ {
		for _, p := range g.participants {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.hand.AddCard(card)
		}
	}

	for _, p := range g.participants {
		p.heldJoker = p.hand.HasJoker()
		if p.heldJoker {
			g.logger.WithField("player", p.PlayerID).Debug("dealt a joker")
		}
	}

	g.logger.WithFields(logrus.Fields{
		"round": g.round,
		"deck":  shuffled,
	}).Debug("dealt")
	g.addLog("", "round %d dealt", g.round)

	return g.revealStreet(PhaseFlop)
}

// revealStreet turns over the board cards for street and opens its exchange window
// Jokers never land on the board
func (g *Game) revealStreet(street Phase) error {
	g.phase = street
	g.street = street

	for len(g.board) < boardSize(street) {
		card, err := g.deck.DrawNonJoker()
		if err != nil {
			return err
		}

		g.board.AddCard(card)
	}

	g.addLog("", "%s: %s", street, deck.CardsToString(g.board))

	for _, p := range g.participants {
		p.openWindow()
	}

	g.phase = PhaseExchange
	return nil
}

// advance moves past the exchange window if both seats are ready
// One ready seat leaves the phase unchanged
func (g *Game) advance() error {
	if !g.bothReady() {
		return nil
	}

	next := nextStreet(g.street)
	if next == PhaseShowdown {
		return g.showdown()
	}

	return g.revealStreet(next)
}

func (g *Game) bothReady() bool {
	return g.participants[0].ready && g.participants[1].ready
}

// showdown evaluates both hands and resolves the round
func (g *Game) showdown() error {
	g.phase = PhaseShowdown

	scores := make([]poker.Score, 2)
	event := &ShowdownEvent{
		Round:  g.round,
		Board:  g.board.Clone(),
		Hands:  make([]*ShowdownHand, 2),
		Winner: -1,
	}

	for i, p := range g.participants {
		cards := append(p.hand.Clone(), g.board...)
		score, err := poker.Evaluate(cards...)
		if err != nil {
			return err
		}

		scores[i] = score
		event.Hands[i] = &ShowdownHand{
			PlayerID:    p.PlayerID,
			Name:        p.Name,
			Seat:        p.seat,
			Hand:        p.hand.Clone(),
			Best:        score.Cards,
			Description: score.Describe(),
			Score:       score.Tuple(),
		}
	}

	switch scores[0].Compare(scores[1]) {
	case 1:
		event.Winner = 0
	case -1:
		event.Winner = 1
	}

	g.lastShowdown = event
	g.emit("showdown", event)

	if event.Winner < 0 {
		g.addLog("", "draw with %s", scores[0].Describe())
		return g.deal()
	}

	winner := g.participants[event.Winner]
	loser := g.opponent(winner)
	g.addLog(winner.PlayerID, "{} wins with %s over %s", scores[winner.seat].Describe(), scores[loser.seat].Describe())

	return g.jokerCheck(winner, loser)
}

// jokerCheck applies the held-joker rules before the roulette
func (g *Game) jokerCheck(winner, loser *Participant) error {
	g.phase = PhaseJokerCheck

	event := &EliminationEvent{
		Round:       g.round,
		LoserSeat:   loser.seat,
		Loser:       loser.Name,
		BaseBullets: g.options.Bullets,
		Bullets:     roulette.Bullets(g.options.Bullets, winner.heldJoker),
		Position:    -1,
		Loaded:      []int{},
	}

	if loser.heldJoker {
		event.Exempt = true
		g.lastElimination = event
		g.emit("elimination", event)
		g.addLog(loser.PlayerID, "{} held the joker and skips the roulette")
		return g.deal()
	}

	return g.eliminate(winner, loser, event)
}

func (g *Game) eliminate(winner, loser *Participant, event *EliminationEvent) error {
	g.phase = PhaseElimination

	outcome, err := roulette.Resolve(g.rng, event.Bullets)
	if err != nil {
		return err
	}

	event.Fired = outcome.Fired
	event.Position = outcome.Position
	event.Loaded = outcome.Loaded

	g.lastElimination = event
	g.emit("elimination", event)

	g.logger.WithFields(logrus.Fields{
		"loser":   loser.PlayerID,
		"bullets": event.Bullets,
		"fired":   event.Fired,
	}).Debug("roulette")

	if !outcome.Fired {
		g.addLog(loser.PlayerID, "{} survives the roulette with %d bullet(s)", event.Bullets)
		return g.deal()
	}

	loser.eliminated = true
	g.addLog(loser.PlayerID, "{} is eliminated with %d bullet(s)", event.Bullets)
	g.endGame(winner, loser, ReasonEliminated)
	return nil
}

// endGame moves the game into its terminal phase
func (g *Game) endGame(winner, loser *Participant, reason string) {
	g.phase = PhaseGameOver
	g.gameOver = &GameOverEvent{
		WinnerID:   winner.PlayerID,
		Winner:     winner.Name,
		WinnerSeat: winner.seat,
		LoserID:    loser.PlayerID,
		Loser:      loser.Name,
		LoserSeat:  loser.seat,
		Reason:     reason,
		Rounds:     g.round,
	}

	g.emit("gameOver", g.gameOver)
	g.logger.WithFields(logrus.Fields{
		"winner": winner.PlayerID,
		"loser":  loser.PlayerID,
		"reason": reason,
	}).Info("game over")
}

// Exchange replaces the hole cards at indices and marks the seat ready
// An empty indices is a ready without an exchange
// The first submission in a window is final
func (g *Game) Exchange(playerID string, indices []int) error {
	p, err := g.participantByID(playerID)
	if err != nil {
		return err
	}

	if g.phase != PhaseExchange {
		return ErrIllegalTransition
	}

	if p.exchanged {
		return ErrInvalidExchange
	}

	if err := validateIndices(indices); err != nil {
		return err
	}

	for _, idx := range indices {
		// replacements come straight off the deck, jokers included
		card, err := g.deck.Draw()
		if err != nil {
			return err
		}

		p.hand[idx] = card
	}

	p.exchanged = true
	p.replaced = len(indices)
	p.ready = true

	if len(indices) > 0 {
		g.addLog(p.PlayerID, "{} exchanged %d card(s)", len(indices))
	} else {
		g.addLog(p.PlayerID, "{} is ready")
	}

	return g.advance()
}

// Ready marks the seat ready without exchanging any cards
func (g *Game) Ready(playerID string) error {
	return g.Exchange(playerID, nil)
}

// Resign ends the game in favor of the opponent
func (g *Game) Resign(playerID string) error {
	return g.concede(playerID, ReasonResigned)
}

// Forfeit ends the game because the player disconnected
func (g *Game) Forfeit(playerID string) error {
	return g.concede(playerID, ReasonDisconnected)
}

func (g *Game) concede(playerID, reason string) error {
	p, err := g.participantByID(playerID)
	if err != nil {
		return err
	}

	if g.phase == PhaseGameOver {
		return ErrIllegalTransition
	}

	g.addLog(p.PlayerID, "{} %s", reason)
	g.endGame(g.opponent(p), p, reason)
	return nil
}

// CanExchange returns true if the seat still has to submit in the open window
func (g *Game) CanExchange(playerID string) bool {
	p, err := g.participantByID(playerID)
	if err != nil {
		return false
	}

	return g.phase == PhaseExchange && !p.exchanged
}

func validateIndices(indices []int) error {
	if len(indices) > 2 {
		return ErrInvalidExchange
	}

	seen := [2]bool{}
	for _, idx := range indices {
		if idx < 0 || idx > 1 || seen[idx] {
			return ErrInvalidExchange
		}

		seen[idx] = true
	}

	return nil
}
