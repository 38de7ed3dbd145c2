package main

import (
	"errors"
	"fmt"
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/bot"
	"holdemshot-server/pkg/playable"
	"holdemshot-server/pkg/playable/holdemshot"

	"github.com/sirupsen/logrus"
)

// maxDecisions stops a runaway game
const maxDecisions = 10000

var errStuck = errors.New("game did not finish")

type simPlayer struct {
	id   string
	name string
}

func (s simPlayer) GetPlayerID() string {
	return s.id
}

func (s simPlayer) GetDisplayName() string {
	return s.name
}

// standPat never exchanges
type standPat struct{}

func (standPat) ChooseExchange(bot.View) []int {
	return []int{}
}

func (standPat) Name() string {
	return "stand-pat"
}

// tally accumulates results over many games
type tally struct {
	Games       int
	Wins        [2]int
	Rounds      int
	Showdowns   int
	Draws       int
	Exemptions  int
	Pulls       map[int]int
	Fired       map[int]int
	LongestGame int
}

func newTally() *tally {
	return &tally{
		Pulls: make(map[int]int),
		Fired: make(map[int]int),
	}
}

// add folds the events of one game into the tally
func (t *tally) add(events []*playable.Response, over *holdemshot.GameOverEvent) {
	t.Games++
	t.Wins[over.WinnerSeat]++
	t.Rounds += over.Rounds
	if over.Rounds > t.LongestGame {
		t.LongestGame = over.Rounds
	}

	for _, event := range events {
		switch data := event.Data.(type) {
		case *holdemshot.ShowdownEvent:
			t.Showdowns++
			if data.Winner < 0 {
				t.Draws++
			}
		case *holdemshot.EliminationEvent:
			if data.Exempt {
				t.Exemptions++
				continue
			}

			t.Pulls[data.Bullets]++
			if data.Fired {
				t.Fired[data.Bullets]++
			}
		}
	}
}

// FireRate is the observed share of pulls that fired for a bullet count
func (t *tally) FireRate(bullets int) float64 {
	if t.Pulls[bullets] == 0 {
		return 0
	}

	return float64(t.Fired[bullets]) / float64(t.Pulls[bullets])
}

// AverageRounds is the mean length of a game
func (t *tally) AverageRounds() float64 {
	if t.Games == 0 {
		return 0
	}

	return float64(t.Rounds) / float64(t.Games)
}

// playGame runs a single game between two strategies until one seat is out
func playGame(logger logrus.FieldLogger, g rng.Generator, bullets int, strategies [2]bot.Strategy) ([]*playable.Response, *holdemshot.GameOverEvent, error) {
	players := []playable.Player{
		simPlayer{id: "seat-0", name: strategies[0].Name()},
		simPlayer{id: "seat-1", name: strategies[1].Name()},
	}

	game, err := holdemshot.NewGame(logger, players, holdemshot.Options{Bullets: bullets}, g)
	if err != nil {
		return nil, nil, err
	}

	if err := game.Start(); err != nil {
		return nil, nil, err
	}

	var events []*playable.Response
	for decisions := 0; !game.IsGameOver(); decisions++ {
		if decisions > maxDecisions {
			return nil, nil, errStuck
		}

		for seat, p := range players {
			view, ok := game.PendingDecision(p.GetPlayerID())
			if !ok {
				continue
			}

			_, _, err := game.Action(p.GetPlayerID(), &playable.PayloadIn{
				Action:         holdemshot.ActionExchange,
				AdditionalData: playable.AdditionalData{"indices": strategies[seat].ChooseExchange(view)},
			})

			if err != nil {
				return nil, nil, fmt.Errorf("seat %d: %w", seat, err)
			}
		}

		events = append(events, game.Events()...)
	}

	events = append(events, game.Events()...)
	for _, event := range events {
		if over, ok := event.Data.(*holdemshot.GameOverEvent); ok {
			return events, over, nil
		}
	}

	return nil, nil, errStuck
}

// simulate plays n games, alternating which strategy sits in seat 0
func simulate(logger logrus.FieldLogger, g rng.Generator, n, bullets int, a, b bot.Strategy, progress func()) (*tally, error) {
	t := newTally()
	for i := 0; i < n; i++ {
		strategies := [2]bot.Strategy{a, b}
		if i%2 == 1 {
			strategies = [2]bot.Strategy{b, a}
		}

		events, over, err := playGame(logger, g, bullets, strategies)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i, err)
		}

		// count wins by strategy rather than by seat
		if i%2 == 1 {
			over.WinnerSeat = 1 - over.WinnerSeat
		}

		t.add(events, over)
		if progress != nil {
			progress()
		}
	}

	return t, nil
}
