package holdemshot

import (
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/deck"
	"holdemshot-server/pkg/playable"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testPlayer struct {
	id   string
	name string
}

func (t *testPlayer) GetPlayerID() string {
	return t.id
}

func (t *testPlayer) GetDisplayName() string {
	return t.name
}

func setupPlayers() []playable.Player {
	return []playable.Player{
		&testPlayer{id: "p1", name: "Ada"},
		&testPlayer{id: "p2", name: "Bo"},
	}
}

// scriptedGenerator returns the scripted values first and then falls back to a seeded source
type scriptedGenerator struct {
	values   []int
	fallback rng.Generator
}

func (s *scriptedGenerator) Intn(n int) int {
	if len(s.values) > 0 {
		v := s.values[0]
		s.values = s.values[1:]
		return v % n
	}

	return s.fallback.Intn(n)
}

func (s *scriptedGenerator) script(values ...int) {
	s.values = append(s.values, values...)
}

func setupNewGame(t *testing.T, bullets int) (*Game, *scriptedGenerator) {
	t.Helper()

	g := &scriptedGenerator{fallback: rng.Seeded(1)}
	game, err := NewGame(logrus.StandardLogger(), setupPlayers(), Options{Bullets: bullets}, g)
	require.NoError(t, err)
	require.NoError(t, game.Start())

	return game, g
}

// shuffleScript returns rng values that leave a fresh deck in build order except for the given swaps
// swaps maps a shuffle position j to the index it is swapped with
// Cards are drawn from the end, so index 53 is dealt first
func shuffleScript(swaps map[int]int) []int {
	values := make([]int, 0, deck.Size-1)
	for j := deck.Size - 1; j > 0; j-- {
		i, ok := swaps[j]
		if !ok {
			i = j
		}

		values = append(values, i)
	}

	return values
}

func setupScriptedGame(t *testing.T, bullets int, values []int) (*Game, *scriptedGenerator) {
	t.Helper()

	g := &scriptedGenerator{values: values, fallback: rng.Seeded(1)}
	game, err := NewGame(logrus.StandardLogger(), setupPlayers(), Options{Bullets: bullets}, g)
	require.NoError(t, err)
	require.NoError(t, game.Start())

	return game, g
}

// reachRiver readies both seats on the turn without touching any hands
func reachRiver(t *testing.T, game *Game) {
	t.Helper()

	require.Equal(t, PhaseTurn, game.street)
	bothReady(t, game)
	require.Equal(t, PhaseRiver, game.street)
	require.Equal(t, PhaseExchange, game.phase)
}

// setupRiver puts the game in the river exchange window with the given cards
func setupRiver(game *Game, hand1, hand2, board string) {
	game.participants[0].hand = deck.CardsFromString(hand1)
	game.participants[1].hand = deck.CardsFromString(hand2)
	game.board = deck.CardsFromString(board)
	game.street = PhaseRiver
	game.phase = PhaseExchange

	for _, p := range game.participants {
		p.heldJoker = p.hand.HasJoker()
		p.openWindow()
	}

	game.Events()
}

func bothReady(t *testing.T, game *Game) {
	t.Helper()

	require.NoError(t, game.Ready("p1"))
	require.NoError(t, game.Ready("p2"))
}

func eventsByKey(events []*playable.Response) map[string]*playable.Response {
	m := make(map[string]*playable.Response, len(events))
	for _, e := range events {
		m[e.Key] = e
	}

	return m
}
