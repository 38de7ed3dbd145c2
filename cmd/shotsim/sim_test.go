package main

import (
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/bot"
	"holdemshot-server/pkg/playable/holdemshot"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestPlayGame(t *testing.T) {
	a := assert.New(t)

	for seed := int64(1); seed <= 10; seed++ {
		events, over, err := playGame(quietLogger(), rng.Seeded(seed), 2, [2]bot.Strategy{bot.NewHeuristic(), standPat{}})
		require.NoError(t, err)
		a.Equal(holdemshot.ReasonEliminated, over.Reason)
		a.GreaterOrEqual(over.Rounds, 1)

		fired := 0
		for _, event := range events {
			if e, ok := event.Data.(*holdemshot.EliminationEvent); ok && e.Fired {
				fired++
				a.Equal(1-over.WinnerSeat, e.LoserSeat)
			}
		}

		a.Equal(1, fired, "exactly one pull fires per game")
	}
}

func TestSimulate(t *testing.T) {
	a := assert.New(t)

	calls := 0
	tally, err := simulate(quietLogger(), rng.Seeded(42), 40, 3, bot.NewHeuristic(), standPat{}, func() {
		calls++
	})

	require.NoError(t, err)
	a.Equal(40, calls)
	a.Equal(40, tally.Games)
	a.Equal(40, tally.Wins[0]+tally.Wins[1])
	a.GreaterOrEqual(tally.AverageRounds(), 1.0)

	fired := 0
	for b, n := range tally.Fired {
		a.GreaterOrEqual(b, 3)
		a.LessOrEqual(n, tally.Pulls[b])
		fired += n
	}

	a.Equal(40, fired)
}

func TestTally_empty(t *testing.T) {
	tally := newTally()
	assert.Equal(t, 0.0, tally.FireRate(1))
	assert.Equal(t, 0.0, tally.AverageRounds())
	assert.Equal(t, "0.0%", percent(0, 0))
	assert.Equal(t, "25.0%", percent(1, 4))
}
