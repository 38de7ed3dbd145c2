// Package roulette resolves the elimination step for the loser of a round
package roulette

import (
	"errors"
	"holdemshot-server/internal/rng"
	"sort"
)

// ChamberSize is the number of chambers in the cylinder
const ChamberSize = 6

// ErrInvalidBullets is returned when the bullet count is outside 1..ChamberSize
var ErrInvalidBullets = errors.New("bullets must be between 1 and 6")

// Outcome is the result of a single spin
type Outcome struct {
	Bullets  int   `json:"bullets"`
	Position int   `json:"position"`
	Loaded   []int `json:"loaded"`
	Fired    bool  `json:"fired"`
}

// Bullets returns the bullet count for an elimination
// A winner who held the joker at deal adds one bullet, never more than the chamber holds
func Bullets(base int, winnerHeldJoker bool) int {
	if winnerHeldJoker {
		base++
	}

	if base > ChamberSize {
		return ChamberSize
	}

	return base
}

// Resolve spins the cylinder
// The landing position and the loaded chambers are chosen independently, so
// the chance of firing is exactly bullets/ChamberSize
func Resolve(g rng.Generator, bullets int) (Outcome, error) {
	if bullets < 1 || bullets > ChamberSize {
		return Outcome{}, ErrInvalidBullets
	}

	position := g.Intn(ChamberSize)

	chambers := make([]int, ChamberSize)
	for i := range chambers {
		chambers[i] = i
	}

	// partial Fisher-Yates: the first `bullets` slots are a uniform sample
	for i := 0; i < bullets; i++ {
		j := i + g.Intn(ChamberSize-i)
		chambers[i], chambers[j] = chambers[j], chambers[i]
	}

	loaded := chambers[:bullets:bullets]
	sort.Ints(loaded)

	fired := false
	for _, chamber := range loaded {
		if chamber == position {
			fired = true
			break
		}
	}

	return Outcome{
		Bullets:  bullets,
		Position: position,
		Loaded:   loaded,
		Fired:    fired,
	}, nil
}
