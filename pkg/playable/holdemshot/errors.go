package holdemshot

import "errors"

// ErrInvalidExchange is returned for an index outside {0,1}, a duplicate index,
// more than two indices, or a second submission in the same window
var ErrInvalidExchange = errors.New("invalid exchange")

// ErrIllegalTransition is returned when an action arrives in a phase that does not accept it
var ErrIllegalTransition = errors.New("action not allowed in the current phase")

// ErrInvalidBullets is returned when the configured bullets are outside 1..3
var ErrInvalidBullets = errors.New("bullets must be between 1 and 3")

// ErrPlayerCount is returned when a game is not created with exactly two players
var ErrPlayerCount = errors.New("game requires exactly two players")

// ErrUnknownPlayer is returned when the player is not seated in the game
var ErrUnknownPlayer = errors.New("player is not in this game")

// ErrAlreadyStarted is returned if Start() is called twice
var ErrAlreadyStarted = errors.New("game already started")
