package playable

import (
	"fmt"
	"holdemshot-server/pkg/bot"
	"holdemshot-server/pkg/deck"
	"math"
	"time"

	"github.com/google/uuid"
)

// Playable is a game that can be played
type Playable interface {
	// Action performs with a message
	// If playerResponse is not null, that's the response sent directly to the client
	// If updateState is true, it will trigger a state update for all connected clients
	Action(playerID string, message *PayloadIn) (playerResponse *Response, updateState bool, err error)

	// GetPlayerState returns the current state of the game for the player
	GetPlayerState(playerID string) (*Response, error)

	// GetEndOfGameDetails returns the details after a game is over
	// If the game is still in progress, nil will be returned and the second param will be false
	GetEndOfGameDetails() (gameOverDetails *GameOverDetails, isGameOver bool)

	// Forfeit ends the game in favor of everyone but the player
	Forfeit(playerID string) error

	// Events drains the result events produced since the last call
	// Every event is sent to all seats
	Events() []*Response

	// Name returns the name of the game
	Name() string
}

// Autopilot is implemented by games that let a built-in strategy act for a seat
type Autopilot interface {
	// PendingDecision returns what the seat can see when it is expected to act
	// The second return is false when the seat has nothing to do
	PendingDecision(playerID string) (bot.View, bool)
}

// LogMessage is the format a game should send log messages in
// If PlayerIDs is empty, assume it's a general statement, otherwise the message will be sent like "{player} did X, Y, Z"
type LogMessage struct {
	UUID      string      `json:"uuid"`
	PlayerIDs []string    `json:"playerIds"`
	Cards     []deck.Card `json:"cards"`
	Message   string      `json:"message"`
	Time      time.Time   `json:"time"`
}

// Response is a container to determine who gets the specified message
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data"`
	Context string      `json:"context"`
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from the JS client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails provides details on how the game ended
type GameOverDetails struct {
	WinnerID string      `json:"winnerId"`
	Winner   string      `json:"winner"`
	LoserID  string      `json:"loserId"`
	Loser    string      `json:"loser"`
	Reason   string      `json:"reason"`
	Rounds   int         `json:"rounds"`
	Log      interface{} `json:"log"`
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// toInt converts a JSON number that holds a whole value
func toInt(val float64) (int, bool) {
	if val != math.Trunc(val) || math.IsInf(val, 0) {
		return 0, false
	}

	return int(val), true
}

// GetInt returns an integer value for the given key
// Numbers with a fractional part are rejected
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return toInt(val)
	case int:
		return val, true
	}

	return 0, false
}

// GetIntSlice returns a slice of integers
// The whole slice is rejected if any number has a fractional part
func (a AdditionalData) GetIntSlice(key string) ([]int, bool) {
	switch slice := a[key].(type) {
	case []int:
		ints := make([]int, len(slice))
		copy(ints, slice)
		return ints, true
	case []float64:
		ints := make([]int, len(slice))
		for i, val := range slice {
			intVal, ok := toInt(val)
			if !ok {
				return nil, false
			}

			ints[i] = intVal
		}
		return ints, true
	case []interface{}:
		ints := make([]int, len(slice))
		for i, val := range slice {
			floatVal, ok := val.(float64)
			if !ok {
				return nil, false
			}

			intVal, ok := toInt(floatVal)
			if !ok {
				return nil, false
			}

			ints[i] = intVal
		}
		return ints, true
	}

	return nil, false
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID string, format string, a ...interface{}) *LogMessage {
	var playerIDs []string
	if playerID != "" {
		playerIDs = []string{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}
