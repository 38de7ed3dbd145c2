package room

import (
	"holdemshot-server/pkg/playable"
)

type welcomeData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type roomJoinedData struct {
	Code    string `json:"code"`
	Seat    int    `json:"seat"`
	Bullets int    `json:"bullets"`
	Private bool   `json:"private"`
}

type matchFoundData struct {
	Code     string `json:"code"`
	Opponent string `json:"opponent"`
	Bot      bool   `json:"bot"`
}

type errorData struct {
	Reason string `json:"reason"`
}

// NewWelcomeResponse returns the identity assigned to a new connection
func NewWelcomeResponse(c *Client) *playable.Response {
	return &playable.Response{
		Key:  "welcome",
		Data: welcomeData{ID: c.ID(), Name: c.Name()},
	}
}

// NewErrorResponse returns a rejection sent only to the requester
func NewErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Data:    errorData{Reason: err.Error()},
		Context: ctx,
	}
}

func newRoomJoinedResponse(d *Dealer, seat int) *playable.Response {
	return &playable.Response{
		Key:   "roomJoined",
		Value: d.code,
		Data: roomJoinedData{
			Code:    d.code,
			Seat:    seat,
			Bullets: d.options.Bullets,
			Private: d.options.Private,
		},
	}
}

func newMatchFoundResponse(code string, opponent *Player) *playable.Response {
	return &playable.Response{
		Key:   "matchFound",
		Value: code,
		Data: matchFoundData{
			Code:     code,
			Opponent: opponent.Name,
			Bot:      opponent.IsBot(),
		},
	}
}
