package room

import (
	"holdemshot-server/pkg/bot"
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultName is the display name for players who did not pick one
const DefaultName = "Guest"

// maxNameLength is the maximum number of characters in a display name
const maxNameLength = 12

var invalidNameCharsRx = regexp.MustCompile(`[^\p{L}\p{N} ]+`)

// SanitizeName trims a display name to letters, numbers and spaces
func SanitizeName(name string) string {
	name = strings.TrimSpace(invalidNameCharsRx.ReplaceAllString(name, ""))
	if utf8.RuneCountInString(name) > maxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:maxNameLength]))
	}

	if name == "" {
		return DefaultName
	}

	return name
}

// Controller is how a seat is driven, either Human or Bot
type Controller interface {
	isController()
}

// Human is a seat driven by a connected client
type Human struct {
	Client *Client
}

// Bot is a seat driven by a built-in strategy
type Bot struct {
	Strategy bot.Strategy
}

func (Human) isController() {}
func (Bot) isController() {}

// Player is someone sitting in a room
type Player struct {
	ID         string
	Name       string
	Controller Controller
}

// GetPlayerID returns the player's id
func (p *Player) GetPlayerID() string {
	return p.ID
}

// GetDisplayName returns the display name
func (p *Player) GetDisplayName() string {
	return p.Name
}

// IsBot returns true if a strategy drives the seat
func (p *Player) IsBot() bool {
	_, ok := p.Controller.(Bot)
	return ok
}

// Available returns true if the player can be seated in a new room
// Bots are always available
func (p *Player) Available() bool {
	if c := p.client(); c != nil {
		return c.Available()
	}

	return true
}

// client returns the connected client, or nil for a bot
func (p *Player) client() *Client {
	if human, ok := p.Controller.(Human); ok {
		return human.Client
	}

	return nil
}

// send delivers a message to the seat
// Messages to bots are dropped
func (p *Player) send(msg interface{}) {
	switch c := p.Controller.(type) {
	case Human:
		if c.Client != nil && !c.Client.Send(msg) {
			c.Client.logger().Warn("send buffer full, dropping message")
		}
	case Bot:
	}
}
