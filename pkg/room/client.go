package room

import (
	"fmt"
	"holdemshot-server/pkg/playable"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	id string

	lock   sync.RWMutex
	name   string
	dealer *Dealer
	closed bool
}

// NewClient returns a new client object with an anonymous identity
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		send:  make(chan interface{}, 256),
		Close: make(chan string),
		Conn:  conn,
		id:    uuid.New().String(),
		name:  DefaultName,
	}
}

// ID returns the client's player id
func (c *Client) ID() string {
	return c.id
}

// Name returns the client's display name
func (c *Client) Name() string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.name
}

// SetName sanitizes and sets the display name
func (c *Client) SetName(name string) {
	c.lock.Lock()
	c.name = SanitizeName(name)
	c.lock.Unlock()
}

// Player returns a human player backed by this client
func (c *Client) Player() *Player {
	return &Player{
		ID:         c.id,
		Name:       c.Name(),
		Controller: Human{Client: c},
	}
}

// Dealer returns the dealer of the room the client is seated in, or nil
func (c *Client) Dealer() *Dealer {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.dealer
}

// claim reserves the client's seat for d
// A client belongs to at most one room, and a disconnected client to none
func (c *Client) claim(d *Dealer) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.closed {
		return ErrPeerDisconnected
	}

	if c.dealer != nil && c.dealer != d {
		return ErrAlreadySeated
	}

	c.dealer = d
	return nil
}

// Disconnect marks the client as gone and returns the room it was seated in, if any
// After this call the client can no longer take a seat
func (c *Client) Disconnect() *Dealer {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.closed = true
	return c.dealer
}

// Available returns true if the client is connected and not seated
func (c *Client) Available() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return !c.closed && c.dealer == nil
}

// clearDealer unsets the dealer only if it is still d
func (c *Client) clearDealer(d *Dealer) {
	c.lock.Lock()
	if c.dealer == d {
		c.dealer = nil
	}
	c.lock.Unlock()
}

// Send send a message to the web client
// Slow clients are not waited on, false is returned if the buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.Name(), c.id)
}

func (c *Client) logger() logrus.FieldLogger {
	return logrus.WithField("player", c.id)
}

// ReceivedMessage is called when the server receives a game message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	dealer := c.Dealer()
	if dealer == nil {
		c.logger().WithField("action", msg.Action).Debug("received message, but not seated")
		return
	}

	dealer.ReceivedMessage(c, msg)
}
