package room

import (
	"errors"
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/playable"
	"holdemshot-server/pkg/playable/holdemshot"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Dealer is the per-room actor
// Everything that touches the game runs inside its run loop
type Dealer struct {
	pitBoss *PitBoss
	logger  logrus.FieldLogger
	rng     rng.Generator
	code    string
	options holdemshot.Options
	created time.Time

	lock    sync.RWMutex
	players []*Player
	phase   string
	closed  bool

	// game and departed must only be accessed from the run loop
	game     playable.Playable
	departed map[string]bool

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, code string, options holdemshot.Options, g rng.Generator) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		logger:        pitBoss.logger.WithField("code", code),
		rng:           g,
		code:          code,
		options:       options,
		created:       time.Now(),
		players:       make([]*Player, 0, 2),
		phase:         "waiting",
		departed:      make(map[string]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Code returns the room code
func (d *Dealer) Code() string {
	return d.code
}

// Options returns the room options
func (d *Dealer) Options() holdemshot.Options {
	return d.options
}

// Players returns the seated players
func (d *Dealer) Players() []*Player {
	d.lock.RLock()
	defer d.lock.RUnlock()

	players := make([]*Player, len(d.players))
	copy(players, d.players)
	return players
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec queues fn on the run loop
// fn is dropped if the dealer has already shut down
func (d *Dealer) exec(fn func()) {
	select {
	case d.execInRunLoop <- fn:
	case <-d.close:
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// reserve claims the player's client for this room
func (d *Dealer) reserve(player *Player) error {
	if c := player.client(); c != nil {
		return c.claim(d)
	}

	return nil
}

// release undoes reserve
func (d *Dealer) release(player *Player) {
	if c := player.client(); c != nil {
		c.clearDealer(d)
	}
}

// addPlayer reserves the next seat for player
// The room starts once the second seat is taken
// A client that disconnected before it was seated still takes the seat and forfeits it
// This method must return quickly
func (d *Dealer) addPlayer(player *Player) (int, error) {
	d.lock.Lock()
	if d.closed {
		d.lock.Unlock()
		return 0, ErrRoomNotFound
	}

	if len(d.players) >= 2 {
		d.lock.Unlock()
		return 0, ErrRoomFull
	}

	for _, p := range d.players {
		if p.ID == player.ID {
			d.lock.Unlock()
			return 0, ErrAlreadySeated
		}
	}

	departed := false
	if err := d.reserve(player); err != nil {
		if !errors.Is(err, ErrPeerDisconnected) {
			d.lock.Unlock()
			return 0, err
		}

		departed = true
	}

	seat := len(d.players)
	d.players = append(d.players, player)
	full := len(d.players) == 2
	d.lock.Unlock()

	d.exec(func() {
		player.send(newRoomJoinedResponse(d, seat))
		if full {
			d.startGame()
		}

		if departed {
			d.playerDisconnected(player.ID)
		}
	})

	return seat, nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) startGame() {
	players := d.Players()
	seated := make([]playable.Player, len(players))
	for i, p := range players {
		seated[i] = p
	}

	game, err := holdemshot.NewGame(d.logger, seated, d.options, d.rng)
	if err != nil {
		d.logger.WithError(err).Error("could not create game")
		d.teardown()
		return
	}

	if err := game.Start(); err != nil {
		d.logger.WithError(err).Error("could not start game")
		d.teardown()
		return
	}

	d.game = game
	d.logger.WithField("game", game.Name()).Info("game started")

	players[0].send(newMatchFoundResponse(d.code, players[1]))
	players[1].send(newMatchFoundResponse(d.code, players[0]))

	for playerID := range d.departed {
		if err := game.Forfeit(playerID); err != nil && !errors.Is(err, holdemshot.ErrIllegalTransition) {
			d.logger.WithError(err).WithField("player", playerID).Error("could not forfeit")
		}
	}

	d.afterTransition()
}

// ReceivedMessage is called when a seated client sends a game message
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.exec(func() {
		log := d.logger.WithFields(logrus.Fields{
			"player": c.ID(),
			"action": msg.Action,
		})

		if d.game == nil {
			log.Debug("no game in progress, dropping message")
			return
		}

		res, updateState, err := d.game.Action(c.ID(), msg)
		if err != nil {
			log.WithError(err).Debug("rejected action")
			if errors.Is(err, holdemshot.ErrInvalidExchange) {
				c.Send(NewErrorResponse(msg.Context, err))
			}

			return
		}

		if res != nil {
			c.Send(res)
		}

		if updateState {
			d.afterTransition()
		}
	})
}

// PlayerDisconnected forfeits the game for the player and tears the room down
func (d *Dealer) PlayerDisconnected(playerID string) {
	d.exec(func() {
		d.playerDisconnected(playerID)
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) playerDisconnected(playerID string) {
	d.logger.WithError(ErrPeerDisconnected).WithField("player", playerID).Info("player disconnected")

	if d.game == nil {
		// matched rooms always fill, so the forfeit waits for the game to start
		if !d.options.Private || len(d.Players()) == 2 {
			d.departed[playerID] = true
			return
		}

		d.teardown()
		return
	}

	if _, isOver := d.game.GetEndOfGameDetails(); isOver {
		return
	}

	if err := d.game.Forfeit(playerID); err != nil {
		d.logger.WithError(err).Error("could not forfeit")
		d.teardown()
		return
	}

	d.afterTransition()
}

// afterTransition publishes engine events, lets bots act, pushes each seat's
// view and ends the room if the game is over
// NOTE: must only be called from the run loop
func (d *Dealer) afterTransition() {
	for {
		d.broadcast(d.game.Events())
		if !d.driveBots() {
			break
		}
	}

	d.sendGameData()

	if details, isOver := d.game.GetEndOfGameDetails(); isOver {
		d.pitBoss.record(d.code, details)
		d.teardown()
	}
}

// driveBots submits a decision for every bot seat that is expected to act
// It returns true if any bot acted
// NOTE: must only be called from the run loop
func (d *Dealer) driveBots() bool {
	pilot, ok := d.game.(playable.Autopilot)
	if !ok {
		return false
	}

	acted := false
	for _, p := range d.Players() {
		b, ok := p.Controller.(Bot)
		if !ok {
			continue
		}

		view, ok := pilot.PendingDecision(p.ID)
		if !ok {
			continue
		}

		indices := b.Strategy.ChooseExchange(view)
		_, _, err := d.game.Action(p.ID, &playable.PayloadIn{
			Action:         holdemshot.ActionExchange,
			AdditionalData: playable.AdditionalData{"indices": indices},
		})

		if err != nil {
			d.logger.WithError(err).WithField("strategy", b.Strategy.Name()).Error("bot action failed")
			continue
		}

		acted = true
	}

	return acted
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(events []*playable.Response) {
	for _, event := range events {
		for _, p := range d.Players() {
			p.send(event)
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if d.game == nil {
		return
	}

	if game, ok := d.game.(*holdemshot.Game); ok {
		d.setPhase(game.Phase().String())
	}

	for _, p := range d.Players() {
		if p.IsBot() {
			continue
		}

		data, err := d.game.GetPlayerState(p.ID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			continue
		}

		p.send(data)
	}
}

func (d *Dealer) setPhase(phase string) {
	d.lock.Lock()
	d.phase = phase
	d.lock.Unlock()
}

// teardown releases the seats and removes the room
// NOTE: must only be called from the run loop
func (d *Dealer) teardown() {
	d.lock.Lock()
	d.closed = true
	d.lock.Unlock()

	for _, p := range d.Players() {
		if c := p.client(); c != nil {
			c.clearDealer(d)
		}
	}

	d.pitBoss.remove(d)
	d.EndShift()
}

// RoomSnapshot is a summary of a room for debugging
type RoomSnapshot struct {
	Code    string        `json:"code"`
	Seats   int           `json:"seats"`
	Bots    int           `json:"bots"`
	Bullets int           `json:"bullets"`
	Private bool          `json:"private"`
	Phase   string        `json:"phase"`
	Age     time.Duration `json:"age"`
}

// Snapshot returns a summary of the room
func (d *Dealer) Snapshot() RoomSnapshot {
	d.lock.RLock()
	defer d.lock.RUnlock()

	bots := 0
	for _, p := range d.players {
		if p.IsBot() {
			bots++
		}
	}

	return RoomSnapshot{
		Code:    d.code,
		Seats:   len(d.players),
		Bots:    bots,
		Bullets: d.options.Bullets,
		Private: d.options.Private,
		Phase:   d.phase,
		Age:     time.Since(d.created),
	}
}
