package room

import (
	"context"
	"errors"
	"holdemshot-server/internal/rng"
	"holdemshot-server/internal/util"
	"holdemshot-server/pkg/bot"
	"holdemshot-server/pkg/playable"
	"holdemshot-server/pkg/playable/holdemshot"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CodeAlphabet is the set of characters room codes are drawn from
// Easily confused characters (I, O, 0, 1) are left out
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// DefaultCodeLength is the length of a room code
const DefaultCodeLength = 5

// maxCodeAttempts bounds the collision retries when allocating a code
const maxCodeAttempts = 100

// recordTimeout bounds how long a finished game can take to be recorded
const recordTimeout = time.Second * 5

// Recorder stores finished games
type Recorder interface {
	Record(ctx context.Context, code string, details *playable.GameOverDetails) error
}

// Settings configures a PitBoss
type Settings struct {
	// CodeLength is the length of generated room codes
	CodeLength int

	// RNG drives room codes and every game dealt by the PitBoss
	RNG rng.Generator

	// Recorder is optional
	Recorder Recorder

	// NewStrategy returns the strategy for a bot seat
	NewStrategy func() bot.Strategy
}

// PitBoss owns every active room
type PitBoss struct {
	logger   logrus.FieldLogger
	settings Settings

	lock    sync.Mutex
	dealers map[string]*Dealer
	// rng is not safe for concurrent use, so it is guarded by lock
	rng rng.Generator
}

// NewPitBoss returns a new room registry
func NewPitBoss(logger logrus.FieldLogger, settings Settings) *PitBoss {
	if settings.CodeLength <= 0 {
		settings.CodeLength = DefaultCodeLength
	}

	if settings.RNG == nil {
		settings.RNG = rng.Crypto{}
	}

	if settings.NewStrategy == nil {
		settings.NewStrategy = func() bot.Strategy {
			return bot.NewHeuristic()
		}
	}

	return &PitBoss{
		logger:   logger,
		settings: settings,
		dealers:  make(map[string]*Dealer),
		rng:      settings.RNG,
	}
}

// Intn makes the PitBoss a lock-guarded generator shared by its rooms
func (p *PitBoss) Intn(n int) int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.rng.Intn(n)
}

// NOTE: lock must be held
func (p *PitBoss) generateCode() (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		var sb strings.Builder
		for i := 0; i < p.settings.CodeLength; i++ {
			sb.WriteByte(CodeAlphabet[p.rng.Intn(len(CodeAlphabet))])
		}

		code := sb.String()
		if _, found := p.dealers[code]; !found {
			return code, nil
		}

		p.logger.WithField("code", code).Debug("room code collision")
	}

	return "", ErrNoCodeAvailable
}

// openRoom allocates a code and registers a new dealer
func (p *PitBoss) openRoom(options holdemshot.Options) (*Dealer, error) {
	if err := holdemshot.ValidateBullets(options.Bullets); err != nil {
		return nil, err
	}

	p.lock.Lock()
	code, err := p.generateCode()
	if err != nil {
		p.lock.Unlock()
		return nil, err
	}

	dealer := NewDealer(p, code, options, p)
	p.dealers[code] = dealer
	p.lock.Unlock()

	dealer.StartShift()
	p.logger.WithFields(logrus.Fields{
		"code":    code,
		"private": options.Private,
		"bullets": options.Bullets,
	}).Info("room opened")

	return dealer, nil
}

func checkNotSeated(player *Player) error {
	if c := player.client(); c != nil && c.Dealer() != nil {
		return ErrAlreadySeated
	}

	return nil
}

// CreatePrivateRoom opens a room joinable by code and seats host in slot 0
// Private rooms are never filled with a bot
func (p *PitBoss) CreatePrivateRoom(host *Player, bullets int) (*Dealer, error) {
	if err := checkNotSeated(host); err != nil {
		return nil, err
	}

	dealer, err := p.openRoom(holdemshot.Options{Bullets: bullets, Private: true})
	if err != nil {
		return nil, err
	}

	if _, err := dealer.addPlayer(host); err != nil {
		p.remove(dealer)
		dealer.EndShift()
		return nil, err
	}

	return dealer, nil
}

// JoinPrivateRoom seats player in the room with code
// Codes are case-insensitive
func (p *PitBoss) JoinPrivateRoom(player *Player, code string) (*Dealer, error) {
	if err := checkNotSeated(player); err != nil {
		return nil, err
	}

	code = strings.ToUpper(strings.TrimSpace(code))

	p.lock.Lock()
	dealer, found := p.dealers[code]
	p.lock.Unlock()

	if !found || !dealer.options.Private {
		return nil, ErrRoomNotFound
	}

	if _, err := dealer.addPlayer(player); err != nil {
		return nil, err
	}

	return dealer, nil
}

// FormMatch seats two queued players in a new room and starts it
// Both clients are reserved first, so nothing is sent unless both can be seated
func (p *PitBoss) FormMatch(a, b *Player, bullets int) error {
	dealer, err := p.openRoom(holdemshot.Options{Bullets: bullets})
	if err != nil {
		return err
	}

	players := []*Player{a, b}
	for i, player := range players {
		// a disconnected client is seated anyway and forfeits
		if err := dealer.reserve(player); err != nil && !errors.Is(err, ErrPeerDisconnected) {
			for _, reserved := range players[:i] {
				dealer.release(reserved)
			}

			p.remove(dealer)
			dealer.EndShift()
			return err
		}
	}

	for _, player := range players {
		if _, err := dealer.addPlayer(player); err != nil {
			dealer.exec(func() {
				dealer.teardown()
				for _, reserved := range players {
					dealer.release(reserved)
				}
			})
			return err
		}
	}

	return nil
}

// FormBotMatch seats a queued player against a bot and starts the room
func (p *PitBoss) FormBotMatch(player *Player, bullets int) error {
	return p.FormMatch(player, p.newBot(), bullets)
}

func (p *PitBoss) newBot() *Player {
	return &Player{
		ID:         uuid.New().String(),
		Name:       util.GetRandomName(),
		Controller: Bot{Strategy: p.settings.NewStrategy()},
	}
}

// ClientDisconnected forfeits the client's game, if any
func (p *PitBoss) ClientDisconnected(client *Client) {
	if dealer := client.Disconnect(); dealer != nil {
		dealer.PlayerDisconnected(client.ID())
	}
}

// Dealer returns the active room with code
func (p *PitBoss) Dealer(code string) (*Dealer, bool) {
	p.lock.Lock()
	defer p.lock.Unlock()

	d, ok := p.dealers[strings.ToUpper(code)]
	return d, ok
}

// remove unregisters the dealer
func (p *PitBoss) remove(d *Dealer) {
	p.lock.Lock()
	if p.dealers[d.code] == d {
		delete(p.dealers, d.code)
	}
	p.lock.Unlock()

	p.logger.WithField("code", d.code).Info("room closed")
}

// record hands a finished game to the recorder without blocking the room
func (p *PitBoss) record(code string, details *playable.GameOverDetails) {
	if p.settings.Recorder == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		if err := p.settings.Recorder.Record(ctx, code, details); err != nil {
			p.logger.WithError(err).WithField("code", code).Error("could not record game")
		}
	}()
}

// Snapshot returns a summary of every active room, sorted by code
func (p *PitBoss) Snapshot() []RoomSnapshot {
	p.lock.Lock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, d := range p.dealers {
		dealers = append(dealers, d)
	}
	p.lock.Unlock()

	rooms := make([]RoomSnapshot, len(dealers))
	for i, d := range dealers {
		rooms[i] = d.Snapshot()
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].Code < rooms[j].Code
	})

	return rooms
}
