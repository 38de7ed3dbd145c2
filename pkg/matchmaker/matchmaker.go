// Package matchmaker pairs players waiting for a game with the same bullet count
package matchmaker

import (
	"errors"
	"holdemshot-server/pkg/playable/holdemshot"
	"holdemshot-server/pkg/room"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultFallback is how long a player waits before a bot takes the other seat
const DefaultFallback = time.Second * 8

// ErrInvalidBullets is returned when the bullet count is outside 1..3
var ErrInvalidBullets = holdemshot.ErrInvalidBullets

// ErrAlreadyQueued is returned when the player is already waiting for a match
var ErrAlreadyQueued = errors.New("already waiting for a match")

// RoomFormer seats matched players in a new room
type RoomFormer interface {
	FormMatch(a, b *room.Player, bullets int) error
	FormBotMatch(player *room.Player, bullets int) error
}

// Options configures the Matchmaker
type Options struct {
	// Fallback is how long a player waits before being matched with a bot
	Fallback time.Duration

	// Scheduler runs the fallback, defaults to RealTime()
	Scheduler Scheduler
}

type entry struct {
	player     *room.Player
	bullets    int
	enqueuedAt time.Time
	task       Task
}

// Matchmaker keeps one FIFO queue per bullet count
type Matchmaker struct {
	logger    logrus.FieldLogger
	former    RoomFormer
	scheduler Scheduler
	fallback  time.Duration
	now       func() time.Time

	lock     sync.Mutex
	queues   map[int][]*entry
	byPlayer map[string]*entry
}

// New returns a new Matchmaker
func New(logger logrus.FieldLogger, former RoomFormer, opts Options) *Matchmaker {
	if opts.Fallback <= 0 {
		opts.Fallback = DefaultFallback
	}

	if opts.Scheduler == nil {
		opts.Scheduler = RealTime()
	}

	return &Matchmaker{
		logger:    logger,
		former:    former,
		scheduler: opts.Scheduler,
		fallback:  opts.Fallback,
		now:       time.Now,
		queues:    make(map[int][]*entry),
		byPlayer:  make(map[string]*entry),
	}
}

// Enqueue pairs the player with the oldest player waiting on the same bullets
// If nobody is waiting, the player is queued and a bot is seated after the fallback delay
func (m *Matchmaker) Enqueue(player *room.Player, bullets int) error {
	if err := holdemshot.ValidateBullets(bullets); err != nil {
		return ErrInvalidBullets
	}

	log := m.logger.WithFields(logrus.Fields{
		"player":  player.ID,
		"bullets": bullets,
	})

	m.lock.Lock()
	if _, queued := m.byPlayer[player.ID]; queued {
		m.lock.Unlock()
		return ErrAlreadyQueued
	}

	if queue := m.queues[bullets]; len(queue) > 0 {
		oldest := queue[0]
		oldest.task.Stop()
		m.removeLocked(oldest)
		m.lock.Unlock()

		log.WithField("opponent", oldest.player.ID).Info("match found")
		return m.formMatch(log, oldest.player, player, bullets)
	}

	e := &entry{
		player:     player,
		bullets:    bullets,
		enqueuedAt: m.now(),
	}

	// the callback takes the lock, so it cannot observe e before the task is set
	e.task = m.scheduler.AfterFunc(m.fallback, func() {
		m.fallbackFired(e)
	})

	m.queues[bullets] = append(m.queues[bullets], e)
	m.byPlayer[player.ID] = e
	m.lock.Unlock()

	log.Debug("waiting for a match")
	return nil
}

// formMatch seats waiting and player together
// If only one of them can still take a seat, that one goes back in the queue
func (m *Matchmaker) formMatch(log logrus.FieldLogger, waiting, player *room.Player, bullets int) error {
	err := m.former.FormMatch(waiting, player, bullets)
	if err == nil || waiting.Available() == player.Available() {
		return err
	}

	log.WithError(err).Warn("match fell through, requeueing")
	if player.Available() {
		return m.Enqueue(player, bullets)
	}

	if qerr := m.Enqueue(waiting, bullets); qerr != nil {
		log.WithError(qerr).WithField("opponent", waiting.ID).Error("could not requeue")
	}

	return err
}

// fallbackFired seats a bot opposite the entry if it is still waiting
func (m *Matchmaker) fallbackFired(e *entry) {
	m.lock.Lock()
	if m.byPlayer[e.player.ID] != e {
		m.lock.Unlock()
		return
	}

	m.removeLocked(e)
	m.lock.Unlock()

	log := m.logger.WithFields(logrus.Fields{
		"player":  e.player.ID,
		"bullets": e.bullets,
	})

	log.Info("no match found, seating a bot")
	if err := m.former.FormBotMatch(e.player, e.bullets); err != nil {
		log.WithError(err).Error("could not form bot match")
	}
}

// Dequeue removes the player from the queue and cancels the bot fallback
// It returns false if the player was not waiting
func (m *Matchmaker) Dequeue(playerID string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	e, ok := m.byPlayer[playerID]
	if !ok {
		return false
	}

	e.task.Stop()
	m.removeLocked(e)
	return true
}

// IsQueued returns true if the player is waiting for a match
func (m *Matchmaker) IsQueued(playerID string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	_, ok := m.byPlayer[playerID]
	return ok
}

// NOTE: lock must be held
func (m *Matchmaker) removeLocked(e *entry) {
	delete(m.byPlayer, e.player.ID)

	queue := m.queues[e.bullets]
	for i, queued := range queue {
		if queued == e {
			m.queues[e.bullets] = append(queue[:i:i], queue[i+1:]...)
			break
		}
	}

	if len(m.queues[e.bullets]) == 0 {
		delete(m.queues, e.bullets)
	}
}

// QueueSnapshot summarizes the players waiting on one bullet count
type QueueSnapshot struct {
	Bullets    int           `json:"bullets"`
	Waiting    int           `json:"waiting"`
	OldestWait time.Duration `json:"oldestWait"`
}

// Snapshot returns the queues, sorted by bullets
func (m *Matchmaker) Snapshot() []QueueSnapshot {
	m.lock.Lock()
	defer m.lock.Unlock()

	now := m.now()
	snapshot := make([]QueueSnapshot, 0, len(m.queues))
	for bullets, queue := range m.queues {
		if len(queue) == 0 {
			continue
		}

		snapshot = append(snapshot, QueueSnapshot{
			Bullets:    bullets,
			Waiting:    len(queue),
			OldestWait: now.Sub(queue[0].enqueuedAt),
		})
	}

	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].Bullets < snapshot[j].Bullets
	})

	return snapshot
}
