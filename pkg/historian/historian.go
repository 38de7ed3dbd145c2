// Package historian exports finished games to a Redis list
package historian

import (
	"context"
	"encoding/json"
	"fmt"
	"holdemshot-server/pkg/playable"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis list finished games are pushed to
const DefaultKey = "holdemshot:games"

// DefaultMaxRecords is how many records the list keeps
const DefaultMaxRecords = 1000

// Record is one finished game
type Record struct {
	ID       string    `json:"id"`
	Code     string    `json:"code"`
	WinnerID string    `json:"winnerId"`
	Winner   string    `json:"winner"`
	LoserID  string    `json:"loserId"`
	Loser    string    `json:"loser"`
	Reason   string    `json:"reason"`
	Rounds   int       `json:"rounds"`
	Finished time.Time `json:"finished"`
}

// ListStore is the subset of the Redis client the historian needs
type ListStore interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// Historian records finished games in a capped Redis list
type Historian struct {
	store      ListStore
	key        string
	maxRecords int64
	now        func() time.Time
}

// New returns a Historian writing to key, keeping at most maxRecords entries
func New(store ListStore, key string, maxRecords int) *Historian {
	if key == "" {
		key = DefaultKey
	}

	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}

	return &Historian{
		store:      store,
		key:        key,
		maxRecords: int64(maxRecords),
		now:        time.Now,
	}
}

// Connect opens a Redis client from a redis:// URL and verifies it answers
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}

// Record pushes the finished game and trims the list to the newest entries
func (h *Historian) Record(ctx context.Context, code string, details *playable.GameOverDetails) error {
	record := Record{
		ID:       uuid.New().String(),
		Code:     code,
		WinnerID: details.WinnerID,
		Winner:   details.Winner,
		LoserID:  details.LoserID,
		Loser:    details.Loser,
		Reason:   details.Reason,
		Rounds:   details.Rounds,
		Finished: h.now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal record: %w", err)
	}

	if err := h.store.RPush(ctx, h.key, data).Err(); err != nil {
		return fmt.Errorf("could not push to %s: %w", h.key, err)
	}

	if err := h.store.LTrim(ctx, h.key, -h.maxRecords, -1).Err(); err != nil {
		return fmt.Errorf("could not trim %s: %w", h.key, err)
	}

	return nil
}

// Recent returns up to n of the newest records, newest first
func (h *Historian) Recent(ctx context.Context, n int) ([]Record, error) {
	if n <= 0 {
		return []Record{}, nil
	}

	values, err := h.store.LRange(ctx, h.key, -int64(n), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", h.key, err)
	}

	records := make([]Record, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var record Record
		if err := json.Unmarshal([]byte(values[i]), &record); err != nil {
			return nil, fmt.Errorf("could not unmarshal record: %w", err)
		}

		records = append(records, record)
	}

	return records, nil
}
