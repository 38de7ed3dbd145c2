package room

import (
	"holdemshot-server/internal/rng"
	"holdemshot-server/pkg/playable"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator returns the scripted values first and then falls back to a seeded source
type scriptedGenerator struct {
	values   []int
	fallback rng.Generator
}

func (s *scriptedGenerator) Intn(n int) int {
	if len(s.values) > 0 {
		v := s.values[0]
		s.values = s.values[1:]
		return v % n
	}

	return s.fallback.Intn(n)
}

func newTestPitBoss(values ...int) *PitBoss {
	return NewPitBoss(logrus.StandardLogger(), Settings{
		RNG: &scriptedGenerator{values: values, fallback: rng.Seeded(1)},
	})
}

func newTestClient(name string) *Client {
	c := NewClient(nil)
	c.SetName(name)
	return c
}

func nextMessage(t *testing.T, c *Client) *playable.Response {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		res, ok := msg.(*playable.Response)
		require.True(t, ok, "unexpected message type %T", msg)
		return res
	case <-time.After(time.Second * 2):
		require.FailNow(t, "timed out waiting for message", c.String())
		return nil
	}
}

// expectKey requires the next message to have key
func expectKey(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	res := nextMessage(t, c)
	require.Equal(t, key, res.Key)
	return res
}

// waitForKey discards messages until one with key arrives
func waitForKey(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()

	for {
		if res := nextMessage(t, c); res.Key == key {
			return res
		}
	}
}

func expectNoMessage(t *testing.T, c *Client) {
	t.Helper()

	select {
	case msg := <-c.SendChan():
		require.Failf(t, "unexpected message", "%#v", msg)
	case <-time.After(time.Millisecond * 50):
	}
}
