package mux

import (
	"context"
	"errors"
	"holdemshot-server/pkg/historian"
	"net/http/httptest"
	"testing"

	"github.com/bmizerany/assert"
)

func TestHealthHandler(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t, nil))
	defer ts.Close()

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, 200)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}

func TestDebugHandler(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t, nil))
	defer ts.Close()

	var expects debugResponse
	assertGet(t, ts, "/debug", &expects, 200)
	assert.Equal(t, 0, len(expects.Queues))
	assert.Equal(t, 0, len(expects.Rooms))
}

type fakeHistory struct {
	records []historian.Record
	err     error
	asked   int
}

func (f *fakeHistory) Recent(_ context.Context, n int) ([]historian.Record, error) {
	f.asked = n
	if f.err != nil {
		return nil, f.err
	}

	if n < len(f.records) {
		return f.records[:n], nil
	}

	return f.records, nil
}

func TestHistoryHandler(t *testing.T) {
	history := &fakeHistory{records: []historian.Record{
		{Code: "Q7X2K", Winner: "Ada", Rounds: 2},
		{Code: "AAAAA", Winner: "Bo", Rounds: 5},
	}}

	ts := httptest.NewServer(newTestMux(t, history))
	defer ts.Close()

	var records []historian.Record
	assertGet(t, ts, "/history", &records, 200)
	assert.Equal(t, defaultHistory, history.asked)
	assert.Equal(t, 2, len(records))
	assert.Equal(t, "Ada", records[0].Winner)

	assertGet(t, ts, "/history?rows=1", &records, 200)
	assert.Equal(t, 1, len(records))

	var errObj errorResponse
	assertGet(t, ts, "/history?rows=0", &errObj, 400)
	assert.Equal(t, errBadRows.Error(), errObj.Message)

	assertGet(t, ts, "/history?rows=abc", &errObj, 400)

	history.err = errors.New("redis down")
	assertGet(t, ts, "/history", &errObj, 500)
	assert.Equal(t, "Internal Server Error", errObj.Message)
}

func TestHistoryHandler_notRouted(t *testing.T) {
	ts := httptest.NewServer(newTestMux(t, nil))
	defer ts.Close()

	assertGet(t, ts, "/history", nil, 404)
}
