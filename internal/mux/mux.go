package mux

import (
	"context"
	"holdemshot-server/pkg/historian"
	"holdemshot-server/pkg/matchmaker"
	"holdemshot-server/pkg/room"
	"net/http"
	"time"

	gmux "github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

// HistoryReader returns recently finished games
type HistoryReader interface {
	Recent(ctx context.Context, n int) ([]historian.Record, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config     config
	version    string
	pitBoss    *room.PitBoss
	matchmaker *matchmaker.Matchmaker
	history    HistoryReader
}

type config struct {
	// messageRate is how many websocket messages per second a client may send
	messageRate rate.Limit

	// messageBurst is how many messages may arrive at once
	messageBurst int
}

// NewMux returns a new HTTP mux
// history is optional, /history is only routed when it is set
func NewMux(version string, pitBoss *room.PitBoss, mm *matchmaker.Matchmaker, history HistoryReader) *Mux {
	this := &Mux{
		Router:     gmux.NewRouter(),
		version:    version,
		pitBoss:    pitBoss,
		matchmaker: mm,
		history:    history,
		config: config{
			messageRate:  rate.Every(time.Millisecond * 100),
			messageBurst: 10,
		},
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/debug").Handler(this.getDebug())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	if history != nil {
		r.Methods(http.MethodGet).Path("/history").Handler(this.getHistory())
	}

	return this
}
