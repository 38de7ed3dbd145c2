package mux

import (
	"holdemshot-server/pkg/historian"
	"holdemshot-server/pkg/matchmaker"
	"holdemshot-server/pkg/room"
	"net/http"
	"strconv"
)

const maxHistory = 100
const defaultHistory = 20

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (m *Mux) getHealth() http.HandlerFunc {
	payload := healthResponse{
		Status:  "OK",
		Version: m.version,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, payload)
	}
}

type debugResponse struct {
	Queues []matchmaker.QueueSnapshot `json:"queues"`
	Rooms  []room.RoomSnapshot        `json:"rooms"`
}

func (m *Mux) getDebug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, debugResponse{
			Queues: m.matchmaker.Snapshot(),
			Rooms:  m.pitBoss.Snapshot(),
		})
	}
}

func (m *Mux) getHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := defaultHistory
		if rows := r.FormValue("rows"); rows != "" {
			val, err := strconv.Atoi(rows)
			if err != nil || val <= 0 || val > maxHistory {
				writeJSONError(w, http.StatusBadRequest, errBadRows)
				return
			}

			n = val
		}

		records, err := m.history.Recent(r.Context(), n)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		if records == nil {
			records = []historian.Record{}
		}

		writeJSON(w, http.StatusOK, records)
	}
}
