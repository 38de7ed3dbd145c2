package holdemshot

import (
	"holdemshot-server/pkg/playable"
)

// maxLogEntries bounds the game log kept in memory
const maxLogEntries = 25

func (g *Game) addLog(playerID string, format string, a ...interface{}) {
	g.log = append(g.log, playable.SimpleLogMessage(playerID, format, a...))
	if len(g.log) > maxLogEntries {
		g.log = g.log[len(g.log)-maxLogEntries:]
	}
}

// Log returns the most recent log messages, oldest first
func (g *Game) Log() []*playable.LogMessage {
	log := make([]*playable.LogMessage, len(g.log))
	copy(log, g.log)
	return log
}
