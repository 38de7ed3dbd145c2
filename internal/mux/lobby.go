package mux

import (
	"holdemshot-server/pkg/playable"
	"holdemshot-server/pkg/playable/holdemshot"
	"holdemshot-server/pkg/room"

	"github.com/sirupsen/logrus"
)

// lobby actions, everything else is forwarded to the client's room
const (
	actionJoinRandom = "joinRandom"
	actionCreateRoom = "createRoom"
	actionJoinRoom   = "joinRoom"
	actionLeaveQueue = "leaveQueue"
)

type queuedData struct {
	Bullets int `json:"bullets"`
}

func (m *Mux) receivedMessage(client *room.Client, msg *playable.PayloadIn) {
	log := logrus.WithFields(logrus.Fields{
		"client": client.String(),
		"action": msg.Action,
	})

	var err error
	switch msg.Action {
	case actionJoinRandom:
		err = m.joinRandom(client, msg)
	case actionCreateRoom:
		err = m.createRoom(client, msg)
	case actionJoinRoom:
		err = m.joinRoom(client, msg)
	case actionLeaveQueue:
		if m.matchmaker.Dequeue(client.ID()) {
			client.Send(playable.OK(msg.Context))
		}
	default:
		client.ReceivedMessage(msg)
	}

	if err != nil {
		log.WithError(err).Debug("lobby request rejected")
		client.Send(room.NewErrorResponse(msg.Context, err))
	}
}

// setName applies the optional name field
func setName(client *room.Client, msg *playable.PayloadIn) {
	if name, ok := msg.AdditionalData.GetString("name"); ok {
		client.SetName(name)
	}
}

// bullets returns the requested bullet count, defaulting to one
func bullets(msg *playable.PayloadIn) int {
	if n, ok := msg.AdditionalData.GetInt("bullets"); ok {
		return n
	}

	return holdemshot.DefaultOptions().Bullets
}

func (m *Mux) joinRandom(client *room.Client, msg *playable.PayloadIn) error {
	if client.Dealer() != nil {
		return room.ErrAlreadySeated
	}

	setName(client, msg)
	n := bullets(msg)
	if err := m.matchmaker.Enqueue(client.Player(), n); err != nil {
		return err
	}

	client.Send(&playable.Response{
		Key:     "queued",
		Data:    queuedData{Bullets: n},
		Context: msg.Context,
	})

	return nil
}

func (m *Mux) createRoom(client *room.Client, msg *playable.PayloadIn) error {
	m.matchmaker.Dequeue(client.ID())
	setName(client, msg)

	_, err := m.pitBoss.CreatePrivateRoom(client.Player(), bullets(msg))
	return err
}

func (m *Mux) joinRoom(client *room.Client, msg *playable.PayloadIn) error {
	m.matchmaker.Dequeue(client.ID())
	setName(client, msg)

	code, _ := msg.AdditionalData.GetString("code")
	if code == "" {
		code = msg.Subject
	}

	_, err := m.pitBoss.JoinPrivateRoom(client.Player(), code)
	return err
}
