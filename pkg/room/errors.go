package room

import "holdemshot-server/pkg/playable"

// ErrRoomNotFound is returned when no active room has the code
var ErrRoomNotFound = playable.UserError("room not found")

// ErrRoomFull is returned when both seats of the room are taken
var ErrRoomFull = playable.UserError("room is full")

// ErrAlreadySeated is returned when the player is already playing in a room
var ErrAlreadySeated = playable.UserError("already seated in a room")

// ErrPeerDisconnected is the reason a room ends when a player drops
var ErrPeerDisconnected = playable.UserError("opponent disconnected")

// ErrNoCodeAvailable is returned if a unique room code could not be generated
var ErrNoCodeAvailable = playable.UserError("could not allocate a room code")
