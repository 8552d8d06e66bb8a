package core

import "encoding/json"

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandCreateRoom starts a new broadcast session owned by the caller.
	CommandCreateRoom CommandKind = iota
	// CommandJoinRoom admits the caller to a room as a viewer.
	CommandJoinRoom
	// CommandRelaySignal forwards a negotiation payload to one connection.
	CommandRelaySignal
	// CommandSyncPlayback relays a playback control to the other room members.
	CommandSyncPlayback
	// CommandResetRoom clears all viewers from a room without ending it.
	CommandResetRoom
)

// Signal names the negotiation payload kinds relayed between peers.
type Signal string

const (
	SignalOffer     Signal = "offer"
	SignalAnswer    Signal = "answer"
	SignalCandidate Signal = "ice-candidate"
)

// SyncAction is an advisory playback control.
type SyncAction string

const (
	SyncPlay  SyncAction = "play"
	SyncPause SyncAction = "pause"
	SyncStop  SyncAction = "stop"
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Room     string
	Password string
	Target   string // destination connection identity for relays
	Signal   Signal
	Payload  json.RawMessage // opaque negotiation payload, never inspected
	Action   SyncAction
}
