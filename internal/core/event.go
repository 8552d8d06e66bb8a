package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventRoomCreated returns a freshly minted room id to its sender.
	EventRoomCreated EventKind = iota
	// EventRoomJoined confirms a successful join and carries the sender
	// identity so the viewer can initiate negotiation.
	EventRoomJoined
	// EventViewerCount announces the room's viewer count after a membership change.
	EventViewerCount
	// EventSignal delivers a relayed negotiation payload, tagged with origin.
	EventSignal
	// EventSync delivers an advisory playback control.
	EventSync
	// EventReset tells room members the session returned to zero viewers.
	EventReset
	// EventStreamEnded tells room members the sender is gone and the room deleted.
	EventStreamEnded
	// EventError notifies the triggering caller about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind    EventKind
	Room    string
	Sender  string // room sender identity, set for EventRoomJoined
	From    string // origin connection identity, set for EventSignal
	Count   int    // set for EventViewerCount
	Signal  Signal
	Payload json.RawMessage
	Action  SyncAction
	Error   *CoreError
}
