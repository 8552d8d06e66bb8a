package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeCreateRoom   = "create-room"
	InboundTypeJoinRoom     = "join-room"
	InboundTypeOffer        = "offer"
	InboundTypeAnswer       = "answer"
	InboundTypeICECandidate = "ice-candidate"
	InboundTypeSyncPlay     = "sync-play"
	InboundTypeSyncPause    = "sync-pause"
	InboundTypeSyncStop     = "sync-stop"
	InboundTypeReset        = "reset"

	OutboundTypeRoomCreated   = "room-created"
	OutboundTypeRoomJoined    = "room-joined"
	OutboundTypeRoomNotFound  = "room-not-found"
	OutboundTypeWrongPassword = "wrong-password"
	OutboundTypeViewerCount   = "viewer-count"
	OutboundTypeReset         = "reset"
	OutboundTypeStreamEnded   = "stream-ended"
	OutboundTypeError         = "error"
)

// CreateRoomData requests a new broadcast room, optionally password gated.
type CreateRoomData struct {
	Password string `json:"password,omitempty"`
}

// JoinRoomData requests admission to an existing room.
type JoinRoomData struct {
	RoomID   string `json:"roomId"`
	Password string `json:"password,omitempty"`
}

// SignalData carries an opaque negotiation payload addressed to one
// connection identity. The server never inspects the payload.
type SignalData struct {
	Target  string          `json:"target"`
	Payload json.RawMessage `json:"payload"`
}

// SyncData names the room a playback control applies to.
type SyncData struct {
	RoomID string `json:"roomId"`
}

// ResetData names the room to return to zero viewers.
type ResetData struct {
	RoomID string `json:"roomId"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// RoomCreatedData returns the minted room id to its sender.
type RoomCreatedData struct {
	RoomID string `json:"roomId"`
}

// RoomJoinedData confirms a join; SenderID lets the viewer address the
// sender for negotiation.
type RoomJoinedData struct {
	RoomID   string `json:"roomId"`
	SenderID string `json:"senderId"`
}

// ViewerCountData announces the room's current viewer count.
type ViewerCountData struct {
	RoomID string `json:"roomId"`
	Count  int    `json:"count"`
}

// SignalEvent delivers a relayed negotiation payload tagged with its origin.
type SignalEvent struct {
	From    string          `json:"from"`
	Payload json.RawMessage `json:"payload"`
}

// RoomEvent names the room an event concerns (sync, reset, stream-ended,
// room-not-found, wrong-password).
type RoomEvent struct {
	RoomID string `json:"roomId"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
