package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirecast-server/internal/auth"
	"github.com/vovakirdan/wirecast-server/internal/store"
)

// Hub owns the room table and the connection registry. All mutations happen
// on the single Run goroutine: per-client pump goroutines funnel commands
// into one channel, so state-changing events are applied atomically and in
// arrival order, and no channel send ever blocks the loop.
type Hub struct {
	journal *store.Recorder
	log     zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan clientCommand
	queries    chan roomQuery

	clients map[string]*Client
	rooms   map[string]*Room
}

type clientCommand struct {
	client *Client
	cmd    *Command
}

type roomQuery struct {
	room  string
	reply chan *RoomInfo
}

// RoomInfo is a read-only snapshot of a live room.
type RoomInfo struct {
	ID        string
	Sender    string
	Viewers   int
	Protected bool
}

// NewHub creates a hub. The journal may be nil; it only feeds the
// session history and never affects coordination.
func NewHub(journal *store.Recorder, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		journal:    journal,
		log:        logger.With().Str("component", "hub").Logger(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan clientCommand),
		queries:    make(chan roomQuery),
		clients:    make(map[string]*Client),
		rooms:      make(map[string]*Room),
	}
}

// RegisterClient adds a connection to the registry and starts pumping its
// commands into the hub loop. The pump exits when the transport closes the
// client's Commands channel.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
	go func() {
		for cmd := range c.Commands {
			h.commands <- clientCommand{client: c, cmd: cmd}
		}
	}()
}

// UnregisterClient reports a transport-level disconnect. It is the sole
// room-deletion trigger for rooms the connection was sending to.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// RoomInfo answers a read-only snapshot request for a room. The second
// return value is false if the room does not exist.
func (h *Hub) RoomInfo(ctx context.Context, roomID string) (RoomInfo, bool) {
	q := roomQuery{room: roomID, reply: make(chan *RoomInfo, 1)}
	select {
	case h.queries <- q:
	case <-ctx.Done():
		return RoomInfo{}, false
	}
	select {
	case info := <-q.reply:
		if info == nil {
			return RoomInfo{}, false
		}
		return *info, true
	case <-ctx.Done():
		return RoomInfo{}, false
	}
}

// Run processes registrations, disconnects, commands and queries until the
// context is cancelled. It is the only goroutine touching clients and rooms.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c.ID] = c
			h.log.Debug().Str("client_id", c.ID).Msg("client registered")
		case c := <-h.unregister:
			h.dropClient(c)
		case cc := <-h.commands:
			if _, ok := h.clients[cc.client.ID]; !ok {
				continue // command raced a disconnect
			}
			h.dispatch(cc.client, cc.cmd)
		case q := <-h.queries:
			q.reply <- h.snapshot(q.room)
		}
	}
}

func (h *Hub) dispatch(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandCreateRoom:
		h.createRoom(c, cmd.Password)
	case CommandJoinRoom:
		h.joinRoom(c, cmd.Room, cmd.Password)
	case CommandRelaySignal:
		h.relaySignal(c, cmd)
	case CommandSyncPlayback:
		h.syncPlayback(c, cmd.Room, cmd.Action)
	case CommandResetRoom:
		h.resetRoom(cmd.Room)
	default:
		// Unknown commands are ignored: availability of unrelated rooms
		// beats strict protocol conformance.
		h.log.Debug().Str("client_id", c.ID).Int("kind", int(cmd.Kind)).Msg("ignoring unknown command")
	}
}

func (h *Hub) createRoom(c *Client, password string) {
	// At most one room per sender connection: a repeated create ends the
	// previous session and mints a fresh id.
	for _, room := range h.rooms {
		if room.Sender.ID == c.ID {
			h.endRoom(room, c.ID)
		}
	}

	hash := ""
	if password != "" {
		var err error
		hash, err = auth.HashPassword(password)
		if err != nil {
			h.log.Error().Err(err).Str("client_id", c.ID).Msg("hash room password")
			deliver(c, &Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "invalid password")})
			return
		}
	}

	id := uuid.NewString()
	h.rooms[id] = newRoom(id, c, hash)

	h.log.Info().Str("room_id", id).Str("sender_id", c.ID).Bool("protected", hash != "").Msg("room created")
	deliver(c, &Event{Kind: EventRoomCreated, Room: id})
	h.journal.Record(store.SessionEvent{Kind: store.SessionStarted, RoomID: id, At: time.Now()})
}

func (h *Hub) joinRoom(c *Client, roomID, password string) {
	room, ok := h.rooms[roomID]
	if !ok {
		deliver(c, &Event{Kind: EventError, Room: roomID, Error: coreError(ErrCodeRoomNotFound, "room not found")})
		return
	}
	if !room.CheckPassword(password) {
		deliver(c, &Event{Kind: EventError, Room: roomID, Error: coreError(ErrCodeWrongPassword, "wrong password")})
		return
	}
	if c.ID == room.Sender.ID {
		return // a sender cannot view its own room
	}

	room.AddViewer(c)
	count := room.ViewerCount()

	h.log.Info().Str("room_id", roomID).Str("viewer_id", c.ID).Int("viewers", count).Msg("viewer joined")
	deliver(c, &Event{Kind: EventRoomJoined, Room: roomID, Sender: room.Sender.ID})
	room.Broadcast(&Event{Kind: EventViewerCount, Room: roomID, Count: count})
	h.journal.Record(store.SessionEvent{Kind: store.SessionPeak, RoomID: roomID, Viewers: count, At: time.Now()})
}

// relaySignal is addressed by raw connection identity with no membership
// check; unreachable targets are dropped silently (at-most-once, no retry).
func (h *Hub) relaySignal(c *Client, cmd *Command) {
	target, ok := h.clients[cmd.Target]
	if !ok {
		h.log.Debug().Str("from", c.ID).Str("target", cmd.Target).Msg("relay target gone, dropping")
		return
	}
	deliver(target, &Event{
		Kind:    EventSignal,
		Signal:  cmd.Signal,
		From:    c.ID,
		Payload: cmd.Payload,
	})
}

func (h *Hub) syncPlayback(c *Client, roomID string, action SyncAction) {
	room, ok := h.rooms[roomID]
	if !ok || !room.HasMember(c.ID) {
		return
	}
	room.BroadcastExcept(c.ID, &Event{Kind: EventSync, Room: roomID, Action: action})
}

func (h *Hub) resetRoom(roomID string) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	room.Broadcast(&Event{Kind: EventReset, Room: roomID})
	room.ClearViewers()
	room.Broadcast(&Event{Kind: EventViewerCount, Room: roomID, Count: 0})
	h.log.Info().Str("room_id", roomID).Msg("room reset")
}

// dropClient removes a connection from the registry and from every room.
// The scan visits all rooms: there is no reverse index from identity to
// memberships, and disconnects are not on a hot path. Once the scan is
// done no room or registry entry references the client, so closing its
// Events channel is safe.
func (h *Hub) dropClient(c *Client) {
	delete(h.clients, c.ID)

	for id, room := range h.rooms {
		if room.Sender.ID == c.ID {
			h.endRoom(room, c.ID)
			continue
		}
		if room.RemoveViewer(c.ID) {
			count := room.ViewerCount()
			room.Broadcast(&Event{Kind: EventViewerCount, Room: id, Count: count})
			h.log.Info().Str("room_id", id).Str("viewer_id", c.ID).Int("viewers", count).Msg("viewer left")
		}
	}

	close(c.Events)
	h.log.Debug().Str("client_id", c.ID).Msg("client unregistered")
}

// endRoom announces the end of a broadcast to everyone but the departing
// sender and deletes the room. A room id is never reused.
func (h *Hub) endRoom(room *Room, senderID string) {
	room.BroadcastExcept(senderID, &Event{Kind: EventStreamEnded, Room: room.ID})
	delete(h.rooms, room.ID)
	h.log.Info().Str("room_id", room.ID).Msg("stream ended")
	h.journal.Record(store.SessionEvent{Kind: store.SessionEnded, RoomID: room.ID, At: time.Now()})
}

func (h *Hub) snapshot(roomID string) *RoomInfo {
	room, ok := h.rooms[roomID]
	if !ok {
		return nil
	}
	return &RoomInfo{
		ID:        room.ID,
		Sender:    room.Sender.ID,
		Viewers:   room.ViewerCount(),
		Protected: room.Protected(),
	}
}
