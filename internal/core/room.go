package core

import "github.com/vovakirdan/wirecast-server/internal/auth"

// Room is a single broadcast session: one immutable sender, zero or more
// viewers. The hub is the only mutator; none of these methods lock.
type Room struct {
	ID           string
	Sender       *Client
	passwordHash string // empty means open join
	viewers      map[string]*Client
}

func newRoom(id string, sender *Client, passwordHash string) *Room {
	return &Room{
		ID:           id,
		Sender:       sender,
		passwordHash: passwordHash,
		viewers:      make(map[string]*Client),
	}
}

// Protected reports whether joining requires a password.
func (r *Room) Protected() bool {
	return r.passwordHash != ""
}

// CheckPassword reports whether the candidate unlocks the room.
func (r *Room) CheckPassword(candidate string) bool {
	if r.passwordHash == "" {
		return true
	}
	return auth.ComparePassword(r.passwordHash, candidate) == nil
}

// AddViewer inserts a viewer. Returns false if the client is already a
// viewer or is the room's own sender.
func (r *Room) AddViewer(c *Client) bool {
	if c.ID == r.Sender.ID {
		return false
	}
	if _, exists := r.viewers[c.ID]; exists {
		return false
	}
	r.viewers[c.ID] = c
	return true
}

// RemoveViewer deletes a viewer by identity. Returns true if removed.
func (r *Room) RemoveViewer(id string) bool {
	if _, exists := r.viewers[id]; !exists {
		return false
	}
	delete(r.viewers, id)
	return true
}

// ClearViewers empties the viewer set.
func (r *Room) ClearViewers() {
	r.viewers = make(map[string]*Client)
}

// ViewerCount returns the number of currently admitted viewers.
func (r *Room) ViewerCount() int {
	return len(r.viewers)
}

// HasMember reports whether id is the sender or an admitted viewer.
func (r *Room) HasMember(id string) bool {
	if id == r.Sender.ID {
		return true
	}
	_, ok := r.viewers[id]
	return ok
}

// Broadcast sends an event to the sender and all viewers.
func (r *Room) Broadcast(event *Event) {
	deliver(r.Sender, event)
	for _, viewer := range r.viewers {
		deliver(viewer, event)
	}
}

// BroadcastExcept sends an event to all members except the named identity.
func (r *Room) BroadcastExcept(id string, event *Event) {
	if r.Sender.ID != id {
		deliver(r.Sender, event)
	}
	for _, viewer := range r.viewers {
		if viewer.ID == id {
			continue
		}
		deliver(viewer, event)
	}
}

// deliver is fire-and-forget: a slow or dead consumer never stalls the hub.
func deliver(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
	}
}
