package core

import (
	"testing"
	"time"

	"github.com/vovakirdan/wirecast-server/internal/auth"
)

func TestRoomViewerSet(t *testing.T) {
	sender := NewClient("sender")
	room := newRoom("r1", sender, "")

	viewer := NewClient("viewer")
	if !room.AddViewer(viewer) {
		t.Fatal("first add should succeed")
	}
	if room.AddViewer(viewer) {
		t.Fatal("duplicate add should fail")
	}
	if room.AddViewer(sender) {
		t.Fatal("a sender must never appear in its own viewer set")
	}
	if room.ViewerCount() != 1 {
		t.Fatalf("viewer count = %d, want 1", room.ViewerCount())
	}

	if !room.HasMember("sender") || !room.HasMember("viewer") {
		t.Fatal("sender and viewer should both be members")
	}
	if room.HasMember("stranger") {
		t.Fatal("stranger should not be a member")
	}

	if !room.RemoveViewer("viewer") {
		t.Fatal("remove should succeed")
	}
	if room.RemoveViewer("viewer") {
		t.Fatal("second remove should fail")
	}
	if room.ViewerCount() != 0 {
		t.Fatalf("viewer count = %d, want 0", room.ViewerCount())
	}
}

func TestRoomPasswordCheck(t *testing.T) {
	sender := NewClient("sender")

	open := newRoom("open", sender, "")
	if open.Protected() {
		t.Fatal("room without password should not be protected")
	}
	if !open.CheckPassword("") || !open.CheckPassword("anything") {
		t.Fatal("open rooms admit any candidate")
	}

	hash, err := auth.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	locked := newRoom("locked", sender, hash)
	if !locked.Protected() {
		t.Fatal("room with password should be protected")
	}
	if locked.CheckPassword("wrong") || locked.CheckPassword("") {
		t.Fatal("wrong candidates must be rejected")
	}
	if !locked.CheckPassword("secret") {
		t.Fatal("correct candidate must be accepted")
	}
}

func TestBroadcastNeverBlocksOnSlowConsumer(t *testing.T) {
	sender := NewClient("sender")
	room := newRoom("r1", sender, "")
	slow := NewClient("slow")
	room.AddViewer(slow)

	// Fill the slow viewer's buffer; further deliveries are dropped.
	for i := 0; i < cap(slow.Events); i++ {
		slow.Events <- &Event{Kind: EventSync}
	}

	done := make(chan struct{})
	go func() {
		room.Broadcast(&Event{Kind: EventViewerCount, Room: "r1", Count: 1})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a full consumer channel")
	}
}
