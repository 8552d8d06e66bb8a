package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirecast-server/internal/proto"
)

func testLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestRoomLookupNotFound(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/no-such-room")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestRoomLookupLiveRoom(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sender, _, err := websocket.Dial(ctx, wsURL(ts), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer sender.Close(websocket.StatusNormalClosure, "done")

	mustSend(t, ctx, sender, proto.InboundTypeCreateRoom, proto.CreateRoomData{Password: "abc"})
	env := mustReadType(t, ctx, sender, proto.OutboundTypeRoomCreated)

	var created proto.RoomCreatedData
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("unmarshal room-created: %v", err)
	}

	resp, err := ts.Client().Get(ts.URL + "/api/rooms/" + created.RoomID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var room RoomResponse
	if err := json.NewDecoder(resp.Body).Decode(&room); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if room.ID != created.RoomID || room.Viewers != 0 || !room.Protected {
		t.Fatalf("unexpected room snapshot: %+v", room)
	}
}

func TestListSessionsEmpty(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/api/sessions")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var sessions []SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected empty journal, got %d entries", len(sessions))
	}
}

func TestListSessionsRejectsBadLimit(t *testing.T) {
	ts := startTestServer(t)

	for _, raw := range []string{"0", "-1", "bogus", "1000"} {
		resp, err := ts.Client().Get(ts.URL + "/api/sessions?limit=" + raw)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != 400 {
			t.Fatalf("limit=%s: unexpected status %d", raw, resp.StatusCode)
		}
	}
}
