package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/vovakirdan/wirecast-server/internal/proto"
)

// Smoke test for the broadcast flow: one connection creates a room, a
// second joins it, and both print what the server sends back.
func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	password := flag.String("password", "", "optional room password")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sender, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial sender: %w", err)
	}
	defer sender.Close(websocket.StatusNormalClosure, "bye")

	createPayload, err := json.Marshal(proto.CreateRoomData{Password: *password})
	if err != nil {
		return fmt.Errorf("marshal create-room: %w", err)
	}
	if err := wsjson.Write(ctx, sender, proto.Inbound{Type: proto.InboundTypeCreateRoom, Data: createPayload}); err != nil {
		return fmt.Errorf("send create-room: %w", err)
	}

	roomID, err := awaitRoomCreated(ctx, sender)
	if err != nil {
		return err
	}
	fmt.Printf("room created: %s\n", roomID)

	viewer, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial viewer: %w", err)
	}
	defer viewer.Close(websocket.StatusNormalClosure, "bye")

	joinPayload, err := json.Marshal(proto.JoinRoomData{RoomID: roomID, Password: *password})
	if err != nil {
		return fmt.Errorf("marshal join-room: %w", err)
	}
	if err := wsjson.Write(ctx, viewer, proto.Inbound{Type: proto.InboundTypeJoinRoom, Data: joinPayload}); err != nil {
		return fmt.Errorf("send join-room: %w", err)
	}

	// Print viewer-side traffic until the timeout fires.
	for {
		var outbound proto.Outbound
		if err := wsjson.Read(ctx, viewer, &outbound); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		fmt.Printf("viewer received: type=%s data=%v\n", outbound.Type, outbound.Data)
	}
}

func awaitRoomCreated(ctx context.Context, conn *websocket.Conn) (string, error) {
	for {
		var outbound struct {
			Type string                `json:"type"`
			Data proto.RoomCreatedData `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &outbound); err != nil {
			return "", fmt.Errorf("read room-created: %w", err)
		}
		if outbound.Type == proto.OutboundTypeRoomCreated {
			return outbound.Data.RoomID, nil
		}
	}
}
