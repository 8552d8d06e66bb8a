package core

import (
	"context"
	"fmt"
	"testing"
)

func benchmarkSyncBroadcast(b *testing.B, viewers int) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, nil)
	go hub.Run(ctx)

	sender := NewClient("sender")
	hub.RegisterClient(sender)
	sender.Commands <- &Command{Kind: CommandCreateRoom}
	created := <-sender.Events
	roomID := created.Room

	clients := make([]*Client, 0, viewers)
	for i := 0; i < viewers; i++ {
		c := NewClient(fmt.Sprintf("viewer-%d", i))
		hub.RegisterClient(c)
		c.Commands <- &Command{Kind: CommandJoinRoom, Room: roomID}
		clients = append(clients, c)
	}

	// Drain events for all but the first viewer to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	// Wait until the last viewer is admitted, then flush any queued
	// viewer-count events so iterations only ever see sync deliveries.
	for {
		if info, ok := hub.RoomInfo(ctx, roomID); ok && info.Viewers == viewers {
			break
		}
	}
	for flushed := false; !flushed; {
		select {
		case <-target.Events:
		default:
			flushed = true
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender.Commands <- &Command{Kind: CommandSyncPlayback, Room: roomID, Action: SyncPause}
		for ev := range target.Events {
			if ev.Kind == EventSync {
				break
			}
		}
	}
}

func BenchmarkSyncBroadcast_10(b *testing.B)  { benchmarkSyncBroadcast(b, 10) }
func BenchmarkSyncBroadcast_100(b *testing.B) { benchmarkSyncBroadcast(b, 100) }
func BenchmarkSyncBroadcast_500(b *testing.B) { benchmarkSyncBroadcast(b, 500) }
