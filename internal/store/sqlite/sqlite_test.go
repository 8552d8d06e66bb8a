package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	st, err := New(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSessionLifecycle(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	start := time.Now().Add(-time.Minute)
	if err := st.RecordSessionStart(ctx, "room-1", start); err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := st.RecordPeakViewers(ctx, "room-1", 3); err != nil {
		t.Fatalf("record peak: %v", err)
	}
	// A lower count never lowers the recorded peak.
	if err := st.RecordPeakViewers(ctx, "room-1", 1); err != nil {
		t.Fatalf("record peak: %v", err)
	}

	end := time.Now()
	if err := st.RecordSessionEnd(ctx, "room-1", end); err != nil {
		t.Fatalf("record end: %v", err)
	}

	sessions, err := st.ListSessions(ctx, 10)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}

	sess := sessions[0]
	if sess.RoomID != "room-1" {
		t.Fatalf("unexpected room id: %q", sess.RoomID)
	}
	if sess.PeakViewers != 3 {
		t.Fatalf("peak viewers = %d, want 3", sess.PeakViewers)
	}
	if sess.EndedAt == nil {
		t.Fatal("session should be ended")
	}
	if sess.EndedAt.Before(sess.StartedAt) {
		t.Fatal("ended_at precedes started_at")
	}
}

func TestSessionEndTargetsLiveRowOnly(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	if err := st.RecordSessionStart(ctx, "room-1", base); err != nil {
		t.Fatalf("record start: %v", err)
	}
	if err := st.RecordSessionEnd(ctx, "room-1", base.Add(time.Minute)); err != nil {
		t.Fatalf("record end: %v", err)
	}

	// Same room id broadcasting again gets its own row.
	if err := st.RecordSessionStart(ctx, "room-1", base.Add(2*time.Minute)); err != nil {
		t.Fatalf("record second start: %v", err)
	}
	if err := st.RecordPeakViewers(ctx, "room-1", 5); err != nil {
		t.Fatalf("record peak: %v", err)
	}

	sessions, err := st.ListSessions(ctx, 10)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	// Newest first: the live row with the peak, then the ended one.
	if sessions[0].EndedAt != nil || sessions[0].PeakViewers != 5 {
		t.Fatalf("unexpected live session: %+v", sessions[0])
	}
	if sessions[1].EndedAt == nil || sessions[1].PeakViewers != 0 {
		t.Fatalf("unexpected ended session: %+v", sessions[1])
	}
}

func TestListSessionsLimit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		if err := st.RecordSessionStart(ctx, "room", base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("record start: %v", err)
		}
	}

	sessions, err := st.ListSessions(ctx, 3)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
}
