package store

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Session is one recorded broadcast: when it started, when it ended (nil
// while live) and the highest viewer count it reached. Live room state is
// never persisted; the journal is history only.
type Session struct {
	ID          int64
	RoomID      string
	StartedAt   time.Time
	EndedAt     *time.Time
	PeakViewers int
}

// Store persists the broadcast-session journal.
type Store interface {
	RecordSessionStart(ctx context.Context, roomID string, at time.Time) error
	RecordSessionEnd(ctx context.Context, roomID string, at time.Time) error
	RecordPeakViewers(ctx context.Context, roomID string, viewers int) error
	ListSessions(ctx context.Context, limit int) ([]Session, error)
	Close() error
}

// SessionEventKind tags a journal entry.
type SessionEventKind int

const (
	SessionStarted SessionEventKind = iota
	SessionPeak
	SessionEnded
)

// SessionEvent is one journal entry emitted by the coordinator.
type SessionEvent struct {
	Kind    SessionEventKind
	RoomID  string
	Viewers int
	At      time.Time
}

// Recorder drains session events into the store on its own goroutine so the
// coordinator never blocks on I/O. Entries are applied in emission order;
// when the buffer is full new entries are dropped, not queued.
type Recorder struct {
	store  Store
	log    zerolog.Logger
	events chan SessionEvent
}

// NewRecorder builds a recorder over the given store.
func NewRecorder(st Store, logger *zerolog.Logger) *Recorder {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Recorder{
		store:  st,
		log:    logger.With().Str("component", "recorder").Logger(),
		events: make(chan SessionEvent, 256),
	}
}

// Record queues a journal entry. Safe on a nil receiver; never blocks.
func (r *Recorder) Record(ev SessionEvent) {
	if r == nil {
		return
	}
	select {
	case r.events <- ev:
	default:
		r.log.Warn().Str("room_id", ev.RoomID).Msg("journal buffer full, dropping entry")
	}
}

// Run applies queued entries until the context is cancelled.
func (r *Recorder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.events:
			r.apply(ctx, ev)
		}
	}
}

func (r *Recorder) apply(ctx context.Context, ev SessionEvent) {
	var err error
	switch ev.Kind {
	case SessionStarted:
		err = r.store.RecordSessionStart(ctx, ev.RoomID, ev.At)
	case SessionPeak:
		err = r.store.RecordPeakViewers(ctx, ev.RoomID, ev.Viewers)
	case SessionEnded:
		err = r.store.RecordSessionEnd(ctx, ev.RoomID, ev.At)
	}
	if err != nil {
		r.log.Error().Err(err).Str("room_id", ev.RoomID).Msg("write journal entry")
	}
}
