package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vovakirdan/wirecast-server/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	room_id      TEXT NOT NULL,
	started_at   TIMESTAMP NOT NULL,
	ended_at     TIMESTAMP,
	peak_viewers INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_sessions_room ON sessions(room_id);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New opens (and if needed initializes) the session journal at dbPath.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordSessionStart inserts a new live session row for the room.
func (s *SQLiteStore) RecordSessionStart(ctx context.Context, roomID string, at time.Time) error {
	query := `INSERT INTO sessions (room_id, started_at) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, roomID, at.UTC()); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordSessionEnd stamps the live session of the room as ended.
func (s *SQLiteStore) RecordSessionEnd(ctx context.Context, roomID string, at time.Time) error {
	query := `UPDATE sessions SET ended_at = ? WHERE room_id = ? AND ended_at IS NULL`
	if _, err := s.db.ExecContext(ctx, query, at.UTC(), roomID); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// RecordPeakViewers raises the live session's peak viewer count if viewers
// exceeds the stored value.
func (s *SQLiteStore) RecordPeakViewers(ctx context.Context, roomID string, viewers int) error {
	query := `UPDATE sessions SET peak_viewers = MAX(peak_viewers, ?) WHERE room_id = ? AND ended_at IS NULL`
	if _, err := s.db.ExecContext(ctx, query, viewers, roomID); err != nil {
		return fmt.Errorf("update peak viewers: %w", err)
	}
	return nil
}

// ListSessions returns the most recently started sessions, newest first.
func (s *SQLiteStore) ListSessions(ctx context.Context, limit int) ([]store.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, room_id, started_at, ended_at, peak_viewers
		FROM sessions
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]store.Session, 0, limit)
	for rows.Next() {
		var sess store.Session
		var endedAt sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.RoomID, &sess.StartedAt, &endedAt, &sess.PeakViewers); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if endedAt.Valid {
			t := endedAt.Time
			sess.EndedAt = &t
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
