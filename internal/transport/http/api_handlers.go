package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirecast-server/internal/core"
	"github.com/vovakirdan/wirecast-server/internal/store"
)

// APIHandlers provides read-only REST endpoints over live rooms and the
// session journal.
type APIHandlers struct {
	hub   *core.Hub
	store store.Store
	log   *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, st store.Store, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub:   hub,
		store: st,
		log:   logger,
	}
}

// ErrorResponse is the JSON error body for REST endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RoomResponse is a live room snapshot in API responses. The sender
// identity is not exposed; it is only handed to admitted viewers.
type RoomResponse struct {
	ID        string `json:"id"`
	Viewers   int    `json:"viewers"`
	Protected bool   `json:"protected"`
}

// SessionResponse is one journal entry in API responses.
type SessionResponse struct {
	RoomID      string  `json:"room_id"`
	StartedAt   string  `json:"started_at"`
	EndedAt     *string `json:"ended_at,omitempty"`
	PeakViewers int     `json:"peak_viewers"`
}

// GetRoom handles a live room lookup.
// GET /api/rooms/:id
func (h *APIHandlers) GetRoom(c *gin.Context) {
	id := c.Param("id")

	info, ok := h.hub.RoomInfo(c.Request.Context(), id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
		return
	}

	c.JSON(http.StatusOK, RoomResponse{
		ID:        info.ID,
		Viewers:   info.Viewers,
		Protected: info.Protected,
	})
}

// ListSessions handles listing recent broadcast sessions.
// GET /api/sessions?limit=N
func (h *APIHandlers) ListSessions(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 200 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	sessions, err := h.store.ListSessions(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list sessions")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		item := SessionResponse{
			RoomID:      sess.RoomID,
			StartedAt:   sess.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			PeakViewers: sess.PeakViewers,
		}
		if sess.EndedAt != nil {
			ended := sess.EndedAt.Format("2006-01-02T15:04:05Z07:00")
			item.EndedAt = &ended
		}
		response = append(response, item)
	}

	c.JSON(http.StatusOK, response)
}
