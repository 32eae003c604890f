package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	fm "transcriptfolder/internal/domain/models/filemanager"
	"transcriptfolder/internal/handler/sse"
)

// notificationPayload is an event with its human-readable text
type notificationPayload struct {
	fm.Event
	Title       string `json:"title"`
	Description string `json:"description"`
}

// EventsHandler streams session events via Server-Sent Events
type EventsHandler struct {
	files  *FileManagerHandler
	config *sse.Config
	logger *slog.Logger
}

// NewEventsHandler creates a new events handler. cfg may be nil.
func NewEventsHandler(files *FileManagerHandler, cfg *sse.Config, logger *slog.Logger) *EventsHandler {
	if cfg == nil {
		cfg = sse.DefaultConfig()
	}
	return &EventsHandler{files: files, config: cfg, logger: logger}
}

// Stream handles GET /api/events
// The first event is the current view. Every later view change sends a fresh
// view; other notifications are sent under their own event type.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	s, ok := h.files.session(w, r)
	if !ok {
		return
	}

	// Subscribe before the initial snapshot so no change falls in between
	events, cancel := s.SubscribeEvents(h.config.Buffer)
	defer cancel()

	clientID := uuid.New().String()
	logger := h.logger.With("client_id", clientID, "actor_id", s.Actor().ID)

	stream, err := sse.NewWriter(w)
	if err != nil {
		logger.Error("SSE stream not supported", "error", err)
		return
	}
	logger.Debug("SSE stream established")

	snap := s.Snapshot()
	if err := stream.WriteEvent("view", revisionID(snap.Revision), newViewResponse(snap, h.files.now())); err != nil {
		logger.Info("client disconnected during initial view", "error", err)
		return
	}
	sent := snap.Revision

	keepAlive := sse.NewTickerKeepAlive(h.config.KeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Debug("SSE client went away")
			return

		case event, ok := <-events:
			if !ok {
				logger.Debug("session closed, ending stream")
				return
			}

			if event.Type == fm.EventViewChanged {
				snap := s.Snapshot()
				// Several changes may collapse into one snapshot
				if snap.Revision <= sent {
					continue
				}
				sent = snap.Revision
				err = stream.WriteEvent("view", revisionID(snap.Revision), newViewResponse(snap, h.files.now()))
			} else {
				err = stream.WriteEvent(string(event.Type), "", notificationPayload{
					Event:       event,
					Title:       event.Title(),
					Description: event.Description(),
				})
			}
			if err != nil {
				logger.Info("client disconnected during event write", "error", err)
				return
			}

		case <-keepAlive.Ticks():
			if err := stream.WriteKeepAlive(); err != nil {
				logger.Info("client disconnected during keepalive", "error", err)
				return
			}
		}
	}
}

func revisionID(rev uint64) string {
	return strconv.FormatUint(rev, 10)
}
