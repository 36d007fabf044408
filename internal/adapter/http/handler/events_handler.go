package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/infrastructure/eventbus"
)

// EventsHandler streams a trip's live events over server-sent events.
// The stream carries invalidation hints only; clients that miss an
// event recover by refetching, so there is no replay on connect.
type EventsHandler struct {
	bus    eventbus.Bus
	logger zerolog.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(bus eventbus.Bus, logger zerolog.Logger) *EventsHandler {
	return &EventsHandler{bus: bus, logger: logger}
}

// Stream subscribes the caller to a trip's event channel and forwards
// events until the client disconnects.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, codeInternalError, "streaming unsupported")
		return
	}

	// The server's write timeout would sever long-lived streams, so
	// lift the deadline for this connection only.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug().Err(err).Msg("failed to clear write deadline")
	}

	tripID := chi.URLParam(r, "id")

	sub, err := h.bus.Subscribe(r.Context(), tripID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub.Events():
			if !open {
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				h.logger.Warn().Err(err).Str("trip_id", tripID).Msg("failed to encode event")
				continue
			}

			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()
		}
	}
}
