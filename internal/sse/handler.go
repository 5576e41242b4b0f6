package sse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	domainerrors "github.com/tagdesk/tagdesk-server/internal/errors"
	"github.com/tagdesk/tagdesk-server/internal/http/response"
)

// writeTimeout bounds how long a single event write may block.
const writeTimeout = 60 * time.Second

// Handler streams events at GET /events.
type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

// NewHandler creates a new SSE Handler.
func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// ServeHTTP subscribes the caller and streams events until either side goes away.
// Errors before the stream starts are written as JSON error bodies.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.MethodNotAllowed(w, "Only GET is supported on the event stream.", h.logger)
		return
	}
	if r.Context().Err() != nil {
		return
	}
	if h.manager.IsShutdown() {
		response.Error(w, http.StatusServiceUnavailable, domainerrors.CodeInternal, "Server is shutting down.", h.logger)
		return
	}

	client, err := h.manager.Connect()
	if err != nil {
		response.HandleError(w, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to open event stream."), h.logger)
		return
	}
	defer h.manager.Disconnect(client.ID)

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)

	log := h.logger.With("client_id", client.ID, "remote_addr", r.RemoteAddr)

	if err := h.send(w, rc, NewConnectedEvent(client.ID)); err != nil {
		log.Warn("event stream not writable", "error", err)
		return
	}
	log.Debug("event stream opened")

	for {
		select {
		case event, ok := <-client.EventChan:
			if !ok {
				log.Debug("event stream closed by manager")
				return
			}
			if err := h.send(w, rc, event); err != nil {
				log.Debug("event stream write failed", "event_type", event.Type, "error", err)
				return
			}
		case <-client.Done:
			log.Debug("event stream closed by manager")
			return
		case <-r.Context().Done():
			log.Debug("event stream closed by client")
			return
		}
	}
}

// send frames one event as id/event/data lines and flushes it to the client.
func (h *Handler) send(w http.ResponseWriter, rc *http.ResponseController, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Type, payload); err != nil {
		return err
	}
	if err := rc.Flush(); err != nil {
		return err
	}

	// httptest.ResponseRecorder has no deadlines.
	if err := rc.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil && !isUnsupported(err) {
		return err
	}
	return nil
}

func isUnsupported(err error) bool {
	return domainerrors.Is(err, http.ErrNotSupported)
}
