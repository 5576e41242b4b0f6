// Package sse implements Server-Sent Events for live tag list updates.
package sse

import (
	"time"

	"github.com/tagdesk/tagdesk-server/internal/domain"
	"github.com/tagdesk/tagdesk-server/internal/id"
)

// Presentation layers refetch their current query when they see tag.created.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventConnected is written once when a client subscribes.
	EventConnected EventType = "connected"
	// EventTagCreated is broadcast after a tag has been durably appended.
	EventTagCreated EventType = "tag.created"
	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Type      EventType `json:"type"`
	ID        string    `json:"id"`
}

// TagCreatedData is the payload of a tag.created event.
type TagCreatedData struct {
	Tag domain.Tag `json:"tag"`
}

// HeartbeatData is the payload of a heartbeat event.
type HeartbeatData struct {
	ServerTime time.Time `json:"server_time"`
}

// ConnectedData is the payload of the connected event.
type ConnectedData struct {
	ClientID string `json:"client_id"`
	Message  string `json:"message"`
}

func newEvent(t EventType, data any) Event {
	return Event{
		ID:        id.NewEventID(),
		Type:      t,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewTagCreatedEvent creates a tag.created event.
func NewTagCreatedEvent(tag domain.Tag) Event {
	return newEvent(EventTagCreated, TagCreatedData{Tag: tag})
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return newEvent(EventHeartbeat, HeartbeatData{ServerTime: time.Now()})
}

// NewConnectedEvent creates the greeting sent to a new client.
func NewConnectedEvent(clientID string) Event {
	return newEvent(EventConnected, ConnectedData{
		ClientID: clientID,
		Message:  "SSE connection established",
	})
}
