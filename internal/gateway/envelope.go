package gateway

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/internal/draft"
)

// Envelope is the wire form of a draft event, shared by the WebSocket feed
// and the NATS publisher.
type Envelope struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	UserID    string          `json:"userId,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// newEnvelope wraps an engine event with an id and timestamp.
func newEnvelope(event draft.Event, now time.Time) (Envelope, error) {
	env := Envelope{
		ID:        uuid.New().String(),
		Type:      event.Type,
		Timestamp: now.UTC(),
		UserID:    event.UserID,
	}
	if event.Payload != nil {
		data, err := json.Marshal(event.Payload)
		if err != nil {
			return Envelope{}, err
		}
		env.Data = data
	}
	return env, nil
}

// Fanout publishes an event to several publishers in order. It satisfies
// draft.EventPublisher itself.
type Fanout []draft.EventPublisher

// Publish implements draft.EventPublisher.
func (f Fanout) Publish(event draft.Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(event)
		}
	}
}
