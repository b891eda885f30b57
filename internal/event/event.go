package event

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"easel/internal/event/topic"
)

// Envelope carries a published event: its topic, a type-erased payload,
// and standard metadata. Envelopes are immutable once created.
type Envelope struct {
	// Topic is the hierarchical event type (e.g. "scene.object.added").
	Topic topic.Topic

	// Payload contains the event-specific data.
	Payload any

	// ID is a unique identifier for this event instance.
	ID string

	// Time is when the event was created.
	Time time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an envelope with the given topic and payload.
func New(eventTopic topic.Topic, payload any, source string) Envelope {
	return Envelope{
		Topic:   eventTopic,
		Payload: payload,
		ID:      generateID(),
		Time:    time.Now(),
		Source:  source,
	}
}

// generateID generates a unique event ID.
func generateID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// Fall back to a timestamp-derived ID if crypto/rand fails.
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
