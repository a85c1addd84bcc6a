// Package event provides a small synchronous pub/sub bus used to fan
// out calculator activity (operations applied, undone, rejected) to
// observers such as the session transcript and debug logging.
//
// Topics use dot-notation. Subscription patterns may end in a single
// trailing "*" segment, which matches exactly one segment, or "**",
// which matches any remainder.
package event

import (
	"time"

	"github.com/google/uuid"
)

// Calculator event topics.
const (
	TopicOpApplied      = "calc.op.applied"
	TopicOpUndone       = "calc.op.undone"
	TopicOpRejected     = "calc.op.rejected"
	TopicBatchCompleted = "calc.batch.completed"
	TopicConfigReloaded = "config.reloaded"
)

// Event is a single published occurrence. Events are immutable once
// created.
type Event struct {
	// Topic is the hierarchical event type (e.g., "calc.op.applied").
	Topic string

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the module that published the event.
	Source string
}

// New creates an event with generated metadata.
func New(topic string, payload any, source string) Event {
	return Event{
		Topic:   topic,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// OpApplied is the payload for TopicOpApplied.
type OpApplied struct {
	Token string
	Kind  string
	Prior int
	Value int
}

// OpUndone is the payload for TopicOpUndone.
type OpUndone struct {
	Token string
	Value int
}

// OpRejected is the payload for TopicOpRejected.
type OpRejected struct {
	Token  string
	Reason string
}

// BatchCompleted is the payload for TopicBatchCompleted.
type BatchCompleted struct {
	Tokens int
	Value  int
}

// ConfigReloaded is the payload for TopicConfigReloaded.
type ConfigReloaded struct {
	Path string
}
