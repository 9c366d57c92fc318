package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/merchantlab/consult-go/domain/intent"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for consulting engine logging.

// SessionID adds a session ID field.
func SessionID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("session_id", id)
	}
}

// StoreID adds a store ID field.
func StoreID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("store_id", id)
	}
}

// IntentField adds the classified intent.
func IntentField(i intent.Intent) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("intent", string(i))
	}
}

// Node adds the graph node the turn is in.
func Node(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("node", name)
	}
}

// CapabilityName adds a capability name field.
func CapabilityName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("capability", name)
	}
}

// PlanSize adds the number of pending plan steps.
func PlanSize(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("plan_size", n)
	}
}

// Turn adds a negotiation or loop turn counter.
func Turn(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("turn", n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Cached adds a cached field.
func Cached(cached bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("cached", cached)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Str("error", err.Error())
	}
}

// LogEvent is a wrapper that allows adding Fields to a bolt.Event.
type LogEvent struct {
	event *bolt.Event
}

// NewEvent wraps a bolt.Event for field application.
func NewEvent(e *bolt.Event) *LogEvent {
	return &LogEvent{event: e}
}

// Add applies a field to the event and returns the wrapper for chaining.
func (l *LogEvent) Add(f Field) *LogEvent {
	l.event = f(l.event)
	return l
}

// Msg sends the log event with a message.
func (l *LogEvent) Msg(msg string) {
	l.event.Msg(msg)
}
