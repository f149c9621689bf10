package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Type enumerates supported event kinds.
type Type string

const (
	TypeCategorized Type = "expense.categorized"
	TypeAnswered    Type = "query.answered"
)

// Event records that a request completed. Events are fire-and-forget; this
// service never reads them back.
type Event struct {
	ID       uuid.UUID `json:"id"`
	Type     Type      `json:"type"`
	Category string    `json:"category,omitempty"`
	Degraded bool      `json:"degraded"`
	At       time.Time `json:"at"`
}

// New stamps an event with a fresh ID and the current time.
func New(t Type) Event {
	return Event{ID: uuid.New(), Type: t, At: time.Now().UTC()}
}

// Publisher exposes a minimal contract to emit events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
