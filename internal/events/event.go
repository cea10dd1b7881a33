package events

import "time"

type Event struct {
	Type       string    `json:"type"`
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data,omitempty"`
}

func New(typ, id string, data any) Event {
	return Event{Type: typ, ID: id, OccurredAt: time.Now().UTC(), Data: data}
}
