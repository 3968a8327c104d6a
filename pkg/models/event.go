package models

import (
	"fmt"
	"time"
)

type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Start       time.Time `json:"start" db:"start_at"`
	End         time.Time `json:"end" db:"end_at"`
}

// EventDraft carries the mutable fields of an event on their way to the
// remote resource. An event gains an ID only after a successful create.
type EventDraft struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// EventRecord is the wire shape of an event: times travel as ISO-8601
// strings under start_time/end_time.
type EventRecord struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

func (e Event) Record() EventRecord {
	return EventRecord{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.Start.Format(time.RFC3339),
		EndTime:     e.End.Format(time.RFC3339),
	}
}

func (d EventDraft) Record() EventRecord {
	return EventRecord{
		Title:       d.Title,
		Description: d.Description,
		StartTime:   d.Start.Format(time.RFC3339),
		EndTime:     d.End.Format(time.RFC3339),
	}
}

func (r EventRecord) Event() (Event, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return Event{}, fmt.Errorf("err parsing start_time %q: %w", r.StartTime, err)
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return Event{}, fmt.Errorf("err parsing end_time %q: %w", r.EndTime, err)
	}
	return Event{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Start:       start,
		End:         end,
	}, nil
}

func (r EventRecord) Draft() (EventDraft, error) {
	event, err := r.Event()
	if err != nil {
		return EventDraft{}, err
	}
	return EventDraft{
		Title:       event.Title,
		Description: event.Description,
		Start:       event.Start,
		End:         event.End,
	}, nil
}
