// Package eventstore holds the events loaded for the visible calendar.
// The collection is rebuilt from a full list on every reload and mutated
// locally after each confirmed remote operation; uniqueness is by id.
package eventstore

import (
	"sort"
	"sync"
	"time"

	"github.com/schooldesk/classcal/pkg/models"
	"github.com/sirupsen/logrus"
)

type Store struct {
	log    *logrus.Entry
	mu     sync.RWMutex
	events map[string]models.Event
}

func New(log *logrus.Logger) *Store {
	return &Store{
		log:    log.WithField("component", "eventstore"),
		events: make(map[string]models.Event),
	}
}

// ReplaceAll swaps the whole collection for the given events, dropping
// anything previously held.
func (s *Store) ReplaceAll(events []models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]models.Event, len(events))
	for _, event := range events {
		s.events[event.ID] = event
	}
	s.log.Debugf("loaded %d events", len(events))
}

// Snapshot returns the events ordered by start time (then id, for a
// stable render order).
func (s *Store) Snapshot() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]models.Event, 0, len(s.events))
	for _, event := range s.events {
		result = append(result, event)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Start.Before(result[j].Start)
	})
	return result
}

func (s *Store) Get(id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	event, ok := s.events[id]
	if !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	return event, nil
}

func (s *Store) Upsert(event models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
}

// SetSpan rewrites the start/end of the event with the given id and
// returns the event as it was before, so a failed remote confirmation
// can put it back.
func (s *Store) SetSpan(id string, start, end time.Time) (models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.events[id]
	if !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	moved := prev
	moved.Start = start
	moved.End = end
	s.events[id] = moved
	return prev, nil
}

func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return models.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
