package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/sirupsen/logrus"
)

// MemStore is the in-process events table: enough backend for the tests
// and for running the demo without postgres.
type MemStore struct {
	log    *logrus.Entry
	mu     sync.RWMutex
	events map[string]models.Event
}

func NewMemStore(log *logrus.Logger) *MemStore {
	return &MemStore{
		log:    log.WithField("component", "memstore"),
		events: make(map[string]models.Event),
	}
}

func (m *MemStore) ListEvents(_ context.Context) ([]models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]models.Event, 0, len(m.events))
	for _, event := range m.events {
		events = append(events, event)
	}
	return events, nil
}

func (m *MemStore) CreateEvent(_ context.Context, draft models.EventDraft) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event := models.Event{
		ID:          uuid.NewString(),
		Title:       draft.Title,
		Description: draft.Description,
		Start:       draft.Start,
		End:         draft.End,
	}
	m.events[event.ID] = event
	return event, nil
}

func (m *MemStore) UpdateEvent(_ context.Context, id string, draft models.EventDraft) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	event := models.Event{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Start:       draft.Start,
		End:         draft.End,
	}
	m.events[id] = event
	return event, nil
}

func (m *MemStore) DeleteEvent(_ context.Context, id string) (models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	delete(m.events, id)
	return event, nil
}
