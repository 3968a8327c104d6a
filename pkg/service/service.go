package service

import (
	"context"
	"fmt"
	"time"

	"github.com/schooldesk/classcal/pkg/eventstore"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/schooldesk/classcal/pkg/notifier"
	"github.com/sirupsen/logrus"
)

// Remote is the events resource of the portal backend. Every call is a
// single request with a single terminal outcome; no retries here.
type Remote interface {
	List(ctx context.Context) ([]models.Event, error)
	Create(ctx context.Context, draft models.EventDraft) (models.Event, error)
	Update(ctx context.Context, id string, draft models.EventDraft) error
	Delete(ctx context.Context, id string) error
}

// CalendarService keeps the local event collection in step with the
// remote resource. Create/update/delete touch the store only after the
// remote call succeeds; move/resize apply optimistically and roll back
// to the pre-move snapshot on failure.
type CalendarService struct {
	log      *logrus.Entry
	store    *eventstore.Store
	remote   Remote
	notifier notifier.Notifier
}

func NewCalendarService(log *logrus.Logger, store *eventstore.Store, remote Remote, n notifier.Notifier) *CalendarService {
	s := CalendarService{
		log:      log.WithField("component", "service"),
		store:    store,
		remote:   remote,
		notifier: n,
	}
	return &s
}

func (s *CalendarService) Store() *eventstore.Store {
	return s.store
}

// Reload refetches the whole collection. On failure the store keeps its
// last-known-good contents.
func (s *CalendarService) Reload(ctx context.Context) error {
	events, err := s.remote.List(ctx)
	if err != nil {
		s.notifier.Error(ctx, "Error loading events.")
		return fmt.Errorf("err loading events: %w", err)
	}
	s.store.ReplaceAll(events)
	return nil
}

func (s *CalendarService) CreateEvent(ctx context.Context, draft models.EventDraft) (models.Event, error) {
	created, err := s.remote.Create(ctx, draft)
	if err != nil {
		s.notifier.Error(ctx, "Error saving event.")
		return models.Event{}, fmt.Errorf("err creating event: %w", err)
	}
	s.store.Upsert(created)
	s.notifier.Info(ctx, "Event created.")
	return created, nil
}

func (s *CalendarService) UpdateEvent(ctx context.Context, id string, draft models.EventDraft) error {
	if err := s.remote.Update(ctx, id, draft); err != nil {
		s.notifier.Error(ctx, "Error saving event.")
		return fmt.Errorf("err updating event %s: %w", id, err)
	}
	s.store.Upsert(models.Event{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Start:       draft.Start,
		End:         draft.End,
	})
	s.notifier.Info(ctx, "Event saved.")
	return nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.remote.Delete(ctx, id); err != nil {
		s.notifier.Error(ctx, "Error deleting event.")
		return fmt.Errorf("err deleting event %s: %w", id, err)
	}
	if err := s.store.Remove(id); err != nil {
		s.log.Warnf("deleted event %s was not in store: %v", id, err)
	}
	s.notifier.Info(ctx, "Event deleted.")
	return nil
}

// MoveEvent rewrites the event span in the store before the remote call
// resolves, so the calendar stays responsive under a drag. A failed
// confirmation restores the pre-move snapshot.
func (s *CalendarService) MoveEvent(ctx context.Context, id string, start, end time.Time) error {
	return s.reschedule(ctx, "moving", id, start, end)
}

// ResizeEvent is MoveEvent for edge drags; same optimistic contract.
func (s *CalendarService) ResizeEvent(ctx context.Context, id string, start, end time.Time) error {
	return s.reschedule(ctx, "resizing", id, start, end)
}

func (s *CalendarService) reschedule(ctx context.Context, action, id string, start, end time.Time) error {
	prev, err := s.store.SetSpan(id, start, end)
	if err != nil {
		s.notifier.Error(ctx, "Error "+action+" event.")
		return fmt.Errorf("err %s event %s: %w", action, id, err)
	}
	draft := models.EventDraft{
		Title:       prev.Title,
		Description: prev.Description,
		Start:       start,
		End:         end,
	}
	if err = s.remote.Update(ctx, id, draft); err != nil {
		s.store.Upsert(prev)
		s.notifier.Error(ctx, "Error "+action+" event.")
		return fmt.Errorf("err %s event %s: %w", action, id, err)
	}
	s.notifier.Info(ctx, "Event saved.")
	return nil
}
