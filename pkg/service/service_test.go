package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/schooldesk/classcal/pkg/eventstore"
	"github.com/schooldesk/classcal/pkg/logger"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/schooldesk/classcal/pkg/notifier"
	"github.com/schooldesk/classcal/pkg/service"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC)
	t1 = time.Date(2023, 9, 1, 11, 0, 0, 0, time.UTC)

	errRemote = errors.New("boom")
)

type fakeRemote struct {
	list   func(ctx context.Context) ([]models.Event, error)
	create func(ctx context.Context, draft models.EventDraft) (models.Event, error)
	update func(ctx context.Context, id string, draft models.EventDraft) error
	del    func(ctx context.Context, id string) error

	calls int
}

func (f *fakeRemote) List(ctx context.Context) ([]models.Event, error) {
	f.calls++
	if f.list == nil {
		return nil, nil
	}
	return f.list(ctx)
}

func (f *fakeRemote) Create(ctx context.Context, draft models.EventDraft) (models.Event, error) {
	f.calls++
	if f.create == nil {
		return models.Event{}, nil
	}
	return f.create(ctx, draft)
}

func (f *fakeRemote) Update(ctx context.Context, id string, draft models.EventDraft) error {
	f.calls++
	if f.update == nil {
		return nil
	}
	return f.update(ctx, id, draft)
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.calls++
	if f.del == nil {
		return nil
	}
	return f.del(ctx, id)
}

func newService(remote *fakeRemote) (*service.CalendarService, *eventstore.Store, *notifier.Recorder) {
	log := logger.New()
	store := eventstore.New(log)
	recorder := notifier.NewRecorder()
	svc := service.NewCalendarService(log, store, remote, recorder)
	return svc, store, recorder
}

func TestReloadReplacesStore(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{list: func(context.Context) ([]models.Event, error) {
		return []models.Event{{ID: "1", Title: "Assembly", Start: t0, End: t1}}, nil
	}}
	svc, store, _ := newService(remote)
	store.Upsert(models.Event{ID: "stale", Start: t0, End: t1})

	require.NoError(t, svc.Reload(ctx))
	require.Equal(t, 1, store.Len())
	_, err := store.Get("1")
	require.NoError(t, err)
}

func TestReloadFailureKeepsLastKnownGood(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{list: func(context.Context) ([]models.Event, error) {
		return nil, errRemote
	}}
	svc, store, recorder := newService(remote)
	store.Upsert(models.Event{ID: "1", Title: "Assembly", Start: t0, End: t1})

	require.Error(t, svc.Reload(ctx))
	require.Equal(t, 1, store.Len())
	require.Len(t, recorder.Errors(), 1)
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	draft := models.EventDraft{Title: "Math Test", Description: "Ch.1-3", Start: t0, End: t1}
	remote := &fakeRemote{create: func(_ context.Context, d models.EventDraft) (models.Event, error) {
		return models.Event{ID: "42", Title: d.Title, Description: d.Description, Start: d.Start, End: d.End}, nil
	}}
	svc, store, recorder := newService(remote)

	created, err := svc.CreateEvent(ctx, draft)
	require.NoError(t, err)
	require.Equal(t, "42", created.ID)
	require.Equal(t, 1, store.Len())
	event, err := store.Get("42")
	require.NoError(t, err)
	require.Equal(t, "Math Test", event.Title)
	require.Equal(t, "Ch.1-3", event.Description)
	require.Equal(t, t0, event.Start)
	require.Equal(t, t1, event.End)
	require.Len(t, recorder.Infos(), 1)
	require.Empty(t, recorder.Errors())
}

func TestCreateEventFailure(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{create: func(context.Context, models.EventDraft) (models.Event, error) {
		return models.Event{}, errRemote
	}}
	svc, store, recorder := newService(remote)

	_, err := svc.CreateEvent(ctx, models.EventDraft{Title: "Math Test", Start: t0, End: t1})
	require.Error(t, err)
	require.Equal(t, 0, store.Len())
	require.Len(t, recorder.Errors(), 1)
	require.Empty(t, recorder.Infos())
}

func TestUpdateEventTouchesOnlyTarget(t *testing.T) {
	ctx := context.Background()
	svc, store, recorder := newService(&fakeRemote{})
	store.Upsert(models.Event{ID: "7", Title: "Old", Start: t0, End: t1})
	store.Upsert(models.Event{ID: "8", Title: "Other", Start: t0, End: t1})

	err := svc.UpdateEvent(ctx, "7", models.EventDraft{Title: "New", Start: t0, End: t1})
	require.NoError(t, err)
	updated, err := store.Get("7")
	require.NoError(t, err)
	require.Equal(t, "New", updated.Title)
	other, err := store.Get("8")
	require.NoError(t, err)
	require.Equal(t, "Other", other.Title)
	require.Len(t, recorder.Infos(), 1)
}

func TestUpdateEventFailureLeavesStore(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{update: func(context.Context, string, models.EventDraft) error {
		return errRemote
	}}
	svc, store, recorder := newService(remote)
	store.Upsert(models.Event{ID: "7", Title: "Old", Start: t0, End: t1})

	err := svc.UpdateEvent(ctx, "7", models.EventDraft{Title: "New", Start: t0, End: t1})
	require.Error(t, err)
	event, err := store.Get("7")
	require.NoError(t, err)
	require.Equal(t, "Old", event.Title)
	require.Len(t, recorder.Errors(), 1)
	require.Empty(t, recorder.Infos())
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	svc, store, recorder := newService(&fakeRemote{})
	store.Upsert(models.Event{ID: "7", Start: t0, End: t1})
	store.Upsert(models.Event{ID: "8", Start: t0, End: t1})

	require.NoError(t, svc.DeleteEvent(ctx, "7"))
	require.Equal(t, 1, store.Len())
	_, err := store.Get("8")
	require.NoError(t, err)
	require.Len(t, recorder.Infos(), 1)
}

func TestDeleteEventFailureLeavesStore(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{del: func(context.Context, string) error {
		return errRemote
	}}
	svc, store, recorder := newService(remote)
	store.Upsert(models.Event{ID: "7", Start: t0, End: t1})

	require.Error(t, svc.DeleteEvent(ctx, "7"))
	require.Equal(t, 1, store.Len())
	require.Len(t, recorder.Errors(), 1)
}

func TestMoveEventAppliesBeforeRemoteResolves(t *testing.T) {
	ctx := context.Background()
	newStart, newEnd := t0.Add(2*time.Hour), t1.Add(2*time.Hour)

	log := logger.New()
	store := eventstore.New(log)
	recorder := notifier.NewRecorder()
	var spanDuringUpdate [2]time.Time
	remote := &fakeRemote{update: func(_ context.Context, id string, draft models.EventDraft) error {
		// The store must already reflect the new span while the
		// remote confirmation is still in flight.
		event, err := store.Get(id)
		require.NoError(t, err)
		spanDuringUpdate = [2]time.Time{event.Start, event.End}
		require.Equal(t, "Lesson", draft.Title)
		return nil
	}}
	svc := service.NewCalendarService(log, store, remote, recorder)
	store.Upsert(models.Event{ID: "7", Title: "Lesson", Start: t0, End: t1})

	require.NoError(t, svc.MoveEvent(ctx, "7", newStart, newEnd))
	require.Equal(t, [2]time.Time{newStart, newEnd}, spanDuringUpdate)
	moved, err := store.Get("7")
	require.NoError(t, err)
	require.Equal(t, newStart, moved.Start)
	require.Equal(t, newEnd, moved.End)
	require.Len(t, recorder.Infos(), 1)
}

func TestMoveEventRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{update: func(context.Context, string, models.EventDraft) error {
		return errRemote
	}}
	svc, store, recorder := newService(remote)
	store.Upsert(models.Event{ID: "7", Title: "Lesson", Start: t0, End: t1})

	require.Error(t, svc.MoveEvent(ctx, "7", t0.Add(time.Hour), t1.Add(time.Hour)))
	event, err := store.Get("7")
	require.NoError(t, err)
	require.Equal(t, t0, event.Start)
	require.Equal(t, t1, event.End)
	require.Len(t, recorder.Errors(), 1)
	require.Empty(t, recorder.Infos())
}

func TestResizeEventKeepsTitleAndDescription(t *testing.T) {
	ctx := context.Background()
	var sent models.EventDraft
	remote := &fakeRemote{update: func(_ context.Context, _ string, draft models.EventDraft) error {
		sent = draft
		return nil
	}}
	svc, store, _ := newService(remote)
	store.Upsert(models.Event{ID: "7", Title: "Lesson", Description: "Room 12", Start: t0, End: t1})

	require.NoError(t, svc.ResizeEvent(ctx, "7", t0, t1.Add(time.Hour)))
	require.Equal(t, "Lesson", sent.Title)
	require.Equal(t, "Room 12", sent.Description)
	require.Equal(t, t1.Add(time.Hour), sent.End)
}

func TestRescheduleMissingEventSkipsRemote(t *testing.T) {
	ctx := context.Background()
	remote := &fakeRemote{}
	svc, _, recorder := newService(remote)

	require.Error(t, svc.MoveEvent(ctx, "ghost", t0, t1))
	require.Equal(t, 0, remote.calls)
	require.Len(t, recorder.Errors(), 1)
}
