package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/schooldesk/classcal/pkg/models"
	"github.com/schooldesk/classcal/pkg/permissions"
	"github.com/schooldesk/classcal/pkg/service"
	"github.com/sirupsen/logrus"
)

type EditorState int

const (
	StateClosed EditorState = iota
	StateOpen
	StateSaving
)

var ErrEditorClosed = errors.New("editor is not open")

// Editor collects the fields of one event for create or edit. A save is
// atomic from the caller's point of view: one remote call, then either
// Closed (success) or back to Open (failure, fields kept).
//
// The span always comes from the triggering gesture; the editor shows
// it but never lets the user re-enter dates by hand.
type Editor struct {
	log   *logrus.Entry
	svc   *service.CalendarService
	caps  permissions.Capabilities
	saved func()

	state   EditorState
	eventID string

	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

func newEditor(log *logrus.Logger, svc *service.CalendarService, caps permissions.Capabilities, saved func()) *Editor {
	return &Editor{
		log:   log.WithField("component", "editor"),
		svc:   svc,
		caps:  caps,
		saved: saved,
	}
}

func (e *Editor) State() EditorState {
	return e.state
}

// Editing reports whether the editor holds a persisted event, as
// opposed to an unsaved draft.
func (e *Editor) Editing() bool {
	return e.eventID != ""
}

// CanDelete gates the delete affordance: edit mode only, and only for
// roles that may delete.
func (e *Editor) CanDelete() bool {
	return e.Editing() && e.caps.Delete
}

func (e *Editor) OpenDraft(start, end time.Time) {
	e.state = StateOpen
	e.eventID = ""
	e.Title = ""
	e.Description = ""
	e.Start = start
	e.End = end
}

func (e *Editor) OpenEvent(event models.Event) {
	e.state = StateOpen
	e.eventID = event.ID
	e.Title = event.Title
	e.Description = event.Description
	e.Start = event.Start
	e.End = event.End
}

func (e *Editor) Cancel() {
	e.state = StateClosed
}

// Submit persists the current fields. Empty titles are accepted as-is.
func (e *Editor) Submit(ctx context.Context) error {
	if e.state != StateOpen {
		return ErrEditorClosed
	}
	e.state = StateSaving
	draft := models.EventDraft{
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
	}
	var err error
	if e.Editing() {
		err = e.svc.UpdateEvent(ctx, e.eventID, draft)
	} else {
		_, err = e.svc.CreateEvent(ctx, draft)
	}
	if err != nil {
		e.state = StateOpen
		return err
	}
	e.state = StateClosed
	e.saved()
	return nil
}

func (e *Editor) Delete(ctx context.Context) error {
	if e.state != StateOpen {
		return ErrEditorClosed
	}
	if !e.CanDelete() {
		return errors.New("delete is not available")
	}
	e.state = StateSaving
	if err := e.svc.DeleteEvent(ctx, e.eventID); err != nil {
		e.state = StateOpen
		return err
	}
	e.state = StateClosed
	e.saved()
	return nil
}
