// Package calendar turns widget gestures into calendar actions. The
// grid itself belongs to an external widget; this package owns the
// permission gating, the editor state machine, and the title-based
// event coloring.
package calendar

import (
	"context"
	"time"

	"github.com/schooldesk/classcal/pkg/models"
	"github.com/schooldesk/classcal/pkg/notifier"
	"github.com/schooldesk/classcal/pkg/permissions"
	"github.com/schooldesk/classcal/pkg/service"
	"github.com/sirupsen/logrus"
)

// Widget is the rendering contract of the external calendar library:
// it takes the events plus a per-event style callback, and shows a
// non-editable detail dialog on demand. The widget reports gestures
// back through the View's Handle* methods.
type Widget interface {
	Render(events []models.Event, style func(models.Event) Style)
	ShowDetail(title, description string)
}

type View struct {
	log      *logrus.Entry
	caps     permissions.Capabilities
	svc      *service.CalendarService
	widget   Widget
	notifier notifier.Notifier
	editor   *Editor
}

// NewView resolves the role's capabilities once; every gesture and the
// editor consult that single result.
func NewView(log *logrus.Logger, role string, svc *service.CalendarService, widget Widget, n notifier.Notifier) *View {
	caps := permissions.Allowed(role)
	v := View{
		log:      log.WithField("component", "calendar"),
		caps:     caps,
		svc:      svc,
		widget:   widget,
		notifier: n,
	}
	v.editor = newEditor(log, svc, caps, v.refresh)
	return &v
}

func (v *View) Editor() *Editor {
	return v.editor
}

// Load fetches the collection and renders it. Called once on mount; on
// failure the widget keeps showing whatever was rendered last.
func (v *View) Load(ctx context.Context) error {
	if err := v.svc.Reload(ctx); err != nil {
		return err
	}
	v.refresh()
	return nil
}

// HandleSlotSelect opens the editor over an empty slot. Selection is
// disabled entirely for read-only roles, so the denied branch is a
// silent no-op rather than a notice.
func (v *View) HandleSlotSelect(start, end time.Time) {
	if !v.caps.Create {
		return
	}
	v.editor.OpenDraft(start, end)
}

// HandleEventClick opens the editor on the clicked event, or a
// read-only detail dialog when the role cannot edit.
func (v *View) HandleEventClick(id string) {
	event, err := v.svc.Store().Get(id)
	if err != nil {
		v.log.Warnf("clicked event %s not in store: %v", id, err)
		return
	}
	if !v.caps.Edit {
		v.widget.ShowDetail(event.Title, event.Description)
		return
	}
	v.editor.OpenEvent(event)
}

func (v *View) HandleEventDrop(ctx context.Context, id string, start, end time.Time) {
	if !v.caps.Move {
		v.notifier.Error(ctx, "You cannot move this event.")
		return
	}
	if err := v.svc.MoveEvent(ctx, id, start, end); err != nil {
		v.log.Warnf("err moving event %s: %v", id, err)
	}
	v.refresh()
}

func (v *View) HandleEventResize(ctx context.Context, id string, start, end time.Time) {
	if !v.caps.Resize {
		v.notifier.Error(ctx, "You cannot resize this event.")
		return
	}
	if err := v.svc.ResizeEvent(ctx, id, start, end); err != nil {
		v.log.Warnf("err resizing event %s: %v", id, err)
	}
	v.refresh()
}

func (v *View) StyleFor(event models.Event) Style {
	return Classify(event.Title).Style()
}

func (v *View) refresh() {
	v.widget.Render(v.svc.Store().Snapshot(), v.StyleFor)
}
