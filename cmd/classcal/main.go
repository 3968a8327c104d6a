// Command classcal runs a scripted portal session against an in-process
// events server: load the calendar, create an event from a slot
// selection, edit it, drag it, and delete it. Useful as a smoke check
// and as a wiring example for the calendar packages.
package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/schooldesk/classcal/internal/remote"
	"github.com/schooldesk/classcal/internal/rest"
	"github.com/schooldesk/classcal/internal/telegram"
	"github.com/schooldesk/classcal/pkg/calendar"
	"github.com/schooldesk/classcal/pkg/eventstore"
	"github.com/schooldesk/classcal/pkg/logger"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/schooldesk/classcal/pkg/notifier"
	"github.com/schooldesk/classcal/pkg/service"
	"github.com/sirupsen/logrus"
)

const version = "0.0.1"

var (
	address  = lookupEnv("ADDRESS", ":8080")
	baseURL  = lookupEnv("BASE_URL", "http://localhost:8080")
	secret   = lookupEnv("JWT_SECRET", "classcal-dev-secret")
	tgToken  = os.Getenv("TG_TOKEN")
	tgChatID = os.Getenv("TG_CHAT_ID")
)

func main() {
	log := logger.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := rest.NewServer(log, rest.NewMemStore(log), address, version, []byte(secret))
	go func() {
		if err := server.Run(ctx); err != nil {
			log.Panic(err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	token, err := rest.IssueToken(1, models.RoleTeacher, []byte(secret))
	if err != nil {
		log.Panic(err)
	}

	toasts := sessionNotifier(log)
	store := eventstore.New(log)
	client := remote.New(log, baseURL, token)
	svc := service.NewCalendarService(log, store, client, toasts)
	view := calendar.NewView(log, models.RoleTeacher, svc, &logWidget{log: log.WithField("component", "widget")}, toasts)

	if err = view.Load(ctx); err != nil {
		log.Panic(err)
	}

	start := time.Now().Truncate(time.Hour).Add(24 * time.Hour)
	end := start.Add(time.Hour)

	view.HandleSlotSelect(start, end)
	editor := view.Editor()
	editor.Title = "Math Exam"
	editor.Description = "Ch. 1-3"
	if err = editor.Submit(ctx); err != nil {
		log.Panic(err)
	}

	events := store.Snapshot()
	created := events[len(events)-1]

	view.HandleEventClick(created.ID)
	editor.Description = "Ch. 1-4, bring calculators"
	if err = editor.Submit(ctx); err != nil {
		log.Panic(err)
	}

	view.HandleEventDrop(ctx, created.ID, start.Add(2*time.Hour), end.Add(2*time.Hour))
	view.HandleEventResize(ctx, created.ID, start.Add(2*time.Hour), end.Add(3*time.Hour))

	view.HandleEventClick(created.ID)
	if err = editor.Delete(ctx); err != nil {
		log.Panic(err)
	}

	log.Infof("Demo finished, %d events left", store.Len())
}

func sessionNotifier(log *logrus.Logger) notifier.Notifier {
	if tgToken == "" || tgChatID == "" {
		return notifier.New(log)
	}
	chat, err := strconv.ParseInt(tgChatID, 10, 64)
	if err != nil {
		log.Panicf("bad TG_CHAT_ID: %v", err)
	}
	bot, err := telegram.NewBot(tgToken)
	if err != nil {
		log.Panic(err)
	}
	return telegram.New(log, bot, chat)
}

type logWidget struct {
	log *logrus.Entry
}

func (w *logWidget) Render(events []models.Event, style func(models.Event) calendar.Style) {
	for _, event := range events {
		w.log.Infof("%s [%s] %s - %s", event.Title, style(event).Color,
			event.Start.Format(time.RFC3339), event.End.Format(time.RFC3339))
	}
}

func (w *logWidget) ShowDetail(title, description string) {
	w.log.Infof("%s: %s", title, description)
}

func lookupEnv(key, defaultValue string) string {
	result := os.Getenv(key)
	if result == "" {
		return defaultValue
	}
	return result
}
