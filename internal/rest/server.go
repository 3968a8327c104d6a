package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/sirupsen/logrus"
)

// App is the store behind the events resource; memstore and pgstore
// both satisfy it.
type App interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, draft models.EventDraft) (models.Event, error)
	UpdateEvent(ctx context.Context, id string, draft models.EventDraft) (models.Event, error)
	DeleteEvent(ctx context.Context, id string) (models.Event, error)
}

type Server struct {
	log     *logrus.Entry
	app     App
	address string
	version string
	secret  []byte
}

func NewServer(log *logrus.Logger, app App, address, version string, secret []byte) *Server {
	s := Server{
		log:     log.WithField("component", "rest"),
		app:     app,
		address: address,
		version: version,
		secret:  secret,
	}
	return &s
}

// Handler returns the routed handler; tests mount it on a local
// listener instead of calling Run.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/version", s.versionHandler)
	r.Route("/events", func(r chi.Router) {
		r.Use(s.jwtAuth)
		r.Get("/", s.listEventsHandler)
		r.Post("/", s.createEventHandler)
		r.Put("/{id}/", s.updateEventHandler)
		r.Delete("/{id}/", s.deleteEventHandler)
	})
	return r
}

func (s *Server) Run(ctx context.Context) error {
	server := http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Warnf("err during shutdown: %v", err)
		}
	}()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
