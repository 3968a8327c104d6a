package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/schooldesk/classcal/pkg/models"
)

var (
	errEndBeforeStart = errors.New("event ends before it starts")
	errForbidden      = errors.New("role is read-only")
)

func (s *Server) versionHandler(w http.ResponseWriter, _ *http.Request) {
	_, err := fmt.Fprintf(w, "%s\n", s.version)
	if err != nil {
		s.log.Warnf("err during writing to connection: %v", err)
	}
}

func (s *Server) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	events, err := s.app.ListEvents(ctx)
	if err != nil {
		s.log.Warnf("err during listing events: %v", err)
		s.writeResponse(w, http.StatusInternalServerError, err)
		return
	}
	records := make([]models.EventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, event.Record())
	}
	s.writeResponse(w, http.StatusOK, records)
}

// canMutate mirrors the portal's permission gate on the server side:
// the read-only role never mutates, whatever the client sent.
func (s *Server) canMutate(w http.ResponseWriter, r *http.Request) bool {
	claims := s.getClaims(r.Context())
	if claims == nil || claims.Role == models.RoleStudent {
		s.writeResponse(w, http.StatusForbidden, errForbidden)
		return false
	}
	return true
}

func (s *Server) createEventHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !s.canMutate(w, r) {
		return
	}
	draft, err := decodeDraft(r)
	if err != nil {
		s.writeResponse(w, http.StatusBadRequest, err)
		return
	}
	created, err := s.app.CreateEvent(ctx, draft)
	if err != nil {
		s.log.Warnf("err during creating event: %v", err)
		s.writeResponse(w, http.StatusInternalServerError, err)
		return
	}
	s.writeResponse(w, http.StatusCreated, created.Record())
}

func (s *Server) updateEventHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !s.canMutate(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	draft, err := decodeDraft(r)
	if err != nil {
		s.writeResponse(w, http.StatusBadRequest, err)
		return
	}
	updated, err := s.app.UpdateEvent(ctx, id, draft)
	switch {
	case errors.Is(err, models.ErrEventNotFound):
		s.writeResponse(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.log.Warnf("err during updating event: %v", err)
		s.writeResponse(w, http.StatusInternalServerError, err)
		return
	}
	s.writeResponse(w, http.StatusOK, updated.Record())
}

func (s *Server) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !s.canMutate(w, r) {
		return
	}
	id := chi.URLParam(r, "id")
	deleted, err := s.app.DeleteEvent(ctx, id)
	switch {
	case errors.Is(err, models.ErrEventNotFound):
		s.writeResponse(w, http.StatusNotFound, err)
		return
	case err != nil:
		s.log.Warnf("err during deleting event: %v", err)
		s.writeResponse(w, http.StatusInternalServerError, err)
		return
	}
	s.writeResponse(w, http.StatusOK, deleted.Record())
}

func decodeDraft(r *http.Request) (models.EventDraft, error) {
	var record models.EventRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		return models.EventDraft{}, err
	}
	draft, err := record.Draft()
	if err != nil {
		return models.EventDraft{}, err
	}
	if draft.End.Before(draft.Start) {
		return models.EventDraft{}, errEndBeforeStart
	}
	return draft, nil
}

func (s *Server) writeResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if x, ok := data.(error); ok {
		if err := json.NewEncoder(w).Encode(ErrorResponse{Error: x.Error()}); err != nil {
			s.log.Warnf("err during encoding error: %v", err)
		}
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warnf("err during encoding response: %v", err)
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
