package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/schooldesk/classcal/internal/remote"
	"github.com/schooldesk/classcal/internal/rest"
	"github.com/schooldesk/classcal/pkg/logger"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

const version = "test"

var (
	secret = []byte("test-secret")

	t0 = time.Date(2023, 9, 1, 10, 0, 0, 0, time.UTC)
	t1 = time.Date(2023, 9, 1, 11, 0, 0, 0, time.UTC)
)

type EventsSuite struct {
	suite.Suite
	log    *logrus.Logger
	server *httptest.Server
	client *remote.Client
}

func (s *EventsSuite) SetupSuite() {
	s.log = logger.New()
}

func (s *EventsSuite) SetupTest() {
	handler := rest.NewServer(s.log, rest.NewMemStore(s.log), "", version, secret).Handler()
	s.server = httptest.NewServer(handler)
	s.client = s.clientFor(1, models.RoleTeacher)
}

func (s *EventsSuite) TearDownTest() {
	s.server.Close()
}

func (s *EventsSuite) clientFor(userID int, role string) *remote.Client {
	s.T().Helper()
	token, err := rest.IssueToken(userID, role, secret)
	s.Require().NoError(err)
	return remote.New(s.log, s.server.URL, token)
}

func (s *EventsSuite) createEvent(ctx context.Context, title string) models.Event {
	s.T().Helper()
	created, err := s.client.Create(ctx, models.EventDraft{
		Title:       title,
		Description: "Room 12",
		Start:       t0,
		End:         t1,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(created.ID)
	return created
}

func (s *EventsSuite) TestListEmpty() {
	ctx := context.Background()
	events, err := s.client.List(ctx)
	s.Require().NoError(err)
	s.Require().Empty(events)
}

func (s *EventsSuite) TestCreateAndList() {
	ctx := context.Background()
	created := s.createEvent(ctx, "Math Test")
	s.Require().Equal("Math Test", created.Title)
	s.Require().Equal("Room 12", created.Description)
	s.Require().True(created.Start.Equal(t0))
	s.Require().True(created.End.Equal(t1))

	events, err := s.client.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Require().Equal(created.ID, events[0].ID)
}

func (s *EventsSuite) TestUpdate() {
	ctx := context.Background()
	created := s.createEvent(ctx, "Math Test")

	s.Run("update", func() {
		err := s.client.Update(ctx, created.ID, models.EventDraft{
			Title:       "Math Exam",
			Description: "Room 14",
			Start:       t0.Add(time.Hour),
			End:         t1.Add(time.Hour),
		})
		s.Require().NoError(err)
		events, err := s.client.List(ctx)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Require().Equal("Math Exam", events[0].Title)
		s.Require().True(events[0].Start.Equal(t0.Add(time.Hour)))
	})

	s.Run("update not found", func() {
		err := s.client.Update(ctx, "missing", models.EventDraft{Title: "x", Start: t0, End: t1})
		s.requireFailure(err, "update", http.StatusNotFound)
	})
}

func (s *EventsSuite) TestDelete() {
	ctx := context.Background()
	created := s.createEvent(ctx, "Math Test")

	s.Run("delete", func() {
		s.Require().NoError(s.client.Delete(ctx, created.ID))
		events, err := s.client.List(ctx)
		s.Require().NoError(err)
		s.Require().Empty(events)
	})

	s.Run("delete not found", func() {
		err := s.client.Delete(ctx, created.ID)
		s.requireFailure(err, "delete", http.StatusNotFound)
	})
}

func (s *EventsSuite) TestUnauthorized() {
	ctx := context.Background()
	bad := remote.New(s.log, s.server.URL, "not-a-token")
	_, err := bad.List(ctx)
	s.requireFailure(err, "list", http.StatusUnauthorized)
}

func (s *EventsSuite) TestStudentCannotMutate() {
	ctx := context.Background()
	student := s.clientFor(2, models.RoleStudent)

	_, err := student.Create(ctx, models.EventDraft{Title: "Party", Start: t0, End: t1})
	s.requireFailure(err, "create", http.StatusForbidden)

	events, err := student.List(ctx)
	s.Require().NoError(err)
	s.Require().Empty(events)
}

func (s *EventsSuite) TestRejectsEndBeforeStart() {
	ctx := context.Background()
	_, err := s.client.Create(ctx, models.EventDraft{Title: "Backwards", Start: t1, End: t0})
	s.requireFailure(err, "create", http.StatusBadRequest)
}

func (s *EventsSuite) requireFailure(err error, op string, status int) {
	s.T().Helper()
	s.Require().Error(err)
	failure, ok := err.(*remote.Failure)
	s.Require().True(ok, "expected *remote.Failure, got %T", err)
	s.Require().Equal(op, failure.Op)
	s.Require().Equal(status, failure.Status)
}

func TestEventsSuite(t *testing.T) {
	suite.Run(t, new(EventsSuite))
}
