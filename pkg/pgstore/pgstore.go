package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/schooldesk/classcal/pkg/metrics"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrations embed.FS

const retries = 3

type Store struct {
	log *logrus.Entry
	db  *sqlx.DB
}

func NewStore(ctx context.Context, log *logrus.Logger, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, err
	}
	return &Store{
		log: log.WithField("component", "pgstore"),
		db:  db,
	}, nil
}

func (s *Store) Migrate(direction migrate.MigrationDirection) error {
	assetDir := func() func(string) ([]string, error) {
		return func(path string) ([]string, error) {
			dirEntry, er := migrations.ReadDir(path)
			if er != nil {
				return nil, er
			}
			entries := make([]string, 0)
			for _, e := range dirEntry {
				entries = append(entries, e.Name())
			}

			return entries, nil
		}
	}()
	asset := migrate.AssetMigrationSource{
		Asset:    migrations.ReadFile,
		AssetDir: assetDir,
		Dir:      "migrations",
	}
	_, err := migrate.Exec(s.db.DB, "postgres", asset, direction)
	return err
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	defer s.observe("list")()
	var events []models.Event
	var err error
	for i := 0; i < retries; i++ {
		if err = s.db.SelectContext(ctx, &events, `SELECT id, title, description, start_at, end_at FROM events`); err != nil {
			continue
		}
		return events, nil
	}
	metrics.PgErrCount.WithLabelValues("list").Inc()
	return nil, fmt.Errorf("err listing events: %w", err)
}

func (s *Store) CreateEvent(ctx context.Context, draft models.EventDraft) (models.Event, error) {
	defer s.observe("create")()
	var created models.Event
	query := `
INSERT INTO events (id, title, description, start_at, end_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, title, description, start_at, end_at;`
	id := uuid.NewString()
	var err error
	for i := 0; i < retries; i++ {
		if err = s.db.GetContext(ctx, &created, query, id, draft.Title, draft.Description, draft.Start, draft.End); err != nil {
			continue
		}
		return created, nil
	}
	metrics.PgErrCount.WithLabelValues("create").Inc()
	return models.Event{}, fmt.Errorf("err creating event: %w", err)
}

func (s *Store) UpdateEvent(ctx context.Context, id string, draft models.EventDraft) (models.Event, error) {
	defer s.observe("update")()
	var updated models.Event
	query := `
UPDATE events
SET title       = $2,
    description = $3,
    start_at    = $4,
    end_at      = $5,
    updated_at  = now()
WHERE id = $1
RETURNING id, title, description, start_at, end_at;`
	var err error
	for i := 0; i < retries; i++ {
		err = s.db.GetContext(ctx, &updated, query, id, draft.Title, draft.Description, draft.Start, draft.End)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Event{}, models.ErrEventNotFound
		case err != nil:
			continue
		}
		return updated, nil
	}
	metrics.PgErrCount.WithLabelValues("update").Inc()
	return models.Event{}, fmt.Errorf("err updating event %s: %w", id, err)
}

func (s *Store) DeleteEvent(ctx context.Context, id string) (models.Event, error) {
	defer s.observe("delete")()
	var deleted models.Event
	query := `
DELETE FROM events
WHERE id = $1
RETURNING id, title, description, start_at, end_at;`
	var err error
	for i := 0; i < retries; i++ {
		err = s.db.GetContext(ctx, &deleted, query, id)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return models.Event{}, models.ErrEventNotFound
		case err != nil:
			continue
		}
		return deleted, nil
	}
	metrics.PgErrCount.WithLabelValues("delete").Inc()
	return models.Event{}, fmt.Errorf("err deleting event %s: %w", id, err)
}

func (s *Store) observe(method string) func() {
	started := time.Now()
	return func() {
		metrics.PgDuration.WithLabelValues(method).Observe(time.Since(started).Seconds())
	}
}
