// Package remote is the client of the portal's events resource: a JSON
// REST collection at /events/ authenticated with the session's bearer
// token. Times travel as ISO-8601 start_time/end_time strings.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/schooldesk/classcal/pkg/metrics"
	"github.com/schooldesk/classcal/pkg/models"
	"github.com/sirupsen/logrus"
)

// Failure is any terminal outcome of a remote call: a transport error
// or a non-2xx status. Status is zero when the request never got a
// response.
type Failure struct {
	Op     string
	Status int
	Err    error
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("remote %s failed: status %d", f.Op, f.Status)
	}
	return fmt.Sprintf("remote %s failed: %v", f.Op, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

type Client struct {
	log     *logrus.Entry
	client  *http.Client
	baseURL string
	token   string
}

func New(log *logrus.Logger, baseURL, token string) *Client {
	return &Client{
		log:     log.WithField("component", "remote"),
		client:  http.DefaultClient,
		baseURL: baseURL,
		token:   token,
	}
}

func (c *Client) List(ctx context.Context) ([]models.Event, error) {
	body, err := c.do(ctx, "list", http.MethodGet, "/events/", nil)
	if err != nil {
		return nil, err
	}
	var records []models.EventRecord
	if err = json.Unmarshal(body, &records); err != nil {
		return nil, &Failure{Op: "list", Err: fmt.Errorf("err decoding events: %w", err)}
	}
	events := make([]models.Event, 0, len(records))
	for _, record := range records {
		event, err := record.Event()
		if err != nil {
			return nil, &Failure{Op: "list", Err: err}
		}
		events = append(events, event)
	}
	return events, nil
}

func (c *Client) Create(ctx context.Context, draft models.EventDraft) (models.Event, error) {
	body, err := c.do(ctx, "create", http.MethodPost, "/events/", draft.Record())
	if err != nil {
		return models.Event{}, err
	}
	var record models.EventRecord
	if err = json.Unmarshal(body, &record); err != nil {
		return models.Event{}, &Failure{Op: "create", Err: fmt.Errorf("err decoding created event: %w", err)}
	}
	event, err := record.Event()
	if err != nil {
		return models.Event{}, &Failure{Op: "create", Err: err}
	}
	return event, nil
}

func (c *Client) Update(ctx context.Context, id string, draft models.EventDraft) error {
	_, err := c.do(ctx, "update", http.MethodPut, "/events/"+id+"/", draft.Record())
	return err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete", http.MethodDelete, "/events/"+id+"/", nil)
	return err
}

func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}) ([]byte, error) {
	started := time.Now()
	defer func() {
		metrics.RemoteDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	}()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, c.failure(op, 0, err)
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, c.failure(op, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.failure(op, 0, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warnf("err closing response body: %v", err)
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.failure(op, 0, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, c.failure(op, resp.StatusCode, nil)
	}
	return body, nil
}

func (c *Client) failure(op string, status int, err error) *Failure {
	metrics.RemoteErrCount.WithLabelValues(op).Inc()
	c.log.Warnf("remote %s failed (status %d): %v", op, status, err)
	return &Failure{Op: op, Status: status, Err: err}
}
