// Package calendar is a minimal Google Calendar REST client scoped to
// what the study planner needs: create events on the primary calendar,
// find previously created events by exam tag, and delete them.
package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/calendar/v3"

// ErrUnauthorized is returned when the calendar API rejects the access
// token. Callers treat it as a forced sign-out.
var ErrUnauthorized = errors.New("calendar: access token rejected")

// Client talks to the Google Calendar API for the primary calendar.
// The http.Client must already attach OAuth credentials to requests.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// NewClient creates a calendar client on top of an authenticated
// http.Client.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateEvent inserts an event into the primary calendar.
func (c *Client) CreateEvent(ctx context.Context, ev *Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	endpoint := c.baseURL + "/calendars/primary/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	return c.checkStatus(resp, "create event")
}

// ListExamEventIDs returns the ids of events previously created for the
// given exam, restricted to events starting at or after timeMin. Events
// are matched by the examName private extended property.
func (c *Client) ListExamEventIDs(ctx context.Context, examName string, timeMin time.Time) ([]string, error) {
	q := url.Values{}
	q.Set("privateExtendedProperty", "examName="+ExamTag(examName))
	q.Set("timeMin", timeMin.UTC().Format(time.RFC3339))

	endpoint := c.baseURL + "/calendars/primary/events?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.checkStatus(resp, "list events"); err != nil {
		return nil, err
	}

	var listing struct {
		Items []Event `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode event listing: %w", err)
	}

	ids := make([]string, 0, len(listing.Items))
	for _, item := range listing.Items {
		if item.ID != "" {
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}

// DeleteEvent removes one event from the primary calendar.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	endpoint := c.baseURL + "/calendars/primary/events/" + url.PathEscape(eventID)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Gone already is fine; the goal is absence.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil
	}
	return c.checkStatus(resp, "delete event")
}

func (c *Client) checkStatus(resp *http.Response, op string) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", msg, apiErr.Error.Message)
		}
	}
	return fmt.Errorf("%s: %s", op, msg)
}
