package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCreateEvent_PostsToEventsEndpoint(t *testing.T) {
	var got Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/calendars/primary/events" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), WithBaseURL(srv.URL))
	ev := &Event{
		Summary: "Review for Midterm 1",
		Start:   &EventTime{DateTime: "2025-10-03T19:00:00", TimeZone: "America/New_York"},
		End:     &EventTime{DateTime: "2025-10-03T20:00:00", TimeZone: "America/New_York"},
	}
	if err := c.CreateEvent(context.Background(), ev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Summary != "Review for Midterm 1" {
		t.Fatalf("server saw summary %q", got.Summary)
	}
}

func TestCreateEvent_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), WithBaseURL(srv.URL))
	err := c.CreateEvent(context.Background(), &Event{Summary: "x", Start: &EventTime{}, End: &EventTime{}})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCreateEvent_APIErrorMessageSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"Calendar usage limits exceeded."}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), WithBaseURL(srv.URL))
	err := c.CreateEvent(context.Background(), &Event{Summary: "x", Start: &EventTime{}, End: &EventTime{}})
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "Calendar usage limits exceeded."; !strings.Contains(err.Error(), want) {
		t.Fatalf("error %q missing API message %q", err.Error(), want)
	}
}

func TestListExamEventIDs_FiltersByTagAndTimeMin(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("privateExtendedProperty"); got != "examName=Midterm_1" {
			t.Errorf("privateExtendedProperty = %q", got)
		}
		if got := q.Get("timeMin"); got != now.Format(time.RFC3339) {
			t.Errorf("timeMin = %q", got)
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"ev1"},{"id":"ev2"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), WithBaseURL(srv.URL))
	ids, err := c.ListExamEventIDs(context.Background(), "Midterm 1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "ev1" || ids[1] != "ev2" {
		t.Fatalf("ids = %v", ids)
	}
}

func TestDeleteEvent_NotFoundIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), WithBaseURL(srv.URL))
	if err := c.DeleteEvent(context.Background(), "gone"); err != nil {
		t.Fatalf("expected 404 to be treated as success, got %v", err)
	}
}
