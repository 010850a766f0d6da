package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/prepnova/prepnova/internal/adjust"
	"github.com/prepnova/prepnova/internal/calendar"
	"github.com/prepnova/prepnova/internal/googleauth"
	"github.com/prepnova/prepnova/internal/llm"
	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/planstore"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
)

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.Local)

const adjustmentJSON = `{
	"updatedSessions": [
		{"sessionTitle": "Cells, shorter", "sessionDate": "2026-04-02", "sessionTime": "6:00 PM", "duration": 40, "topics": "cells", "extraTask": ""}
	],
	"summaryOfChanges": ["Shortened the next session."],
	"encouragement": "Keep going!"
}`

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSession() plan.StudySession {
	return plan.StudySession{
		SessionID:    "s1",
		ExamName:     "Biology Midterm",
		ExamDate:     "2026-05-10",
		SessionTitle: "Cells",
		SessionDate:  "2026-04-02",
		SessionTime:  "6:00 PM",
		Duration:     60,
		Topics:       "cells",
	}
}

func testScreen(mock *llm.MockProvider, cal func(context.Context) (*calendar.Reconciler, error)) (*FeedbackScreen, *planstore.Store) {
	store := planstore.New()
	store.Replace([]plan.StudySession{testSession()})

	if cal == nil {
		cal = func(context.Context) (*calendar.Reconciler, error) {
			return nil, googleauth.ErrSignedOut
		}
	}
	deps := &screens.Deps{
		Adjuster: adjust.NewService(mock, adjust.DefaultConfig()),
		Store:    store,
		Calendar: cal,
		Now:      func() time.Time { return testNow },
	}
	return New(deps, testSession()), store
}

// runToPop walks the submit flow until the screen pops itself.
func runToPop(t *testing.T, s screen.Screen, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if _, ok := msg.(router.PopScreenMsg); ok {
			return
		}
		s, cmd = s.Update(msg)
	}
	t.Fatal("submit flow never popped back to results")
}

func TestFeedbackScreen_SliderAdjust(t *testing.T) {
	s, _ := testScreen(llm.NewMockProvider(), nil)

	var scr screen.Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyRight))
	fs := scr.(*FeedbackScreen)
	if fs.difficulty.Value != 4 {
		t.Errorf("difficulty = %d, want 4", fs.difficulty.Value)
	}
}

func TestFeedbackScreen_SubmitAppliesAdjustment(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(adjustmentJSON)})
	s, store := testScreen(mock, nil)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected the adjust command")
	}
	runToPop(t, s, cmd)

	adjRes := store.LastAdjustment()
	if adjRes == nil {
		t.Fatal("expected an adjustment result in the store")
	}
	if adjRes.Encouragement != "Keep going!" {
		t.Errorf("encouragement = %q", adjRes.Encouragement)
	}

	sessions := store.Sessions()
	if len(sessions) != 1 || sessions[0].SessionTitle != "Cells, shorter" {
		t.Errorf("sessions = %+v, want the replacement session", sessions)
	}
	// Signed out: no calendar work, no warning.
	if store.Warning() != "" {
		t.Errorf("warning = %q, want none while signed out", store.Warning())
	}
}

func TestFeedbackScreen_ReconcileFailureSetsWarning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(adjustmentJSON)})
	s, store := testScreen(mock, func(context.Context) (*calendar.Reconciler, error) {
		return calendar.NewReconciler(calendar.NewClient(srv.Client(), calendar.WithBaseURL(srv.URL))), nil
	})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runToPop(t, s, cmd)

	if store.Warning() != calendarWarning {
		t.Errorf("warning = %q, want %q", store.Warning(), calendarWarning)
	}
	// The plan itself still carries the adjustment.
	if sessions := store.Sessions(); len(sessions) != 1 || sessions[0].SessionTitle != "Cells, shorter" {
		t.Errorf("sessions = %+v, want the replacement session", sessions)
	}
}

func TestFeedbackScreen_ExpiredSessionSignsOutAndWarns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"expired"}}`))
	}))
	defer srv.Close()

	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(adjustmentJSON)})
	s, store := testScreen(mock, func(context.Context) (*calendar.Reconciler, error) {
		return calendar.NewReconciler(calendar.NewClient(srv.Client(), calendar.WithBaseURL(srv.URL))), nil
	})

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	runToPop(t, s, cmd)

	if store.Warning() != expiredWarning {
		t.Errorf("warning = %q, want %q", store.Warning(), expiredWarning)
	}
	if len(store.Sessions()) != 1 {
		t.Error("plan must survive an expired Google session")
	}
}

func TestFeedbackScreen_AdjustErrorStays(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	s, store := testScreen(mock, nil)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected the adjust command")
	}
	var scr screen.Screen = s
	scr, next := scr.Update(cmd())
	fs := scr.(*FeedbackScreen)

	if next != nil {
		t.Error("expected no follow-up command on adjust failure")
	}
	if fs.errMsg == "" {
		t.Error("expected an error message")
	}
	if fs.adjusting {
		t.Error("expected the form back in editing state")
	}
	if sessions := store.Sessions(); sessions[0].SessionTitle != "Cells" {
		t.Error("plan must be untouched on adjust failure")
	}
}

func TestFeedbackScreen_EscPops(t *testing.T) {
	s, _ := testScreen(llm.NewMockProvider(), nil)

	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("got %T, want router.PopScreenMsg", cmd())
	}
}
