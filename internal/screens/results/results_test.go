package results

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/prepnova/prepnova/internal/calendar"
	"github.com/prepnova/prepnova/internal/plan"
	"github.com/prepnova/prepnova/internal/planstore"
	"github.com/prepnova/prepnova/internal/router"
	"github.com/prepnova/prepnova/internal/screen"
	"github.com/prepnova/prepnova/internal/screens"
	"github.com/prepnova/prepnova/internal/screens/feedback"
	"github.com/prepnova/prepnova/internal/screens/success"
)

var testNow = time.Date(2026, 4, 1, 9, 0, 0, 0, time.Local)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// calendarRecorder is an in-memory calendar API that records created
// event summaries in arrival order.
type calendarRecorder struct {
	mu       sync.Mutex
	created  []string
	failFrom int // 1-based create position to start failing at, 0 = never
	status   int
}

func (c *calendarRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
		return
	}
	var ev calendar.Event
	_ = json.NewDecoder(r.Body).Decode(&ev)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failFrom > 0 && len(c.created)+1 >= c.failFrom {
		status := c.status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
		return
	}
	c.created = append(c.created, ev.Summary)
	_ = json.NewEncoder(w).Encode(map[string]string{"id": "evt"})
}

func testPlan() []plan.StudySession {
	return []plan.StudySession{
		{SessionID: "s1", ExamName: "Biology Midterm", ExamDate: "2026-05-10", SessionTitle: "Cells", SessionDate: "2026-04-02", SessionTime: "6:00 PM", Duration: 60, Topics: "cells"},
		{SessionID: "s2", ExamName: "Biology Midterm", ExamDate: "2026-05-10", SessionTitle: "Genetics", SessionDate: "2026-04-05", SessionTime: "6:00 PM", Duration: 60, Topics: "genes"},
		{SessionID: "s3", ExamName: "Chem Final", ExamDate: "2026-06-01", SessionTitle: "Stoichiometry", SessionDate: "2026-04-03", SessionTime: "7:00 PM", Duration: 45, Topics: "moles"},
	}
}

func testScreen(t *testing.T, rec *calendarRecorder) (*ResultsScreen, *planstore.Store) {
	t.Helper()

	store := planstore.New()
	store.Replace(testPlan())

	deps := &screens.Deps{
		Store:    store,
		AuthHint: "set PREPNOVA_GOOGLE_CLIENT_ID first",
		Now:      func() time.Time { return testNow },
	}
	if rec != nil {
		srv := httptest.NewServer(rec)
		t.Cleanup(srv.Close)
		deps.Calendar = func(context.Context) (*calendar.Reconciler, error) {
			return calendar.NewReconciler(calendar.NewClient(srv.Client(), calendar.WithBaseURL(srv.URL))), nil
		}
	}

	return New(deps), store
}

// drain executes chained commands until the update loop goes quiet.
func drain(t *testing.T, s screen.Screen, cmd tea.Cmd) screen.Screen {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		s, cmd = s.Update(msg)
	}
	return s
}

func TestResultsScreen_CursorMovement(t *testing.T) {
	s, _ := testScreen(t, nil)

	if s.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", s.cursor)
	}
	var scr screen.Screen = s
	scr, _ = scr.Update(keyPress('j'))
	scr, _ = scr.Update(keyPress('j'))
	scr, _ = scr.Update(keyPress('j')) // past the end, clamped
	rs := scr.(*ResultsScreen)
	if rs.cursor != 2 {
		t.Errorf("cursor = %d, want 2", rs.cursor)
	}
	scr, _ = scr.Update(keyPress('k'))
	rs = scr.(*ResultsScreen)
	if rs.cursor != 1 {
		t.Errorf("cursor = %d, want 1", rs.cursor)
	}
}

func TestResultsScreen_CalendarNeedsAccount(t *testing.T) {
	s, _ := testScreen(t, nil)

	// No auth configured at all: the hint is shown, nothing runs.
	_, cmd := s.Update(keyPress('c'))
	if cmd != nil {
		t.Error("expected no command without a Google account")
	}
	if s.notice != "set PREPNOVA_GOOGLE_CLIENT_ID first" {
		t.Errorf("notice = %q, want the auth hint", s.notice)
	}
}

func TestResultsScreen_AddSession(t *testing.T) {
	rec := &calendarRecorder{}
	s, _ := testScreen(t, rec)

	sess := testPlan()[0]
	s.sessionStatus[sess.SessionID] = statusPending
	_ = drain(t, s, s.addSessionCmd(sess))

	if s.sessionStatus["s1"] != statusAdded {
		t.Errorf("status = %v, want added", s.sessionStatus["s1"])
	}
	if len(rec.created) != 1 || rec.created[0] != "Cells" {
		t.Errorf("created = %v, want [Cells]", rec.created)
	}
}

func TestResultsScreen_AddExamDay(t *testing.T) {
	rec := &calendarRecorder{}
	s, _ := testScreen(t, rec)

	s.examStatus["Biology Midterm"] = statusPending
	_ = drain(t, s, s.addExamCmd("Biology Midterm", "2026-05-10"))

	if s.examStatus["Biology Midterm"] != statusAdded {
		t.Errorf("status = %v, want added", s.examStatus["Biology Midterm"])
	}
	if len(rec.created) != 1 || rec.created[0] != "Biology Midterm Exam" {
		t.Errorf("created = %v, want the all-day exam event", rec.created)
	}
}

func TestResultsScreen_AddAllSequential(t *testing.T) {
	rec := &calendarRecorder{}
	s, _ := testScreen(t, rec)

	groups := s.groups()
	s.addAllQueue = groups[0].Sessions
	s.addAllPos = 0
	s.sessionStatus[s.addAllQueue[0].SessionID] = statusPending
	_ = drain(t, s, s.addAllStepCmd(0))

	want := []string{"Cells", "Genetics"}
	if len(rec.created) != len(want) {
		t.Fatalf("created %d events, want %d", len(rec.created), len(want))
	}
	for i, summary := range want {
		if rec.created[i] != summary {
			t.Errorf("created[%d] = %q, want %q", i, rec.created[i], summary)
		}
	}
	if s.addAllQueue != nil {
		t.Error("expected add-all state to be cleared")
	}
	if !strings.Contains(s.notice, "Added all 2 sessions") {
		t.Errorf("notice = %q, want completion message", s.notice)
	}
}

func TestResultsScreen_AddAllStopsOnFailure(t *testing.T) {
	rec := &calendarRecorder{failFrom: 2}
	s, _ := testScreen(t, rec)

	groups := s.groups()
	s.addAllQueue = groups[0].Sessions
	s.sessionStatus[s.addAllQueue[0].SessionID] = statusPending
	_ = drain(t, s, s.addAllStepCmd(0))

	if len(rec.created) != 1 {
		t.Errorf("created %d events, want 1 (stop at first failure)", len(rec.created))
	}
	if s.sessionStatus["s2"] != statusFailed {
		t.Errorf("status for failed session = %v, want failed", s.sessionStatus["s2"])
	}
	if !strings.Contains(s.notice, "session 2 of 2") {
		t.Errorf("notice = %q, want the stop position", s.notice)
	}
}

func TestResultsScreen_UnauthorizedKeepsPlan(t *testing.T) {
	rec := &calendarRecorder{failFrom: 1, status: http.StatusUnauthorized}
	s, store := testScreen(t, rec)

	sess := testPlan()[0]
	_ = drain(t, s, s.addSessionCmd(sess))

	if s.notice != expiredNotice {
		t.Errorf("notice = %q, want the expired-session notice", s.notice)
	}
	if store.Len() != 3 {
		t.Errorf("plan has %d sessions after 401, want 3 (untouched)", store.Len())
	}
}

func TestResultsScreen_FeedbackPushesForm(t *testing.T) {
	s, _ := testScreen(t, nil)

	_, cmd := s.Update(keyPress('f'))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.PushScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*feedback.FeedbackScreen); !ok {
		t.Errorf("pushed %T, want *feedback.FeedbackScreen", msg.Screen)
	}
}

func TestResultsScreen_DoneGoesToSuccess(t *testing.T) {
	s, _ := testScreen(t, nil)

	_, cmd := s.Update(keyPress('d'))
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("got %T, want router.ReplaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*success.SuccessScreen); !ok {
		t.Errorf("replaced with %T, want *success.SuccessScreen", msg.Screen)
	}
}

func TestResultsScreen_ViewShowsPlan(t *testing.T) {
	s, store := testScreen(t, nil)
	store.SetWarning("calendar trouble")

	view := s.View(100, 40)
	for _, want := range []string{"Biology Midterm", "Chem Final", "Cells", "calendar trouble"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
